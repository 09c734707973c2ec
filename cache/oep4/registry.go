package oep4

import (
	"context"
	"oep4-squirrel/models"
	"sync"
)

// Storage durably holds the tracked token list.
type Storage interface {
	// Load never fails: an absent or unreadable record yields an empty list.
	Load(ctx context.Context) []models.TrackedToken
	Save(ctx context.Context, tokens []models.TrackedToken) error
}

// Registry holds the tracked tokens of the wallet along with the transient
// results of the last reconciliation and transfer matching.
// Writers are serialized and persist before the in-memory state changes.
type Registry struct {
	mu      sync.RWMutex
	storage Storage

	tokens       []models.TrackedToken
	balance      models.WalletBalance
	transfers    []models.TransferRecord
	transfersNet models.Network
}

// NewRegistry loads the tracked tokens from storage.
func NewRegistry(ctx context.Context, storage Storage) *Registry {
	return &Registry{
		storage: storage,
		tokens:  storage.Load(ctx),
	}
}

// Add tracks a new token. A token already tracked on the same network is rejected.
func (r *Registry) Add(ctx context.Context, token models.TrackedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tokens {
		if r.tokens[i].SameAs(&token) {
			return models.NewError(models.ErrTokenExists, nil)
		}
	}

	tokens := make([]models.TrackedToken, 0, len(r.tokens)+1)
	tokens = append(tokens, r.tokens...)
	tokens = append(tokens, token)

	return r.persist(ctx, tokens)
}

// ReplaceAll swaps the whole tracked list.
func (r *Registry) ReplaceAll(ctx context.Context, tokens []models.TrackedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persist(ctx, copyTokens(tokens))
}

// Commit stores the result of a reconciliation pass: the wallet balance and
// the refreshed token list change together or not at all.
func (r *Registry) Commit(ctx context.Context, balance models.WalletBalance, tokens []models.TrackedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.persist(ctx, copyTokens(tokens)); err != nil {
		return err
	}

	r.balance = balance
	return nil
}

// persist must be called with the write lock held.
func (r *Registry) persist(ctx context.Context, tokens []models.TrackedToken) error {
	if err := r.storage.Save(ctx, tokens); err != nil {
		return err
	}

	r.tokens = tokens
	return nil
}

// Snapshot returns a copy of all tracked tokens in registry order.
func (r *Registry) Snapshot() []models.TrackedToken {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyTokens(r.tokens)
}

// Tokens returns a copy of the tokens tracked on net.
func (r *Registry) Tokens(net models.Network) []models.TrackedToken {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := []models.TrackedToken{}
	for _, token := range r.tokens {
		if token.Network == net {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// Contains tells if contract is already tracked on net.
func (r *Registry) Contains(net models.Network, contract string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, token := range r.tokens {
		if token.Network == net && token.Contract == contract {
			return true
		}
	}

	return false
}

// Balance returns the wallet balance of the last reconciliation.
func (r *Registry) Balance() models.WalletBalance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balance
}

// SetTransfers replaces the transfer feed with the records matched on net.
func (r *Registry) SetTransfers(net models.Network, records []models.TransferRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transfers = append([]models.TransferRecord(nil), records...)
	r.transfersNet = net
}

// Transfers returns the transfer feed of the last matching pass.
func (r *Registry) Transfers() []models.TransferRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.TransferRecord(nil), r.transfers...)
}

// TransfersOn returns the transfer feed if it was matched on net.
// A feed of another network is dropped.
func (r *Registry) TransfersOn(net models.Network) []models.TransferRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.transfersNet != net {
		r.transfers = nil
		r.transfersNet = net
	}

	return append([]models.TransferRecord(nil), r.transfers...)
}

func copyTokens(tokens []models.TrackedToken) []models.TrackedToken {
	copied := make([]models.TrackedToken, len(tokens))
	copy(copied, tokens)
	return copied
}
