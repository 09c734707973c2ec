package oep4

import (
	"context"
	"fmt"
	cache "oep4-squirrel/cache/oep4"
	"oep4-squirrel/models"
	"oep4-squirrel/util/log"
	"sync"
	"time"

	"github.com/go-errors/errors"
)

// Options tunes the ledger.
type Options struct {
	PageSize      int
	Aliases       map[string]string
	NotifyTimeout time.Duration
}

// Ledger tracks OEP4 tokens of a wallet. Adding and refreshing run one at a
// time, readers never block on network calls.
type Ledger struct {
	mu sync.Mutex

	registry   *cache.Registry
	resolver   *Resolver
	reconciler *Reconciler
	matcher    *Matcher
	notifier   *Notifier
}

// NewLedger wires the ledger components together.
func NewLedger(registry *cache.Registry, node NodeQuerier, exp Explorer, opts Options) *Ledger {
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = 15 * time.Second
	}

	resolver := NewResolver(node)

	return &Ledger{
		registry:   registry,
		resolver:   resolver,
		reconciler: NewReconciler(resolver, exp, registry),
		matcher:    NewMatcher(exp, registry, opts.PageSize, opts.Aliases),
		notifier:   NewNotifier(exp, opts.NotifyTimeout),
	}
}

// AddToken resolves contract on net, tracks it, announces it to the explorer
// and refreshes balances and transfers of address.
// Once the token is tracked, refresh failures are only logged.
func (l *Ledger) AddToken(ctx context.Context, net models.Network, contract, address string) (*models.TrackedToken, error) {
	if !net.Valid() {
		return nil, errors.Errorf("unknown network %s", net)
	}

	contract, err := NormalizeContract(contract)
	if err != nil {
		return nil, err
	}

	if _, err := ParseAddress(address); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.registry.Contains(net, contract) {
		return nil, models.NewError(models.ErrTokenExists, fmt.Errorf("%s already tracked on %s", contract, net))
	}

	token, err := l.resolver.Resolve(ctx, net, contract, address)
	if err != nil {
		return nil, err
	}

	if err := l.registry.Add(ctx, *token); err != nil {
		return nil, err
	}

	log.Infof("Tracking OEP4 token %s(%s) on %s, decimals=%d", token.Symbol, token.Contract, net, token.Decimals)

	l.notifier.Notify(net, contract)

	tokens, err := l.reconciler.Reconcile(ctx, net, address)
	if err != nil {
		log.Errorf("Failed to refresh balances of %s after adding %s: %v", address, contract, err)
		tokens = l.registry.Tokens(net)
	}

	l.matcher.FetchRecent(ctx, net, address, tokens)

	return token, nil
}

// Refresh reconciles every balance of address on net and rebuilds the
// transfer feed. It returns the tokens tracked on net.
func (l *Ledger) Refresh(ctx context.Context, net models.Network, address string) ([]models.TrackedToken, error) {
	if !net.Valid() {
		return nil, errors.Errorf("unknown network %s", net)
	}

	if _, err := ParseAddress(address); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tokens, err := l.reconciler.Reconcile(ctx, net, address)
	if err != nil {
		l.matcher.FetchRecent(ctx, net, address, l.registry.Tokens(net))
		return nil, err
	}

	l.matcher.FetchRecent(ctx, net, address, tokens)

	return tokens, nil
}

// Tokens returns the tokens tracked on net.
func (l *Ledger) Tokens(net models.Network) []models.TrackedToken {
	return l.registry.Tokens(net)
}

// Balance returns the wallet balance of the last successful refresh.
func (l *Ledger) Balance() models.WalletBalance {
	return l.registry.Balance()
}

// Transfers returns the current transfer feed.
func (l *Ledger) Transfers() []models.TransferRecord {
	return l.registry.Transfers()
}

// Close waits for pending explorer announcements.
func (l *Ledger) Close() {
	l.notifier.Wait()
}
