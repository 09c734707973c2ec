package oep4

import (
	"context"
	"errors"
	cache "oep4-squirrel/cache/oep4"
	"oep4-squirrel/explorer"
	"oep4-squirrel/models"
	"oep4-squirrel/rpc"
	"sync"
)

const (
	testAddress = "AFmseVrdL9f9oyCzZefL9tG6UbvhUMqNMV"
	otherAddr   = "AFmseVrdL9f9oyCzZefL9tG6UbvhfRZMHJ"

	contractA = "ff7a8e5c5c0bf7a5cf3b5a8d0cc0e6e1d2a4a0c1"
	contractB = "0000000000000000000000000000000000000b0b"
)

var errUnreachable = errors.New("connection refused")

type fakeNode struct {
	mu sync.Mutex

	missing map[string]bool
	results map[string]*rpc.PreExecResult
	errs    map[string]error
	calls   []string
	args    map[string][][]byte
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		missing: map[string]bool{},
		results: map[string]*rpc.PreExecResult{},
		errs:    map[string]error{},
		args:    map[string][][]byte{},
	}
}

// token registers a successful answer to every metadata query of contract.
func (n *fakeNode) token(contract, nameHex, symbolHex, decimalsHex, balanceHex string) {
	n.results[contract+".name"] = &rpc.PreExecResult{State: 1, Result: nameHex}
	n.results[contract+".symbol"] = &rpc.PreExecResult{State: 1, Result: symbolHex}
	n.results[contract+".decimals"] = &rpc.PreExecResult{State: 1, Result: decimalsHex}
	n.results[contract+".balanceOf"] = &rpc.PreExecResult{State: 1, Result: balanceHex}
}

func (n *fakeNode) GetContract(ctx context.Context, net models.Network, contract string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls = append(n.calls, contract+".getContract")
	if err := n.errs[contract+".getContract"]; err != nil {
		return false, err
	}

	return !n.missing[contract], nil
}

func (n *fakeNode) PreExecInvoke(ctx context.Context, net models.Network, contract, method string, args ...[]byte) (*rpc.PreExecResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	key := contract + "." + method
	n.calls = append(n.calls, key)
	n.args[key] = args

	if err := n.errs[key]; err != nil {
		return nil, err
	}

	if result, ok := n.results[key]; ok {
		copied := *result
		return &copied, nil
	}

	// A contract without the method halts with a fault.
	return &rpc.PreExecResult{State: 0}, nil
}

func (n *fakeNode) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.calls)
}

type fakeExplorer struct {
	mu sync.Mutex

	balances   []explorer.AssetBalance
	balanceErr error
	txs        []explorer.Transaction
	txErr      error
	registerFn func(net models.Network, contract string) error
	registered []string
}

func (e *fakeExplorer) Balances(ctx context.Context, net models.Network, address string) ([]explorer.AssetBalance, error) {
	if e.balanceErr != nil {
		return nil, e.balanceErr
	}

	return e.balances, nil
}

func (e *fakeExplorer) Transactions(ctx context.Context, net models.Network, address string, page, pageSize int) ([]explorer.Transaction, error) {
	if e.txErr != nil {
		return nil, e.txErr
	}

	return e.txs, nil
}

func (e *fakeExplorer) RegisterToken(ctx context.Context, net models.Network, contract string) error {
	e.mu.Lock()
	e.registered = append(e.registered, contract)
	e.mu.Unlock()

	if e.registerFn != nil {
		return e.registerFn(net, contract)
	}

	return nil
}

type memStorage struct {
	mu      sync.Mutex
	tokens  []models.TrackedToken
	saveErr error
}

func (s *memStorage) Load(ctx context.Context) []models.TrackedToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.TrackedToken{}, s.tokens...)
}

func (s *memStorage) Save(ctx context.Context, tokens []models.TrackedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	s.tokens = append([]models.TrackedToken{}, tokens...)
	return nil
}

func newRegistry(tokens ...models.TrackedToken) (*cache.Registry, *memStorage) {
	storage := &memStorage{tokens: tokens}
	return cache.NewRegistry(context.Background(), storage), storage
}
