package oep4

import (
	"context"
	"oep4-squirrel/explorer"
	"oep4-squirrel/models"
	"oep4-squirrel/rpc"
)

// NodeQuerier is the part of the node client the resolver relies on.
type NodeQuerier interface {
	GetContract(ctx context.Context, net models.Network, contract string) (bool, error)
	PreExecInvoke(ctx context.Context, net models.Network, contract, method string, args ...[]byte) (*rpc.PreExecResult, error)
}

// BalanceSource returns the native asset balances of an address.
type BalanceSource interface {
	Balances(ctx context.Context, net models.Network, address string) ([]explorer.AssetBalance, error)
}

// HistorySource returns one page of the transaction history of an address.
type HistorySource interface {
	Transactions(ctx context.Context, net models.Network, address string, page, pageSize int) ([]explorer.Transaction, error)
}

// Registrar announces a contract to the explorer indexer.
type Registrar interface {
	RegisterToken(ctx context.Context, net models.Network, contract string) error
}

// Explorer is everything the ledger needs from the explorer service.
type Explorer interface {
	BalanceSource
	HistorySource
	Registrar
}
