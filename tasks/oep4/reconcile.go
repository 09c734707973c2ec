package oep4

import (
	"context"
	cache "oep4-squirrel/cache/oep4"
	"oep4-squirrel/explorer"
	"oep4-squirrel/models"

	"github.com/shopspring/decimal"
)

// Reconciler recomputes the wallet balance and the tracked token balances of an address.
type Reconciler struct {
	resolver *Resolver
	balances BalanceSource
	registry *cache.Registry
}

// NewReconciler creates a reconciler committing into registry.
func NewReconciler(resolver *Resolver, balances BalanceSource, registry *cache.Registry) *Reconciler {
	return &Reconciler{
		resolver: resolver,
		balances: balances,
		registry: registry,
	}
}

// Reconcile refreshes every balance of address on net in a single pass and
// returns the tokens tracked on net. Tokens of the other network stay in the
// registry untouched. On any failure the registry is left as it was.
func (r *Reconciler) Reconcile(ctx context.Context, net models.Network, address string) ([]models.TrackedToken, error) {
	rows, err := r.balances.Balances(ctx, net, address)
	if err != nil {
		return nil, err
	}

	wallet := nativeBalance(rows)

	tokens := r.registry.Snapshot()
	active := []models.TrackedToken{}

	for i := range tokens {
		token := &tokens[i]
		if token.Network != net {
			continue
		}

		balance, err := r.resolver.QueryBalance(ctx, net, token.Contract, address, token.Decimals)
		if err != nil {
			return nil, err
		}

		token.Balance = balance
		active = append(active, *token)
	}

	if err := r.registry.Commit(ctx, wallet, tokens); err != nil {
		return nil, err
	}

	return active, nil
}

func nativeBalance(rows []explorer.AssetBalance) models.WalletBalance {
	wallet := models.WalletBalance{
		ONT: decimal.Zero,
		ONG: decimal.Zero,
	}

	for _, row := range rows {
		switch row.AssetName {
		case models.ONT:
			wallet.ONT = row.Balance
		case models.ONG:
			wallet.ONG = row.Balance
		}
	}

	return wallet
}
