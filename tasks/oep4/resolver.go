package oep4

import (
	"context"
	"encoding/hex"
	"fmt"
	"oep4-squirrel/models"
	"oep4-squirrel/util/base58"
	"oep4-squirrel/util/convert"
	"strings"

	"github.com/go-errors/errors"
	"github.com/shopspring/decimal"
)

// Resolver queries OEP4 contract metadata and balances from the node.
type Resolver struct {
	node NodeQuerier
}

// NewResolver creates a resolver on top of node.
func NewResolver(node NodeQuerier) *Resolver {
	return &Resolver{node: node}
}

// NormalizeContract validates a displayed script hash and returns it
// lower-cased without the 0x prefix.
func NormalizeContract(contract string) (string, error) {
	contract = strings.ToLower(strings.TrimSpace(contract))
	contract = strings.TrimPrefix(contract, "0x")

	if len(contract) != 40 {
		return "", models.NewError(models.ErrNoContract, fmt.Errorf("invalid contract hash length %d", len(contract)))
	}

	if _, err := hex.DecodeString(contract); err != nil {
		return "", models.NewError(models.ErrNoContract, err)
	}

	return contract, nil
}

// ParseAddress decodes a wallet address to the script hash passed to balanceOf.
func ParseAddress(address string) ([]byte, error) {
	addr, err := base58.AddressToBytes(address)
	if err != nil {
		return nil, models.NewError(models.ErrInvalidAddress, errors.WrapPrefix(err, address, 0))
	}

	return addr, nil
}

// Resolve gets name, symbol, decimals and the balance of address for contract.
// Nothing is returned unless every query reached the node.
func (r *Resolver) Resolve(ctx context.Context, net models.Network, contract, address string) (*models.TrackedToken, error) {
	contract, err := NormalizeContract(contract)
	if err != nil {
		return nil, err
	}

	if _, err := ParseAddress(address); err != nil {
		return nil, err
	}

	exists, err := r.node.GetContract(ctx, net, contract)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewError(models.ErrNoContract, fmt.Errorf("contract %s not found on %s", contract, net))
	}

	token := models.TrackedToken{
		Contract: contract,
		Network:  net,
	}

	if token.Name, err = r.queryString(ctx, net, contract, "name"); err != nil {
		return nil, err
	}

	if token.Symbol, err = r.queryString(ctx, net, contract, "symbol"); err != nil {
		return nil, err
	}

	if token.Decimals, err = r.queryDecimals(ctx, net, contract); err != nil {
		return nil, err
	}

	if token.Balance, err = r.QueryBalance(ctx, net, contract, address, token.Decimals); err != nil {
		return nil, err
	}

	return &token, nil
}

// QueryBalance gets the balance of address for contract, scaled by decimals.
func (r *Resolver) QueryBalance(ctx context.Context, net models.Network, contract, address string, decimals uint) (decimal.Decimal, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return decimal.Zero, err
	}

	result, err := r.node.PreExecInvoke(ctx, net, contract, "balanceOf", addr)
	if err != nil {
		return decimal.Zero, err
	}

	if !result.Succeeded() {
		return decimal.Zero, nil
	}

	return convert.DecodeScaledBalance(result.Result, decimals), nil
}

func (r *Resolver) queryString(ctx context.Context, net models.Network, contract, method string) (string, error) {
	result, err := r.node.PreExecInvoke(ctx, net, contract, method)
	if err != nil {
		return "", err
	}

	if !result.Succeeded() {
		return models.PlaceholderName, nil
	}

	return convert.DecodeUTF8(result.Result, models.PlaceholderName), nil
}

func (r *Resolver) queryDecimals(ctx context.Context, net models.Network, contract string) (uint, error) {
	result, err := r.node.PreExecInvoke(ctx, net, contract, "decimals")
	if err != nil {
		return 0, err
	}

	if !result.Succeeded() {
		return 0, nil
	}

	decimals := convert.DecodeUint(result.Result)
	if decimals > convert.MaxDecimals {
		return 0, models.NewError(models.ErrNoContract, fmt.Errorf("%s declares %d decimals", contract, decimals))
	}

	return uint(decimals), nil
}
