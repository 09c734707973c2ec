package models

import (
	"github.com/shopspring/decimal"
)

// Network names one of the two fixed endpoint sets.
type Network string

// Supported networks. The values are the ones persisted with each tracked token.
const (
	MainNet Network = "MAIN_NET"
	TestNet Network = "TEST_NET"
)

// Valid tells if the network is one of the known endpoint sets.
func (n Network) Valid() bool {
	return n == MainNet || n == TestNet
}

// Native asset names as reported by the explorer.
const (
	ONT = "ont"
	ONG = "ong"
)

// PlaceholderName is used for an OEP4 contract that returns no name or symbol.
const PlaceholderName = "OEP4"

// TrackedToken is an OEP4 contract the wallet monitors.
// Contract and Network form its identity, Decimals never changes after add.
type TrackedToken struct {
	Contract string          `json:"scriptHash"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Decimals uint            `json:"decimal"`
	Balance  decimal.Decimal `json:"balance"`
	Network  Network         `json:"net"`
}

// SameAs tells if both records track the same contract on the same network.
func (t *TrackedToken) SameAs(other *TrackedToken) bool {
	return t.Contract == other.Contract && t.Network == other.Network
}

// WalletBalance holds the two native asset balances of the active address.
type WalletBalance struct {
	ONT decimal.Decimal `json:"ont"`
	ONG decimal.Decimal `json:"ong"`
}
