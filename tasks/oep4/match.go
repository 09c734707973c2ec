package oep4

import (
	"context"
	cache "oep4-squirrel/cache/oep4"
	"oep4-squirrel/explorer"
	"oep4-squirrel/models"
	"oep4-squirrel/util/log"
)

// DefaultPageSize is the number of recent transactions fetched per pass.
const DefaultPageSize = 10

// DefaultAliases maps asset labels the explorer is known to report wrongly
// to the token symbol they stand for.
var DefaultAliases = map[string]string{
	"LCY": "LUCKY",
}

// Matcher builds the transfer feed of an address from the explorer history.
type Matcher struct {
	history  HistorySource
	registry *cache.Registry
	pageSize int
	aliases  map[string]string
}

// NewMatcher creates a matcher storing its feed into registry.
func NewMatcher(history HistorySource, registry *cache.Registry, pageSize int, aliases map[string]string) *Matcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if aliases == nil {
		aliases = DefaultAliases
	}

	return &Matcher{
		history:  history,
		registry: registry,
		pageSize: pageSize,
		aliases:  aliases,
	}
}

// FetchRecent matches the most recent transactions of address against tokens
// and replaces the stored feed. A failed fetch is logged and the previous feed is
// kept, unless it was matched on another network.
func (m *Matcher) FetchRecent(ctx context.Context, net models.Network, address string, tokens []models.TrackedToken) []models.TransferRecord {
	txs, err := m.history.Transactions(ctx, net, address, 1, m.pageSize)
	if err != nil {
		log.Warnf("Failed to fetch transactions of %s on %s: %v", address, net, err)
		return m.registry.TransfersOn(net)
	}

	records := MatchTransfers(address, txs, tokens, m.aliases)
	m.registry.SetTransfers(net, records)

	return records
}

// MatchTransfers attributes every transfer line to the first token whose
// symbol is the reported asset name, or the symbol an alias of it maps to.
// ONG lines and unmatched lines produce no record.
func MatchTransfers(address string, txs []explorer.Transaction, tokens []models.TrackedToken, aliases map[string]string) []models.TransferRecord {
	records := []models.TransferRecord{}

	for _, tx := range txs {
		for _, line := range tx.TransferList {
			if line.AssetName == models.ONG {
				continue
			}

			token := matchToken(line.AssetName, tokens, aliases)
			if token == nil {
				continue
			}

			records = append(records, models.TransferRecord{
				TxHash: tx.TxnHash,
				Asset:  token.Symbol,
				Amount: signedAmount(address, &line),
			})
		}
	}

	return records
}

func matchToken(label string, tokens []models.TrackedToken, aliases map[string]string) *models.TrackedToken {
	actual, aliased := aliases[label]

	for i := range tokens {
		if tokens[i].Symbol == label ||
			(aliased && tokens[i].Symbol == actual) {
			return &tokens[i]
		}
	}

	return nil
}

func signedAmount(address string, line *explorer.TransferLine) string {
	if line.FromAddress == address {
		return "-" + line.Amount.String()
	}

	return "+" + line.Amount.String()
}
