package tasks

import (
	"context"
	"oep4-squirrel/models"
	"oep4-squirrel/tasks/oep4"
	"oep4-squirrel/util/log"
	"oep4-squirrel/util/timeutil"
	"time"
)

// Run refreshes balances and transfers of address every interval until ctx is done.
func Run(ctx context.Context, ledger *oep4.Ledger, net models.Network, address string, interval time.Duration) {
	log.Infof("Start OEP4 ledger sync of %s on %s, every %s", address, net, timeutil.FormatDuration(interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		refresh(ctx, ledger, net, address)

		select {
		case <-ctx.Done():
			log.Info("OEP4 ledger sync stopped")
			return
		case <-ticker.C:
		}
	}
}

// AddTokens tracks every contract, a failed one does not stop the others.
func AddTokens(ctx context.Context, ledger *oep4.Ledger, net models.Network, address string, contracts []string) {
	for _, contract := range contracts {
		token, err := ledger.AddToken(ctx, net, contract, address)
		if err != nil {
			log.Errorf("Failed to add OEP4 contract %s on %s: %v", contract, net, err)
			continue
		}

		log.Infof("Added %s(%s), balance %s", token.Symbol, token.Contract, token.Balance)
	}
}

func refresh(ctx context.Context, ledger *oep4.Ledger, net models.Network, address string) {
	start := time.Now()

	tokens, err := ledger.Refresh(ctx, net, address)
	if err != nil {
		log.Errorf("Failed to refresh balances of %s: %v", address, err)
		return
	}

	balance := ledger.Balance()
	log.Infof("%s: ont=%s, ong=%s, %d OEP4 tokens, %d recent transfers, took %s",
		address, balance.ONT, balance.ONG, len(tokens), len(ledger.Transfers()),
		timeutil.FormatDuration(time.Since(start)))

	for _, token := range tokens {
		log.Debugf("* %s(%s): %s", token.Symbol, token.Contract, token.Balance)
	}
}
