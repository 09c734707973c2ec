package oep4

import (
	"context"
	"oep4-squirrel/models"
	"oep4-squirrel/util/log"
	"sync"
	"time"
)

// Notifier announces newly tracked contracts to the explorer in the background.
type Notifier struct {
	registrar Registrar
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewNotifier creates a notifier, each announcement is bounded by timeout.
func NewNotifier(registrar Registrar, timeout time.Duration) *Notifier {
	return &Notifier{
		registrar: registrar,
		timeout:   timeout,
	}
}

// Notify returns immediately. Failures are logged and never retried.
func (n *Notifier) Notify(net models.Network, contract string) {
	n.wg.Add(1)

	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.registrar.RegisterToken(ctx, net, contract); err != nil {
			log.Warnf("Failed to register OEP4 contract %s on %s explorer: %v", contract, net, err)
			return
		}

		log.Debugf("OEP4 contract %s registered on %s explorer", contract, net)
	}()
}

// Wait blocks until every pending announcement is done.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
