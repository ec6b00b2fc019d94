package ports

import (
	"context"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

// BatchSender transmits one batch of items to the queue service.
type BatchSender interface {
	// SendBatch sends items to the queue in a single call.
	// A returned error means the call itself failed and no per-item outcome
	// is known. Otherwise the result lists the entries the service rejected.
	SendBatch(ctx context.Context, queueURL string, items []domain.Item) (domain.SendResult, error)
}
