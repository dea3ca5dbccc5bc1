package sheets

import (
	"context"

	"kasbot/internal/core"
)

// Ports for outbound mirror destinations.
type (
	// TransactionWriter appends one transaction row to the mirror.
	TransactionWriter interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}
)
