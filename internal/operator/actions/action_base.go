package actions

import (
	"context"

	"github.com/creditguard/ledger-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
