package ledger

import (
	"fmt"

	"github.com/frostline-erp/frostline/internal/platform/httpx"
)

var (
	ErrAccountNotFound = fmt.Errorf("ledger: account %w", httpx.ErrNotFound)
	ErrInvalidRange    = fmt.Errorf("ledger: invalid date range: %w", httpx.ErrValidation)
)
