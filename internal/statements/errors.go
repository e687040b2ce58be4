package statements

import (
	"fmt"

	"github.com/frostline-erp/frostline/internal/platform/httpx"
)

var ErrInvalidRange = fmt.Errorf("statements: period end before start: %w", httpx.ErrValidation)
