package accounts

import (
	"fmt"

	"github.com/frostline-erp/frostline/internal/platform/httpx"
)

// Sentinel errors wrap the httpx taxonomy so handlers can map them to a
// status code with errors.Is.
var (
	ErrNotFound        = fmt.Errorf("accounts: account %w", httpx.ErrNotFound)
	ErrDuplicateCode   = fmt.Errorf("accounts: code already exists: %w", httpx.ErrConflict)
	ErrRootNotControl  = fmt.Errorf("accounts: root account must be CONTROL: %w", httpx.ErrValidation)
	ErrParentIsDetail  = fmt.Errorf("accounts: DETAIL account cannot have children: %w", httpx.ErrValidation)
	ErrControlUnderSub = fmt.Errorf("accounts: CONTROL account cannot sit under SUB_CONTROL: %w", httpx.ErrValidation)
	ErrCycle           = fmt.Errorf("accounts: reparenting would create a cycle: %w", httpx.ErrValidation)
	ErrSystemAccount   = fmt.Errorf("accounts: system account is protected: %w", httpx.ErrValidation)
	ErrHasChildren     = fmt.Errorf("accounts: account still has children: %w", httpx.ErrValidation)
	ErrInvalidInput    = fmt.Errorf("accounts: invalid input: %w", httpx.ErrValidation)
)
