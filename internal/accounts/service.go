package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateInput groups fields required to create an account.
type CreateInput struct {
	Code           string
	Name           string
	Type           AccountType
	Nature         Nature
	Category       Category
	SubCategory    SubCategory
	ParentID       *int64
	IsCashAccount  bool
	IsBankAccount  bool
	OpeningBalance decimal.Decimal
	OpeningDate    time.Time
	IsSystem       bool
}

// UpdateInput groups mutable account fields; nil parent keeps the account at root.
type UpdateInput struct {
	Name          string
	SubCategory   SubCategory
	ParentID      *int64
	IsCashAccount bool
	IsBankAccount bool
	IsActive      bool
}

// Service coordinates chart of accounts operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs the accounts service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create validates parent compatibility, generates a code when none is
// supplied, and persists the account.
func (s *Service) Create(ctx context.Context, in CreateInput) (Account, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Account{}, ErrInvalidInput
	}
	switch in.Type {
	case TypeControl, TypeSubControl, TypeDetail:
	default:
		return Account{}, ErrInvalidInput
	}
	switch in.Nature {
	case NatureDebit, NatureCredit:
	default:
		return Account{}, ErrInvalidInput
	}

	var parent *Account
	if in.ParentID != nil {
		p, err := s.repo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return Account{}, err
		}
		if err := validateParent(p, in.Type); err != nil {
			return Account{}, err
		}
		parent = &p
	} else if in.Type != TypeControl {
		return Account{}, ErrRootNotControl
	}

	code := strings.TrimSpace(in.Code)
	if code != "" {
		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return Account{}, err
		}
		if exists {
			return Account{}, ErrDuplicateCode
		}
	} else {
		codes, err := s.repo.Codes(ctx)
		if err != nil {
			return Account{}, err
		}
		if parent != nil {
			code = NextChildCode(parent.Code, codes)
		} else {
			code = NextRootCode(in.Category, codes)
		}
	}

	openingDate := in.OpeningDate
	if openingDate.IsZero() {
		openingDate = s.now()
	}

	return s.repo.Insert(ctx, Account{
		Code:           code,
		Name:           in.Name,
		Type:           in.Type,
		Nature:         in.Nature,
		Category:       in.Category,
		SubCategory:    in.SubCategory,
		ParentID:       in.ParentID,
		IsCashAccount:  in.IsCashAccount,
		IsBankAccount:  in.IsBankAccount,
		OpeningBalance: in.OpeningBalance,
		OpeningDate:    openingDate,
		IsActive:       true,
		IsSystem:       in.IsSystem,
	})
}

// Update applies mutable fields, re-validating any parent reassignment
// against type compatibility and cycle formation.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if acct.IsSystem {
		return Account{}, ErrSystemAccount
	}

	if in.ParentID != nil {
		if err := s.validateReparent(ctx, acct, *in.ParentID); err != nil {
			return Account{}, err
		}
	} else if acct.Type != TypeControl {
		return Account{}, ErrRootNotControl
	}

	acct.Name = in.Name
	acct.SubCategory = in.SubCategory
	acct.ParentID = in.ParentID
	acct.IsCashAccount = in.IsCashAccount
	acct.IsBankAccount = in.IsBankAccount
	acct.IsActive = in.IsActive
	return s.repo.Update(ctx, acct)
}

// Reparent moves an account under a new parent after cycle and type checks.
func (s *Service) Reparent(ctx context.Context, id, newParentID int64) (Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if err := s.validateReparent(ctx, acct, newParentID); err != nil {
		return Account{}, err
	}
	acct.ParentID = &newParentID
	return s.repo.Update(ctx, acct)
}

func (s *Service) validateReparent(ctx context.Context, acct Account, newParentID int64) error {
	if newParentID == acct.ID {
		return ErrCycle
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]Account, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}
	parent, ok := byID[newParentID]
	if !ok {
		return ErrNotFound
	}
	if err := validateParent(parent, acct.Type); err != nil {
		return err
	}
	if hasAncestor(byID, newParentID, acct.ID) {
		return ErrCycle
	}
	return nil
}

// Delete soft-deletes an account. System accounts and accounts that still
// have non-deleted children are refused.
func (s *Service) Delete(ctx context.Context, id int64) error {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if acct.IsSystem {
		return ErrSystemAccount
	}
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrHasChildren
	}
	return s.repo.SoftDelete(ctx, id, s.now())
}

// Get returns a single account by id.
func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByCode returns a single account by code.
func (s *Service) GetByCode(ctx context.Context, code string) (Account, error) {
	return s.repo.GetByCode(ctx, code)
}

// List returns all non-deleted accounts ordered by code.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// Tree returns the chart of accounts as a forest.
func (s *Service) Tree(ctx context.Context) ([]*TreeNode, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(all), nil
}

func validateParent(parent Account, childType AccountType) error {
	if parent.Type == TypeDetail {
		return ErrParentIsDetail
	}
	if parent.Type == TypeSubControl && childType == TypeControl {
		return ErrControlUnderSub
	}
	return nil
}
