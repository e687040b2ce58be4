package accounts

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// CreateAccountRequest is the JSON payload for account creation.
type CreateAccountRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Type           string  `json:"type" validate:"required,oneof=CONTROL SUB_CONTROL DETAIL"`
	Nature         string  `json:"nature" validate:"required,oneof=DEBIT CREDIT"`
	Category       string  `json:"category" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubCategory    string  `json:"subCategory"`
	ParentID       *int64  `json:"parentId"`
	IsCashAccount  bool    `json:"isCashAccount"`
	IsBankAccount  bool    `json:"isBankAccount"`
	OpeningBalance float64 `json:"openingBalance"`
	OpeningDate    string  `json:"openingDate"`
}

// UpdateAccountRequest is the JSON payload for account updates.
type UpdateAccountRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	SubCategory   string `json:"subCategory"`
	ParentID      *int64 `json:"parentId"`
	IsCashAccount bool   `json:"isCashAccount"`
	IsBankAccount bool   `json:"isBankAccount"`
	IsActive      bool   `json:"isActive"`
}

// ReparentRequest is the JSON payload for moving an account.
type ReparentRequest struct {
	NewParentID int64 `json:"newParentId" validate:"required"`
}

func (r CreateAccountRequest) toInput() (CreateInput, error) {
	if err := validate.Struct(r); err != nil {
		return CreateInput{}, ErrInvalidInput
	}
	var openingDate time.Time
	if r.OpeningDate != "" {
		parsed, err := time.Parse("2006-01-02", r.OpeningDate)
		if err != nil {
			return CreateInput{}, ErrInvalidInput
		}
		openingDate = parsed
	}
	return CreateInput{
		Code:           r.Code,
		Name:           r.Name,
		Type:           AccountType(r.Type),
		Nature:         Nature(r.Nature),
		Category:       Category(r.Category),
		SubCategory:    SubCategory(r.SubCategory),
		ParentID:       r.ParentID,
		IsCashAccount:  r.IsCashAccount,
		IsBankAccount:  r.IsBankAccount,
		OpeningBalance: decimal.NewFromFloat(r.OpeningBalance),
		OpeningDate:    openingDate,
	}, nil
}

func (r UpdateAccountRequest) toInput() (UpdateInput, error) {
	if err := validate.Struct(r); err != nil {
		return UpdateInput{}, ErrInvalidInput
	}
	return UpdateInput{
		Name:          r.Name,
		SubCategory:   SubCategory(r.SubCategory),
		ParentID:      r.ParentID,
		IsCashAccount: r.IsCashAccount,
		IsBankAccount: r.IsBankAccount,
		IsActive:      r.IsActive,
	}, nil
}

// AccountResponse is the external account shape. Monetary values are rounded
// to two decimals at this boundary only.
type AccountResponse struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Nature         string  `json:"nature"`
	Category       string  `json:"category"`
	SubCategory    string  `json:"subCategory,omitempty"`
	ParentID       *int64  `json:"parentId,omitempty"`
	IsCashAccount  bool    `json:"isCashAccount"`
	IsBankAccount  bool    `json:"isBankAccount"`
	OpeningBalance float64 `json:"openingBalance"`
	OpeningDate    string  `json:"openingDate"`
	IsActive       bool    `json:"isActive"`
	IsSystem       bool    `json:"isSystem"`
}

// TreeResponse mirrors AccountResponse with nested children.
type TreeResponse struct {
	AccountResponse
	Children []TreeResponse `json:"children,omitempty"`
}

func toResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		Type:           string(a.Type),
		Nature:         string(a.Nature),
		Category:       string(a.Category),
		SubCategory:    string(a.SubCategory),
		ParentID:       a.ParentID,
		IsCashAccount:  a.IsCashAccount,
		IsBankAccount:  a.IsBankAccount,
		OpeningBalance: a.OpeningBalance.Round(2).InexactFloat64(),
		OpeningDate:    a.OpeningDate.Format("2006-01-02"),
		IsActive:       a.IsActive,
		IsSystem:       a.IsSystem,
	}
}

func toTreeResponse(n *TreeNode) TreeResponse {
	resp := TreeResponse{AccountResponse: toResponse(n.Account)}
	for _, c := range n.Children {
		resp.Children = append(resp.Children, toTreeResponse(c))
	}
	return resp
}
