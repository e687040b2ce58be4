// Package accounts maintains the hierarchical chart of accounts.
package accounts

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates node kinds in the chart of accounts tree.
// Only DETAIL accounts are postable; CONTROL and SUB_CONTROL group them.
type AccountType string

const (
	TypeControl    AccountType = "CONTROL"
	TypeSubControl AccountType = "SUB_CONTROL"
	TypeDetail     AccountType = "DETAIL"
)

// Nature indicates which side increases the account balance.
type Nature string

const (
	NatureDebit  Nature = "DEBIT"
	NatureCredit Nature = "CREDIT"
)

// Category enumerates top-level statement categories.
type Category string

const (
	CategoryAsset     Category = "ASSET"
	CategoryLiability Category = "LIABILITY"
	CategoryEquity    Category = "EQUITY"
	CategoryRevenue   Category = "REVENUE"
	CategoryExpense   Category = "EXPENSE"
)

// SubCategory values bucket accounts into statement sections.
type SubCategory string

const (
	SubCurrentAsset      SubCategory = "CURRENT_ASSET"
	SubFixedAsset        SubCategory = "FIXED_ASSET"
	SubIntangibleAsset   SubCategory = "INTANGIBLE_ASSET"
	SubCurrentLiability  SubCategory = "CURRENT_LIABILITY"
	SubLongTermLiability SubCategory = "LONG_TERM_LIABILITY"
	SubShareCapital      SubCategory = "SHARE_CAPITAL"
	SubReserves          SubCategory = "RESERVES"
	SubRetainedEarnings  SubCategory = "RETAINED_EARNINGS"
	SubOperatingRevenue  SubCategory = "OPERATING_REVENUE"
	SubOtherRevenue      SubCategory = "OTHER_REVENUE"
	SubCostOfGoodsSold   SubCategory = "COST_OF_GOODS_SOLD"
	SubAdministrative    SubCategory = "ADMINISTRATIVE_EXPENSE"
	SubSelling           SubCategory = "SELLING_EXPENSE"
	SubGeneral           SubCategory = "GENERAL_EXPENSE"
	SubFinancial         SubCategory = "FINANCIAL_EXPENSE"
)

// Account models a chart of accounts node.
type Account struct {
	ID             int64
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
	IsActive       bool
	IsSystem       bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPostable reports whether vouchers may post to this account.
func (a Account) IsPostable() bool {
	return a.Type == TypeDetail
}

// CategoryPrefix returns the single-digit root code prefix for a category.
// The scheme is fixed for compatibility with persisted codes.
func CategoryPrefix(c Category) string {
	switch c {
	case CategoryAsset:
		return "1"
	case CategoryLiability:
		return "2"
	case CategoryEquity:
		return "3"
	case CategoryRevenue:
		return "4"
	case CategoryExpense:
		return "5"
	default:
		return "9"
	}
}
