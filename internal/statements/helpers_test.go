package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

var nextTestID int64

func detail(code, name string, cat accounts.Category, sub accounts.SubCategory) accounts.Account {
	nextTestID++
	nature := accounts.NatureDebit
	if cat == accounts.CategoryLiability || cat == accounts.CategoryEquity || cat == accounts.CategoryRevenue {
		nature = accounts.NatureCredit
	}
	return accounts.Account{
		ID:          nextTestID,
		Code:        code,
		Name:        name,
		Type:        accounts.TypeDetail,
		Nature:      nature,
		Category:    cat,
		SubCategory: sub,
		IsActive:    true,
	}
}

func cashAccount(code, name string) accounts.Account {
	a := detail(code, name, accounts.CategoryAsset, accounts.SubCurrentAsset)
	a.IsCashAccount = true
	return a
}

func amt(a accounts.Account, v string) AccountAmount {
	return AccountAmount{Account: a, Amount: dec(v)}
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
