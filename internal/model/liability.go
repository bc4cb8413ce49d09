package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type LiabilityCategory string

const (
	LiabilityTaxes              LiabilityCategory = "taxes"
	LiabilityTaxAccountant      LiabilityCategory = "tax_accountant"
	LiabilityInvoicesAccountant LiabilityCategory = "invoices_accountant"
	LiabilityMunicipal          LiabilityCategory = "municipal"
	LiabilityLawyer             LiabilityCategory = "lawyer"
	LiabilitySalaries           LiabilityCategory = "salaries"
	LiabilityInsurance          LiabilityCategory = "insurance"
	LiabilityLiabilities        LiabilityCategory = "liabilities"
	LiabilityOther              LiabilityCategory = "other"
	LiabilityCustom             LiabilityCategory = "custom"
)

func (c LiabilityCategory) Valid() bool {
	switch c {
	case LiabilityTaxes, LiabilityTaxAccountant, LiabilityInvoicesAccountant,
		LiabilityMunicipal, LiabilityLawyer, LiabilitySalaries,
		LiabilityInsurance, LiabilityLiabilities, LiabilityOther, LiabilityCustom:
		return true
	}
	return false
}

// Liability is a business obligation (tax, salary, insurance, ...) with the
// same paid/remaining invariant as a transaction.
type Liability struct {
	ID              int64             `db:"id" json:"id"`
	Category        LiabilityCategory `db:"category" json:"category"`
	CustomCategory  string            `db:"custom_category" json:"customCategory,omitempty"`
	Description     string            `db:"description" json:"description"`
	TotalAmount     decimal.Decimal   `db:"total_amount" json:"totalAmount"`
	PaidAmount      decimal.Decimal   `db:"paid_amount" json:"paidAmount"`
	RemainingAmount decimal.Decimal   `db:"remaining_amount" json:"remainingAmount"`
	DueDate         *time.Time        `db:"due_date" json:"dueDate,omitempty"`
	Recurring       bool              `db:"recurring" json:"recurring"`
}

// Key implements cache.Entry.
func (l Liability) Key() int64 { return l.ID }

// Recompute re-derives remaining_amount, flooring paid at zero.
func (l *Liability) Recompute() {
	if l.PaidAmount.IsNegative() {
		l.PaidAmount = decimal.Zero
	}
	l.RemainingAmount = l.TotalAmount.Sub(l.PaidAmount)
}
