package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMeans describes how the invoice is to be paid
type PaymentMeans struct {
	TypeCode               PaymentMeansType `json:"type_code"`
	Information            string           `json:"information,omitempty"`
	SEPACreditorIdentifier string           `json:"sepa_creditor_identifier,omitempty"`
	SEPAMandateReference   string           `json:"sepa_mandate_reference,omitempty"`
	FinancialCard          *FinancialCard   `json:"financial_card,omitempty"`
}

// FinancialCard is the payment card used for the invoice
type FinancialCard struct {
	ID             string `json:"id"` // Primary account number, usually masked
	CardholderName string `json:"cardholder_name,omitempty"`
}

// BankAccount is a creditor or debitor financial account
type BankAccount struct {
	IBAN          string `json:"iban,omitempty"`
	ProprietaryID string `json:"proprietary_id,omitempty"`
	Name          string `json:"name,omitempty"` // Account holder
	BIC           string `json:"bic,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
}

// PaymentTerms is one set of payment conditions
type PaymentTerms struct {
	Description          string     `json:"description,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	DirectDebitMandateID string     `json:"direct_debit_mandate_id,omitempty"`

	// Discount terms, Extended only
	DiscountDays    *int             `json:"discount_days,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountBasis   *decimal.Decimal `json:"discount_basis,omitempty"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty"`
}

// HasDiscount reports whether discount terms are present
func (pt *PaymentTerms) HasDiscount() bool {
	return pt.DiscountPercent != nil || pt.DiscountAmount != nil
}
