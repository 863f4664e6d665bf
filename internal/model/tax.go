package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax is one entry of the document level tax breakdown
type Tax struct {
	TypeCode                   TaxType          `json:"type_code"`
	CategoryCode               TaxCategory      `json:"category_code"`
	Percent                    decimal.Decimal  `json:"percent"`
	BasisAmount                decimal.Decimal  `json:"basis_amount"`
	TaxAmount                  decimal.Decimal  `json:"tax_amount"`
	ExemptionReason            string           `json:"exemption_reason,omitempty"`
	ExemptionReasonCode        string           `json:"exemption_reason_code,omitempty"` // VATEX code list
	AllowanceChargeBasisAmount *decimal.Decimal `json:"allowance_charge_basis_amount,omitempty"`
	TaxPointDate               *time.Time       `json:"tax_point_date,omitempty"`
}

// AllowanceCharge is a discount or surcharge. ChargeIndicator is stored as
// on the wire: true for a charge, false for an allowance.
type AllowanceCharge struct {
	ChargeIndicator bool             `json:"charge_indicator"`
	BasisAmount     *decimal.Decimal `json:"basis_amount,omitempty"`
	ActualAmount    decimal.Decimal  `json:"actual_amount"`
	Percent         *decimal.Decimal `json:"percent,omitempty"`
	ReasonCode      string           `json:"reason_code,omitempty"`
	Reason          string           `json:"reason,omitempty"`
	Currency        CurrencyCode     `json:"currency,omitempty"` // Overrides the document currency

	// Linked tax, only used for document level entries
	TaxType     TaxType          `json:"tax_type,omitempty"`
	TaxCategory TaxCategory      `json:"tax_category,omitempty"`
	TaxPercent  *decimal.Decimal `json:"tax_percent,omitempty"`
}

// NewTradeAllowanceCharge builds an allowance (isDiscount) or charge
func NewTradeAllowanceCharge(isDiscount bool, actual decimal.Decimal, reason string) AllowanceCharge {
	return AllowanceCharge{
		ChargeIndicator: !isDiscount,
		ActualAmount:    actual,
		Reason:          reason,
	}
}

// IsDiscount is the inverse of ChargeIndicator
func (ac AllowanceCharge) IsDiscount() bool {
	return !ac.ChargeIndicator
}

// ServiceCharge is a logistics service charge (V1 and Extended)
type ServiceCharge struct {
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	TaxType     TaxType          `json:"tax_type,omitempty"`
	TaxCategory TaxCategory      `json:"tax_category,omitempty"`
	TaxPercent  *decimal.Decimal `json:"tax_percent,omitempty"`
}
