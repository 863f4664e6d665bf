package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeLineItem represents one invoice line
type TradeLineItem struct {
	LineID string `json:"line_id"`
	Notes  []Note `json:"notes,omitempty"`

	// Product
	GlobalID         *GlobalID `json:"global_id,omitempty"`
	SellerAssignedID string    `json:"seller_assigned_id,omitempty"`
	BuyerAssignedID  string    `json:"buyer_assigned_id,omitempty"`
	Name             string    `json:"name,omitempty"`
	Description      string    `json:"description,omitempty"`

	// Quantities and prices
	UnitCode       QuantityCode     `json:"unit_code,omitempty"`
	BilledQuantity decimal.Decimal  `json:"billed_quantity"`
	UnitQuantity   *decimal.Decimal `json:"unit_quantity,omitempty"` // Price basis quantity
	GrossUnitPrice *decimal.Decimal `json:"gross_unit_price,omitempty"`
	NetUnitPrice   *decimal.Decimal `json:"net_unit_price,omitempty"`

	// Allowances and charges applied to the gross price
	PriceAllowanceCharges []AllowanceCharge `json:"price_allowance_charges,omitempty"`

	// Tax
	TaxType     TaxType         `json:"tax_type,omitempty"`
	TaxCategory TaxCategory     `json:"tax_category,omitempty"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`

	// Line level allowances and charges
	AllowanceCharges []AllowanceCharge `json:"allowance_charges,omitempty"`

	BillingPeriodStart *time.Time       `json:"billing_period_start,omitempty"`
	BillingPeriodEnd   *time.Time       `json:"billing_period_end,omitempty"`
	ActualDeliveryDate *time.Time       `json:"actual_delivery_date,omitempty"`
	LineTotalAmount    *decimal.Decimal `json:"line_total_amount,omitempty"`

	// References
	BuyerOrderReference   *ReferencedDocument            `json:"buyer_order_reference,omitempty"`
	ContractReference     *ReferencedDocument            `json:"contract_reference,omitempty"`
	DeliveryNoteReference *ReferencedDocument            `json:"delivery_note_reference,omitempty"`
	AdditionalReferences  []AdditionalReferencedDocument `json:"additional_references,omitempty"`
	ReceivableAccountID   string                         `json:"receivable_account_id,omitempty"`
}

// IsCommentLine reports a line carrying only notes
func (li *TradeLineItem) IsCommentLine() bool {
	return len(li.Notes) > 0 && li.BilledQuantity.IsZero() && li.Description == ""
}

// EffectiveLineTotal returns the supplied line net amount or computes
// quantity * net price / basis quantity + charges - allowances
func (li *TradeLineItem) EffectiveLineTotal() decimal.Decimal {
	if li.LineTotalAmount != nil {
		return *li.LineTotalAmount
	}
	if li.IsCommentLine() || li.NetUnitPrice == nil {
		return decimal.Zero
	}

	total := li.BilledQuantity.Mul(*li.NetUnitPrice)
	if li.UnitQuantity != nil && !li.UnitQuantity.IsZero() {
		total = total.Div(*li.UnitQuantity)
	}
	for _, ac := range li.AllowanceCharges {
		if ac.ChargeIndicator {
			total = total.Add(ac.ActualAmount)
		} else {
			total = total.Sub(ac.ActualAmount)
		}
	}
	return total.Round(2)
}

// AddNote appends a line note
func (li *TradeLineItem) AddNote(content string, subject SubjectCode) {
	li.Notes = append(li.Notes, Note{Content: content, SubjectCode: subject})
}

// AddTradeAllowanceCharge appends a line level allowance or charge
func (li *TradeLineItem) AddTradeAllowanceCharge(isDiscount bool, basis *decimal.Decimal, actual decimal.Decimal, reason string) {
	ac := NewTradeAllowanceCharge(isDiscount, actual, reason)
	ac.BasisAmount = basis
	li.AllowanceCharges = append(li.AllowanceCharges, ac)
}

// AddPriceAllowanceCharge appends an allowance or charge on the gross price
func (li *TradeLineItem) AddPriceAllowanceCharge(isDiscount bool, actual decimal.Decimal, reason string) {
	li.PriceAllowanceCharges = append(li.PriceAllowanceCharges, NewTradeAllowanceCharge(isDiscount, actual, reason))
}

// Note is a free text note with an optional subject qualifier
type Note struct {
	Content     string      `json:"content"`
	SubjectCode SubjectCode `json:"subject_code,omitempty"`
	ContentCode string      `json:"content_code,omitempty"`
}
