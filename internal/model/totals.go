package model

import (
	"sort"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/zugferd/internal/decimal"
)

// Totals are the document level monetary summation
type Totals struct {
	LineTotal      decimal.Decimal  `json:"line_total"`
	ChargeTotal    *decimal.Decimal `json:"charge_total,omitempty"`
	AllowanceTotal *decimal.Decimal `json:"allowance_total,omitempty"`
	TaxBasis       decimal.Decimal  `json:"tax_basis"`
	TaxTotal       decimal.Decimal  `json:"tax_total"`
	Rounding       *decimal.Decimal `json:"rounding,omitempty"`
	GrandTotal     decimal.Decimal  `json:"grand_total"`
	Prepaid        *decimal.Decimal `json:"prepaid,omitempty"`
	DuePayable     decimal.Decimal  `json:"due_payable"`
}

// EffectiveTotals returns the explicit totals or computes them from the
// lines, document allowances/charges and the tax breakdown. The invoice is
// not modified.
func (inv *Invoice) EffectiveTotals() Totals {
	if inv.Totals != nil {
		return *inv.Totals
	}

	var t Totals
	for _, li := range inv.LineItems {
		t.LineTotal = t.LineTotal.Add(li.EffectiveLineTotal())
	}

	charges, allowances := decimal.Zero, decimal.Zero
	for _, ac := range inv.AllowanceCharges {
		if ac.ChargeIndicator {
			charges = charges.Add(ac.ActualAmount)
		} else {
			allowances = allowances.Add(ac.ActualAmount)
		}
	}
	for _, sc := range inv.ServiceCharges {
		charges = charges.Add(sc.Amount)
	}
	if len(inv.AllowanceCharges) > 0 || len(inv.ServiceCharges) > 0 {
		t.ChargeTotal = &charges
		t.AllowanceTotal = &allowances
	}

	t.TaxBasis = dec.Round(t.LineTotal.Sub(allowances).Add(charges))
	t.TaxTotal = inv.effectiveTaxTotal()
	t.GrandTotal = dec.Round(t.TaxBasis.Add(t.TaxTotal))
	t.DuePayable = t.GrandTotal
	return t
}

func (inv *Invoice) effectiveTaxTotal() decimal.Decimal {
	if len(inv.Taxes) > 0 {
		total := decimal.Zero
		for _, tax := range inv.Taxes {
			total = total.Add(tax.TaxAmount)
		}
		return dec.Round(total)
	}

	total := decimal.Zero
	for _, g := range inv.lineTaxGroups() {
		total = total.Add(g.TaxAmount)
	}
	return dec.Round(total)
}

// lineTaxGroups derives a breakdown from the lines, grouped by category and rate
func (inv *Invoice) lineTaxGroups() []Tax {
	groups := make(map[string]*Tax)
	var keys []string
	for _, li := range inv.BillableLines() {
		key := string(li.TaxCategory) + "/" + li.TaxPercent.String()
		g, ok := groups[key]
		if !ok {
			g = &Tax{TypeCode: li.TaxType, CategoryCode: li.TaxCategory, Percent: li.TaxPercent}
			groups[key] = g
			keys = append(keys, key)
		}
		g.BasisAmount = g.BasisAmount.Add(li.EffectiveLineTotal())
	}
	sort.Strings(keys)

	taxes := make([]Tax, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.TaxAmount = dec.Percentage(g.BasisAmount, g.Percent)
		taxes = append(taxes, *g)
	}
	return taxes
}

// EffectiveTaxes returns the explicit breakdown or the one derived from lines
func (inv *Invoice) EffectiveTaxes() []Tax {
	if len(inv.Taxes) > 0 {
		return inv.Taxes
	}
	return inv.lineTaxGroups()
}
