package validation

import (
	"fmt"
	"strings"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
)

type rule struct {
	id       string
	profiles profile.Profile
	check    func(v *Validator, inv *model.Invoice) []*model.BusinessRuleViolation
}

var presence = map[profile.Field]func(*model.Invoice) bool{
	profile.FieldDocumentID: func(inv *model.Invoice) bool { return strings.TrimSpace(inv.InvoiceNo) != "" },
	profile.FieldIssueDate:  func(inv *model.Invoice) bool { return inv.InvoiceDate != nil },
	profile.FieldTypeCode: func(inv *model.Invoice) bool {
		return inv.Type != "" && inv.Type != model.InvoiceTypeUnknown
	},
	profile.FieldCurrency: func(inv *model.Invoice) bool {
		return inv.Currency != "" && inv.Currency != model.CurrencyUnknown
	},
	profile.FieldSellerName: func(inv *model.Invoice) bool { return inv.Seller != nil && inv.Seller.Name != "" },
	profile.FieldBuyerName:  func(inv *model.Invoice) bool { return inv.Buyer != nil && inv.Buyer.Name != "" },
	profile.FieldSellerCountry: func(inv *model.Invoice) bool {
		return inv.Seller != nil && inv.Seller.Country != "" && inv.Seller.Country != model.CountryUnknown
	},
	profile.FieldSellerCity:      func(inv *model.Invoice) bool { return inv.Seller != nil && inv.Seller.City != "" },
	profile.FieldSellerPostcode:  func(inv *model.Invoice) bool { return inv.Seller != nil && inv.Seller.Postcode != "" },
	profile.FieldSellerContact:   func(inv *model.Invoice) bool { return inv.Seller != nil && inv.Seller.Contact != nil },
	profile.FieldTotalGrand:      totalsComputable,
	profile.FieldTotalDuePayable: totalsComputable,
	profile.FieldLineItem:        func(inv *model.Invoice) bool { return len(inv.LineItems) > 0 },
	profile.FieldPaymentMeans: func(inv *model.Invoice) bool {
		return inv.PaymentMeans != nil && inv.PaymentMeans.TypeCode != ""
	},
	profile.FieldBuyerReference: func(inv *model.Invoice) bool { return strings.TrimSpace(inv.BuyerReference) != "" },
}

// Totals are computable when given explicitly or derivable from lines or
// the tax breakdown
func totalsComputable(inv *model.Invoice) bool {
	return inv.Totals != nil || len(inv.LineItems) > 0 || len(inv.Taxes) > 0
}

// Type codes XRechnung accepts (BR-DE-17)
var xrechnungTypeCodes = map[model.InvoiceType]bool{
	model.InvoiceTypePartial:             true,
	model.InvoiceTypeInvoice:             true,
	model.InvoiceTypeCorrection:          true,
	model.InvoiceTypeSelfBilled:          true,
	model.InvoiceTypeCreditNote:          true,
	model.InvoiceTypePartialConstruction: true,
	model.InvoiceTypePartialFinalConstr:  true,
	model.InvoiceTypeFinalConstruction:   true,
}

// Type codes the first ZUGFeRD generation accepts below Extended
var v1TypeCodes = map[model.InvoiceType]bool{
	model.InvoiceTypeInvoice:            true,
	model.InvoiceTypeCreditNote:         true,
	model.InvoiceTypeDebitNoteFinancial: true,
	model.InvoiceTypeSelfBilled:         true,
}

var commonRules = []rule{
	{id: "BR-21", profiles: profile.All, check: checkLineIDs},
	{id: "ZF-TAX-01", profiles: profile.All &^ profile.Extended, check: checkVATOnly},
	{id: "BR-CO-4", profiles: profile.FromBasic, check: checkLineTaxCategory},
}

var xrechnungRules = []rule{
	{id: "BR-DE-5", profiles: profile.AnyXRechnung, check: checkContactName},
	{id: "BR-DE-6", profiles: profile.AnyXRechnung, check: checkContactPhone},
	{id: "BR-DE-7", profiles: profile.AnyXRechnung, check: checkContactEmail},
	{id: "BR-DE-17", profiles: profile.AnyXRechnung, check: checkXRechnungTypeCode},
}

var v1Rules = []rule{
	{id: "ZF-TYPE-01", profiles: profile.Basic | profile.Comfort, check: checkV1TypeCode},
}

func rulesFor(version profile.Version) []rule {
	rules := append([]rule{}, commonRules...)
	if version == profile.Version1 {
		return append(rules, v1Rules...)
	}
	return append(rules, xrechnungRules...)
}

func violation(id, field, format string, args ...interface{}) []*model.BusinessRuleViolation {
	return []*model.BusinessRuleViolation{model.NewBusinessRuleViolation(id, field, fmt.Sprintf(format, args...))}
}

func checkLineIDs(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	var out []*model.BusinessRuleViolation
	seen := make(map[string]bool, len(inv.LineItems))
	for i, li := range inv.LineItems {
		switch {
		case strings.TrimSpace(li.LineID) == "":
			out = append(out, violation("BR-21", "line_items", "line %d has no line identifier", i+1)...)
		case seen[li.LineID]:
			out = append(out, violation("BR-21", "line_items", "line identifier %q is not unique", li.LineID)...)
		}
		seen[li.LineID] = true
	}
	return out
}

func checkVATOnly(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	var out []*model.BusinessRuleViolation
	for _, t := range inv.Taxes {
		if t.TypeCode != "" && t.TypeCode != model.TaxTypeVAT {
			out = append(out, violation("ZF-TAX-01", "taxes", "tax type %s is only allowed in Extended", t.TypeCode)...)
		}
	}
	for _, li := range inv.BillableLines() {
		if li.TaxType != "" && li.TaxType != model.TaxTypeVAT {
			out = append(out, violation("ZF-TAX-01", "line_items", "line %s: tax type %s is only allowed in Extended", li.LineID, li.TaxType)...)
		}
	}
	for _, ac := range inv.AllowanceCharges {
		if ac.TaxType != "" && ac.TaxType != model.TaxTypeVAT {
			out = append(out, violation("ZF-TAX-01", "allowance_charges", "tax type %s is only allowed in Extended", ac.TaxType)...)
		}
	}
	return out
}

func checkLineTaxCategory(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	var out []*model.BusinessRuleViolation
	for _, li := range inv.BillableLines() {
		if li.TaxCategory == "" || li.TaxCategory == model.TaxCategoryUnknown {
			out = append(out, violation("BR-CO-4", "line_items", "line %s has no VAT category code", li.LineID)...)
		}
	}
	return out
}

func sellerContact(inv *model.Invoice) *model.Contact {
	if inv.Seller == nil {
		return nil
	}
	return inv.Seller.Contact
}

func checkContactName(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	c := sellerContact(inv)
	if c == nil || c.Name != "" || c.OrgUnit != "" {
		return nil
	}
	return violation("BR-DE-5", "seller.contact.name", "seller contact point name or department is required")
}

func checkContactPhone(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	c := sellerContact(inv)
	if c == nil || strings.TrimSpace(c.Phone) != "" {
		return nil
	}
	return violation("BR-DE-6", "seller.contact.phone", "seller contact telephone number is required")
}

func checkContactEmail(v *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	c := sellerContact(inv)
	if c == nil {
		return nil
	}
	if strings.TrimSpace(c.Email) == "" {
		return violation("BR-DE-7", "seller.contact.email", "seller contact email address is required")
	}
	if err := v.vd.Var(c.Email, "email"); err != nil {
		return violation("BR-DE-7", "seller.contact.email", "seller contact email address %q is not valid", c.Email)
	}
	return nil
}

func checkXRechnungTypeCode(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	if xrechnungTypeCodes[inv.Type] {
		return nil
	}
	return violation("BR-DE-17", "type", "invoice type code %s is not allowed in XRechnung", inv.Type)
}

func checkV1TypeCode(_ *Validator, inv *model.Invoice) []*model.BusinessRuleViolation {
	if v1TypeCodes[inv.Type] {
		return nil
	}
	return violation("ZF-TYPE-01", "type", "invoice type code %s is only allowed in Extended", inv.Type)
}
