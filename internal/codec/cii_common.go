package codec

import (
	"encoding/base64"
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/zugferd/internal/decimal"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// commentPlaceholder is the product name written for comment lines where
// the schema forbids an empty name
const commentPlaceholder = "TEXT"

const (
	udtDateTime = "udt:DateTimeString"
	udtDate     = "udt:DateString"
	qdtDateTime = "qdt:DateTimeString"
	udtBool     = "udt:Indicator"
)

// ciiWriter adds the CII building blocks shared by 1.0 and 2.x on top of
// the gated writer. The two generations differ in a few element names and
// in which amounts carry a currency attribute.
type ciiWriter struct {
	*xmlio.Writer
	inv *model.Invoice
	v1  bool
}

func newCIIWriter(w *xmlio.Writer, inv *model.Invoice, v1 bool) *ciiWriter {
	return &ciiWriter{Writer: w, inv: inv, v1: v1}
}

func (c *ciiWriter) percentTag() string {
	if c.v1 {
		return "ram:ApplicablePercent"
	}
	return "ram:RateApplicablePercent"
}

// money writes an amount; 1.0 qualifies every amount with the currency
func (c *ciiWriter) money(field profile.Field, tag string, v *decimal.Decimal) {
	if c.v1 {
		c.Amount(field, tag, v, xmlio.A("currencyID", string(c.inv.Currency)))
		return
	}
	c.Amount(field, tag, v)
}

func (c *ciiWriter) moneyValue(field profile.Field, tag string, v decimal.Decimal) {
	c.money(field, tag, &v)
}

// acMoney writes an allowance/charge amount. A currency other than the
// document currency is always qualified.
func (c *ciiWriter) acMoney(field profile.Field, tag string, v *decimal.Decimal, ac model.AllowanceCharge) {
	if cur := amountCurrency(ac, c.inv.Currency); cur != c.inv.Currency {
		c.Amount(field, tag, v, xmlio.A("currencyID", string(cur)))
		return
	}
	c.money(field, tag, v)
}

func (c *ciiWriter) globalID(field profile.Field, tag string, id *model.GlobalID) {
	if id.IsEmpty() {
		return
	}
	scheme := ""
	if id.Scheme.IsKnown() {
		scheme = string(id.Scheme)
	}
	c.Element(field, tag, id.ID, xmlio.A("schemeID", scheme))
}

func (c *ciiWriter) contextParameter(field profile.Field, tag, id string) {
	if id == "" {
		return
	}
	c.Section(field, tag, func() {
		c.Required("", "ram:ID", id)
	})
}

func (c *ciiWriter) note(field profile.Field, n model.Note) {
	c.Section(field, "ram:IncludedNote", func() {
		if !c.v1 {
			c.Element(profile.FieldNoteContentCode, "ram:ContentCode", n.ContentCode)
		}
		c.Required("", "ram:Content", n.Content)
		if n.SubjectCode != model.SubjectCodeUnknown {
			c.Element(profile.FieldNoteSubjectCode, "ram:SubjectCode", string(n.SubjectCode))
		}
	})
}

// party writes a trade party in the order ID, GlobalID, Name, Description,
// legal organization, contact, address, electronic address, tax
// registrations
func (c *ciiWriter) party(field profile.Field, tag string, p *model.Party) {
	if p == nil {
		return
	}
	c.Section(field, tag, func() {
		if p.ID != nil {
			c.globalID(profile.FieldPartyID, "ram:ID", p.ID)
		}
		if p.GlobalID != nil {
			c.globalID(profile.FieldPartyGlobalID, "ram:GlobalID", p.GlobalID)
		}
		c.Element(profile.FieldPartyName, "ram:Name", p.Name)
		c.Element(profile.FieldPartyDescription, "ram:Description", p.Description)

		if lo := p.LegalOrganization; lo != nil {
			c.Optional(profile.FieldPartyLegalOrg, "ram:SpecifiedLegalOrganization", func() {
				if lo.ID != nil {
					c.globalID(profile.FieldPartyLegalOrg, "ram:ID", lo.ID)
				}
				c.Element(profile.FieldPartyTradingName, "ram:TradingBusinessName", lo.TradingName)
			})
		}

		c.contact(p.Contact)
		c.address(p)

		if ea := p.ElectronicAddress; ea != nil && ea.Address != "" {
			c.Section(profile.FieldPartyElectronicAddress, "ram:URIUniversalCommunication", func() {
				c.Required("", "ram:URIID", ea.Address, xmlio.A("schemeID", string(ea.Scheme)))
			})
		}

		for _, reg := range p.TaxRegistrations {
			if reg.No == "" {
				continue
			}
			c.Section(profile.FieldPartyTaxRegistration, "ram:SpecifiedTaxRegistration", func() {
				c.Required("", "ram:ID", reg.No, xmlio.A("schemeID", string(reg.Scheme)))
			})
		}
	})
}

func (c *ciiWriter) contact(ct *model.Contact) {
	if ct == nil {
		return
	}
	c.Optional(profile.FieldPartyContact, "ram:DefinedTradeContact", func() {
		c.Element("", "ram:PersonName", ct.Name)
		c.Element("", "ram:DepartmentName", ct.OrgUnit)
		if ct.Phone != "" {
			c.Section("", "ram:TelephoneUniversalCommunication", func() {
				c.Required("", "ram:CompleteNumber", ct.Phone)
			})
		}
		if ct.Fax != "" {
			c.Section(profile.FieldPartyContactFax, "ram:FaxUniversalCommunication", func() {
				c.Required("", "ram:CompleteNumber", ct.Fax)
			})
		}
		if ct.Email != "" {
			c.Section("", "ram:EmailURIUniversalCommunication", func() {
				c.Required("", "ram:URIID", ct.Email)
			})
		}
	})
}

// address splits contact name and street across the first two lines
func (c *ciiWriter) address(p *model.Party) {
	if !p.HasAddress() {
		return
	}
	lineOne, lineTwo := p.Street, ""
	if p.ContactName != "" {
		lineOne, lineTwo = p.ContactName, p.Street
	}
	c.Optional(profile.FieldPartyAddress, "ram:PostalTradeAddress", func() {
		c.Element(profile.FieldPartyAddressDetail, "ram:PostcodeCode", p.Postcode)
		c.Element(profile.FieldPartyAddressDetail, "ram:LineOne", lineOne)
		c.Element(profile.FieldPartyAddressDetail, "ram:LineTwo", lineTwo)
		if !c.v1 {
			c.Element(profile.FieldPartyAddressDetail, "ram:LineThree", p.AddressLine3)
		}
		c.Element(profile.FieldPartyAddressDetail, "ram:CityName", p.City)
		if p.Country != model.CountryUnknown {
			c.Element("", "ram:CountryID", string(p.Country))
		}
		if !c.v1 {
			c.Element(profile.FieldPartyAddressDetail, "ram:CountrySubDivisionName", p.CountrySubdivision)
		}
	})
}

// referencedDocument writes an order, contract, delivery note, despatch
// advice or invoice reference
func (c *ciiWriter) referencedDocument(field profile.Field, tag string, doc *model.ReferencedDocument) {
	if doc == nil || doc.ID == "" {
		return
	}
	c.Section(field, tag, func() {
		if c.v1 {
			if doc.IssueDate != nil {
				c.Required("", "ram:IssueDateTime", xmlio.FormatISODate(*doc.IssueDate))
			}
			c.Element("", "ram:LineID", doc.LineID)
			c.Required("", "ram:ID", doc.ID)
			return
		}
		c.Required("", "ram:IssuerAssignedID", doc.ID)
		c.Element("", "ram:LineID", doc.LineID)
		c.Date("", "ram:FormattedIssueDateTime", qdtDateTime, doc.IssueDate)
	})
}

func (c *ciiWriter) additionalReference(field profile.Field, doc model.AdditionalReferencedDocument) {
	if doc.ID == "" {
		return
	}
	c.Section(field, "ram:AdditionalReferencedDocument", func() {
		if c.v1 {
			if doc.IssueDate != nil {
				c.Required("", "ram:IssueDateTime", xmlio.FormatISODate(*doc.IssueDate))
			}
			c.Element("", "ram:TypeCode", string(doc.TypeCode))
			c.Required("", "ram:ID", doc.ID)
			return
		}
		c.Required("", "ram:IssuerAssignedID", doc.ID)
		c.Element("", "ram:URIID", doc.URI)
		c.Element("", "ram:TypeCode", string(doc.TypeCode))
		c.Element("", "ram:Name", doc.Name)
		if len(doc.Attachment) > 0 {
			c.Required(profile.FieldAttachment, "ram:AttachmentBinaryObject",
				base64.StdEncoding.EncodeToString(doc.Attachment),
				xmlio.A("mimeCode", doc.AttachmentMimeType()),
				xmlio.A("filename", doc.Filename))
		}
		c.Element("", "ram:ReferenceTypeCode", doc.ReferenceTypeCode)
		c.Date("", "ram:FormattedIssueDateTime", qdtDateTime, doc.IssueDate)
	})
}

// headerTax writes one entry of the document tax breakdown
func (c *ciiWriter) headerTax(t model.Tax) {
	c.Section(profile.FieldTax, "ram:ApplicableTradeTax", func() {
		c.moneyValue("", "ram:CalculatedAmount", t.TaxAmount)
		c.Element("", "ram:TypeCode", string(t.TypeCode))
		c.Element(profile.FieldTaxExemptionReason, "ram:ExemptionReason", t.ExemptionReason)
		c.moneyValue("", "ram:BasisAmount", t.BasisAmount)
		if !c.v1 {
			c.Amount(profile.FieldTaxAllowanceChargeBasis, "ram:AllowanceChargeBasisAmount", t.AllowanceChargeBasisAmount)
		}
		c.Element("", "ram:CategoryCode", string(t.CategoryCode))
		if !c.v1 {
			c.Element(profile.FieldTaxExemptionReasonCode, "ram:ExemptionReasonCode", t.ExemptionReasonCode)
			c.Date(profile.FieldTaxPointDate, "ram:TaxPointDate", udtDate, t.TaxPointDate)
		}
		c.Decimal("", c.percentTag(), &t.Percent, dec.PercentScale)
	})
}

// categoryTax writes the short tax block linked to a line, allowance or
// service charge
func (c *ciiWriter) categoryTax(field profile.Field, tag string, typ model.TaxType, category model.TaxCategory, percent *decimal.Decimal) {
	if typ == "" && category == "" && percent == nil {
		return
	}
	c.Section(field, tag, func() {
		c.Element("", "ram:TypeCode", string(typ))
		c.Element("", "ram:CategoryCode", string(category))
		c.Decimal("", c.percentTag(), percent, dec.PercentScale)
	})
}

// allowanceCharge writes a document or line level allowance/charge. The
// linked tax is only written for document level entries.
func (c *ciiWriter) allowanceCharge(field profile.Field, tag string, ac model.AllowanceCharge, withTax bool) {
	c.Section(field, tag, func() {
		c.Indicator("", "ram:ChargeIndicator", udtBool, ac.ChargeIndicator)
		if !c.v1 {
			c.Decimal(profile.FieldAllowanceChargePercent, "ram:CalculationPercent", ac.Percent, dec.PercentScale)
		}
		c.acMoney(profile.FieldAllowanceChargeBasis, "ram:BasisAmount", ac.BasisAmount, ac)
		c.acMoney("", "ram:ActualAmount", &ac.ActualAmount, ac)
		if !c.v1 {
			c.Element(profile.FieldAllowanceChargeReason, "ram:ReasonCode", ac.ReasonCode)
		}
		c.Element("", "ram:Reason", ac.Reason)
		if withTax {
			c.categoryTax("", "ram:CategoryTradeTax", ac.TaxType, ac.TaxCategory, ac.TaxPercent)
		}
	})
}

// priceAllowance writes an allowance/charge on the gross price
func (c *ciiWriter) priceAllowance(ac model.AllowanceCharge) {
	c.Section(profile.FieldLineGrossPriceAllowance, "ram:AppliedTradeAllowanceCharge", func() {
		c.Indicator("", "ram:ChargeIndicator", udtBool, ac.ChargeIndicator)
		c.acMoney("", "ram:ActualAmount", &ac.ActualAmount, ac)
		c.Element("", "ram:Reason", ac.Reason)
	})
}

func (c *ciiWriter) serviceCharge(sc model.ServiceCharge) {
	c.Section(profile.FieldLogisticsServiceCharge, "ram:SpecifiedLogisticsServiceCharge", func() {
		c.Required("", "ram:Description", sc.Description)
		c.moneyValue("", "ram:AppliedAmount", sc.Amount)
		c.categoryTax("", "ram:AppliedTradeTax", sc.TaxType, sc.TaxCategory, sc.TaxPercent)
	})
}

func (c *ciiWriter) period(field profile.Field, start, end *time.Time) {
	if start == nil && end == nil {
		return
	}
	c.Section(field, "ram:BillingSpecifiedPeriod", func() {
		c.Date("", "ram:StartDateTime", udtDateTime, start)
		c.Date("", "ram:EndDateTime", udtDateTime, end)
	})
}

func (c *ciiWriter) deliveryEvent(field profile.Field, t *time.Time) {
	if t == nil {
		return
	}
	c.Section(field, "ram:ActualDeliverySupplyChainEvent", func() {
		c.Date("", "ram:OccurrenceDateTime", udtDateTime, t)
	})
}

func (c *ciiWriter) paymentTerms(pt model.PaymentTerms) {
	c.Optional(profile.FieldPaymentTerms, "ram:SpecifiedTradePaymentTerms", func() {
		c.Element("", "ram:Description", pt.Description)
		c.Date("", "ram:DueDateDateTime", udtDateTime, pt.DueDate)
		if !c.v1 {
			c.Element(profile.FieldDirectDebitMandate, "ram:DirectDebitMandateID", pt.DirectDebitMandateID)
		}
		if pt.HasDiscount() {
			c.Section(profile.FieldPaymentTermsDiscount, "ram:ApplicableTradePaymentDiscountTerms", func() {
				if pt.DiscountDays != nil {
					days := decimal.NewFromInt(int64(*pt.DiscountDays))
					c.Decimal("", "ram:BasisPeriodMeasure", &days, 0, xmlio.A("unitCode", string(model.QuantityDay)))
				}
				c.money("", "ram:BasisAmount", pt.DiscountBasis)
				c.Decimal("", "ram:CalculationPercent", pt.DiscountPercent, dec.PercentScale)
				c.money("", "ram:ActualDiscountAmount", pt.DiscountAmount)
			})
		}
	})
}

// summation writes the document totals. 2.x only qualifies the tax total
// with the currency.
func (c *ciiWriter) summation(tag string, t model.Totals) {
	c.Section("", tag, func() {
		c.moneyValue(profile.FieldTotalLine, "ram:LineTotalAmount", t.LineTotal)
		c.money(profile.FieldTotalCharge, "ram:ChargeTotalAmount", t.ChargeTotal)
		c.money(profile.FieldTotalAllowance, "ram:AllowanceTotalAmount", t.AllowanceTotal)
		c.moneyValue(profile.FieldTotalTaxBasis, "ram:TaxBasisTotalAmount", t.TaxBasis)
		c.AmountValue(profile.FieldTotalTax, "ram:TaxTotalAmount", t.TaxTotal, xmlio.A("currencyID", string(c.inv.Currency)))
		if !c.v1 {
			c.Amount(profile.FieldTotalRounding, "ram:RoundingAmount", t.Rounding)
		}
		c.moneyValue(profile.FieldTotalGrand, "ram:GrandTotalAmount", t.GrandTotal)
		c.money(profile.FieldTotalPrepaid, "ram:TotalPrepaidAmount", t.Prepaid)
		c.moneyValue(profile.FieldTotalDuePayable, "ram:DuePayableAmount", t.DuePayable)
	})
}

// productName returns the name written for a line, the placeholder for
// comment lines under Basic
func productName(li *model.TradeLineItem, active profile.Profile) string {
	if li.Name == "" && li.IsCommentLine() && active == profile.Basic {
		return commentPlaceholder
	}
	return li.Name
}

func (c *ciiWriter) product(li *model.TradeLineItem) {
	c.Optional("", "ram:SpecifiedTradeProduct", func() {
		if !li.IsCommentLine() {
			if li.GlobalID != nil {
				c.globalID(profile.FieldLineProductGlobalID, "ram:GlobalID", li.GlobalID)
			}
			c.Element(profile.FieldLineSellerAssignedID, "ram:SellerAssignedID", li.SellerAssignedID)
			c.Element(profile.FieldLineBuyerAssignedID, "ram:BuyerAssignedID", li.BuyerAssignedID)
		}
		c.Element(profile.FieldLineProductName, "ram:Name", productName(li, c.Profile()))
		c.Element(profile.FieldLineProductDescription, "ram:Description", li.Description)
	})
}

// prices writes the gross and net price blocks of a line
func (c *ciiWriter) prices(li *model.TradeLineItem) {
	unit := xmlio.A("unitCode", string(li.UnitCode))
	if li.GrossUnitPrice != nil {
		c.Section(profile.FieldLineGrossPrice, "ram:GrossPriceProductTradePrice", func() {
			c.Decimal("", "ram:ChargeAmount", li.GrossUnitPrice, dec.PriceScale, c.priceCurrency()...)
			c.Decimal(profile.FieldLineBasisQuantity, "ram:BasisQuantity", li.UnitQuantity, dec.QuantityScale, unit)
			for _, ac := range li.PriceAllowanceCharges {
				c.priceAllowance(ac)
			}
		})
	}
	if li.NetUnitPrice != nil {
		c.Section(profile.FieldLineNetPrice, "ram:NetPriceProductTradePrice", func() {
			c.Decimal("", "ram:ChargeAmount", li.NetUnitPrice, dec.PriceScale, c.priceCurrency()...)
			c.Decimal(profile.FieldLineBasisQuantity, "ram:BasisQuantity", li.UnitQuantity, dec.QuantityScale, unit)
		})
	}
}

func (c *ciiWriter) priceCurrency() []xmlio.Attr {
	if c.v1 {
		return []xmlio.Attr{xmlio.A("currencyID", string(c.inv.Currency))}
	}
	return nil
}

func (c *ciiWriter) billedQuantity(li *model.TradeLineItem) {
	c.Decimal(profile.FieldLineBilledQuantity, "ram:BilledQuantity", &li.BilledQuantity, dec.QuantityScale,
		xmlio.A("unitCode", string(li.UnitCode)))
}

func (c *ciiWriter) lineTotal(li *model.TradeLineItem) {
	total := li.EffectiveLineTotal()
	c.Section(profile.FieldLineTotal, "ram:SpecifiedTradeSettlementLineMonetarySummation", func() {
		c.moneyValue("", "ram:LineTotalAmount", total)
	})
}

// paymentMeans writes one settlement payment means per creditor account;
// card and debitor account go to the first
func (c *ciiWriter) paymentMeans(tag string) {
	inv := c.inv
	if inv.PaymentMeans == nil && len(inv.CreditorAccounts) == 0 && len(inv.DebitorAccounts) == 0 {
		return
	}
	accounts := inv.CreditorAccounts
	if len(accounts) == 0 {
		accounts = []model.BankAccount{{}}
	}
	for i, acct := range accounts {
		first := i == 0
		c.Optional(profile.FieldPaymentMeans, tag, func() {
			pm := inv.PaymentMeans
			if pm != nil {
				c.Element("", "ram:TypeCode", string(pm.TypeCode))
				c.Element(profile.FieldPaymentMeansInformation, "ram:Information", pm.Information)
				if c.v1 {
					creditorID := pm.SEPACreditorIdentifier
					if creditorID == "" {
						creditorID = inv.CreditorReferenceID
					}
					c.Element("", "ram:ID", creditorID, xmlio.A("schemeAgencyID", "SEPA"))
				}
				if card := pm.FinancialCard; card != nil && first && !c.v1 {
					c.Section(profile.FieldFinancialCard, "ram:ApplicableTradeSettlementFinancialCard", func() {
						c.Required("", "ram:ID", card.ID)
						c.Element("", "ram:CardholderName", card.CardholderName)
					})
				}
			}
			if first && len(inv.DebitorAccounts) > 0 {
				debitor := inv.DebitorAccounts[0]
				c.Optional(profile.FieldDebitorAccount, "ram:PayerPartyDebtorFinancialAccount", func() {
					c.Element("", "ram:IBANID", debitor.IBAN)
					if c.v1 {
						c.Element("", "ram:ProprietaryID", debitor.ProprietaryID)
					}
				})
			}
			c.creditorAccount(acct)
			if c.v1 && first && len(inv.DebitorAccounts) > 0 {
				c.institution("ram:PayerSpecifiedDebtorFinancialInstitution", inv.DebitorAccounts[0])
			}
		})
	}
}

func (c *ciiWriter) creditorAccount(acct model.BankAccount) {
	if acct.IBAN == "" && acct.ProprietaryID == "" {
		return
	}
	c.Section(profile.FieldCreditorAccount, "ram:PayeePartyCreditorFinancialAccount", func() {
		c.Element("", "ram:IBANID", acct.IBAN)
		c.Element(profile.FieldAccountName, "ram:AccountName", acct.Name)
		c.Element("", "ram:ProprietaryID", acct.ProprietaryID)
	})
	c.institution("ram:PayeeSpecifiedCreditorFinancialInstitution", acct)
}

func (c *ciiWriter) institution(tag string, acct model.BankAccount) {
	if acct.BIC == "" && acct.BankName == "" {
		return
	}
	c.Optional(profile.FieldBIC, tag, func() {
		c.Element("", "ram:BICID", acct.BIC)
		if c.v1 {
			c.Element(profile.FieldBankName, "ram:Name", acct.BankName)
		}
	})
}
