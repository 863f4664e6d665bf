package codec

import (
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/zugferd/internal/decimal"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// sepaScheme qualifies the SEPA creditor identifier among the seller's
// party identifications
const sepaScheme = "SEPA"

// UBLEncoder writes UBL 2.1 Invoice and CreditNote documents for the
// EN16931 and XRechnung profiles. Credit notes (type 381) get the
// CreditNote root and line elements.
type UBLEncoder struct {
	encoderBase
}

// NewUBLEncoder creates the UBL encoder
func NewUBLEncoder(opts ...Option) *UBLEncoder {
	return &UBLEncoder{encoderBase: newEncoderBase(profile.Version23, profile.FamilyUBL, "encoder-ubl", opts)}
}

type ublWriter struct {
	*xmlio.Writer
	inv        *model.Invoice
	creditNote bool
}

func (u *ublWriter) money(field profile.Field, tag string, v *decimal.Decimal) {
	u.Amount(field, tag, v, xmlio.A("currencyID", string(u.inv.Currency)))
}

func (u *ublWriter) acMoney(field profile.Field, tag string, v *decimal.Decimal, ac model.AllowanceCharge) {
	u.Amount(field, tag, v, xmlio.A("currencyID", string(amountCurrency(ac, u.inv.Currency))))
}

func (u *ublWriter) moneyValue(field profile.Field, tag string, v decimal.Decimal) {
	u.money(field, tag, &v)
}

func (u *ublWriter) date(field profile.Field, tag string, t *time.Time) {
	if t == nil {
		return
	}
	u.Required(field, tag, xmlio.FormatISODate(*t))
}

func (u *ublWriter) id(field profile.Field, tag, value string) {
	if value == "" {
		return
	}
	u.Section(field, tag, func() {
		u.Required("", "cbc:ID", value)
	})
}

// Save implements Encoder
func (e *UBLEncoder) Save(inv *model.Invoice, p profile.Profile, ws io.WriteSeeker) error {
	return e.save(inv, p, ws, func(w *xmlio.Writer, guideline string) {
		u := &ublWriter{Writer: w, inv: inv, creditNote: inv.Type == model.InvoiceTypeCreditNote}
		root, typeTag := "Invoice", "cbc:InvoiceTypeCode"
		if u.creditNote {
			root, typeTag = "CreditNote", "cbc:CreditNoteTypeCode"
		}
		u.Root(root, xmlio.UBLNamespaces(u.creditNote))

		e.writeHeader(u, guideline, typeTag)
		e.writeReferences(u)

		u.Section(profile.FieldSeller, "cac:AccountingSupplierParty", func() {
			e.writeParty(u, inv.Seller, inv.CreditorReferenceID)
		})
		u.Section(profile.FieldBuyer, "cac:AccountingCustomerParty", func() {
			e.writeParty(u, inv.Buyer, "")
		})
		e.writePayee(u, inv.Payee)
		e.writeDelivery(u)
		e.writePaymentMeans(u)
		for _, pt := range inv.PaymentTerms {
			if pt.Description != "" {
				u.Section(profile.FieldPaymentTerms, "cac:PaymentTerms", func() {
					u.Required("", "cbc:Note", pt.Description)
				})
			}
		}
		for _, ac := range inv.AllowanceCharges {
			e.writeAllowanceCharge(u, profile.FieldAllowanceCharge, ac, true)
		}

		totals := inv.EffectiveTotals()
		e.writeTaxTotal(u, totals)
		e.writeMonetaryTotal(u, totals)

		for _, li := range inv.LineItems {
			e.writeLine(u, li)
		}
	})
}

func (e *UBLEncoder) writeHeader(u *ublWriter, guideline, typeTag string) {
	inv := u.inv
	u.Required("", "cbc:CustomizationID", guideline)
	businessProcess := inv.BusinessProcess
	if businessProcess == "" {
		businessProcess = profile.PeppolBIS
	}
	u.Element(profile.FieldBusinessProcess, "cbc:ProfileID", businessProcess)
	u.Required(profile.FieldDocumentID, "cbc:ID", inv.InvoiceNo)
	u.date(profile.FieldIssueDate, "cbc:IssueDate", inv.InvoiceDate)
	if !u.creditNote {
		u.date(profile.FieldPaymentTerms, "cbc:DueDate", firstDueDate(inv))
	}
	u.Required(profile.FieldTypeCode, typeTag, string(inv.Type))
	for _, n := range inv.Notes {
		u.Element(profile.FieldNote, "cbc:Note", ublNote(n))
	}
	u.Required(profile.FieldCurrency, "cbc:DocumentCurrencyCode", string(inv.Currency))
	u.Element(profile.FieldTaxCurrency, "cbc:TaxCurrencyCode", string(inv.TaxCurrency))
	u.Element(profile.FieldReceivableAccount, "cbc:AccountingCost", inv.ReceivableAccountID)
	u.Element(profile.FieldBuyerReference, "cbc:BuyerReference", inv.BuyerReference)
	if inv.BillingPeriodStart != nil || inv.BillingPeriodEnd != nil {
		u.Section(profile.FieldBillingPeriod, "cac:InvoicePeriod", func() {
			u.date("", "cbc:StartDate", inv.BillingPeriodStart)
			u.date("", "cbc:EndDate", inv.BillingPeriodEnd)
		})
	}
}

// ublNote prefixes the subject code the way XRechnung expects: #AAI#text
func ublNote(n model.Note) string {
	if n.SubjectCode.IsKnown() {
		return "#" + string(n.SubjectCode) + "#" + n.Content
	}
	return n.Content
}

func firstDueDate(inv *model.Invoice) *time.Time {
	for _, pt := range inv.PaymentTerms {
		if pt.DueDate != nil {
			return pt.DueDate
		}
	}
	return nil
}

func (e *UBLEncoder) writeReferences(u *ublWriter) {
	inv := u.inv
	if inv.OrderReference != nil || inv.SellerOrderReference != nil {
		u.Section(profile.FieldBuyerOrderReference, "cac:OrderReference", func() {
			orderID := "NA"
			if inv.OrderReference != nil && inv.OrderReference.ID != "" {
				orderID = inv.OrderReference.ID
			}
			u.Required("", "cbc:ID", orderID)
			if inv.SellerOrderReference != nil {
				u.Element(profile.FieldSellerOrderReference, "cbc:SalesOrderID", inv.SellerOrderReference.ID)
			}
		})
	}
	for _, ref := range inv.InvoiceReferences {
		u.Section(profile.FieldInvoiceReference, "cac:BillingReference", func() {
			u.Section("", "cac:InvoiceDocumentReference", func() {
				u.Required("", "cbc:ID", ref.ID)
				u.date("", "cbc:IssueDate", ref.IssueDate)
			})
		})
	}
	if inv.DespatchAdviceReference != nil {
		u.id(profile.FieldDespatchAdvice, "cac:DespatchDocumentReference", inv.DespatchAdviceReference.ID)
	}
	if inv.ContractReference != nil {
		u.id(profile.FieldContractReference, "cac:ContractDocumentReference", inv.ContractReference.ID)
	}
	for _, doc := range inv.AdditionalReferences {
		e.writeAdditionalReference(u, doc)
	}
	if inv.ProcuringProject != nil && !u.creditNote {
		u.id(profile.FieldProcuringProject, "cac:ProjectReference", inv.ProcuringProject.ID)
	}
}

func (e *UBLEncoder) writeAdditionalReference(u *ublWriter, doc model.AdditionalReferencedDocument) {
	if doc.ID == "" {
		return
	}
	u.Section(profile.FieldAdditionalReference, "cac:AdditionalDocumentReference", func() {
		u.Required("", "cbc:ID", doc.ID, xmlio.A("schemeID", doc.ReferenceTypeCode))
		u.Element("", "cbc:DocumentTypeCode", string(doc.TypeCode))
		u.Element("", "cbc:DocumentDescription", doc.Name)
		if len(doc.Attachment) == 0 && doc.URI == "" {
			return
		}
		u.Optional(profile.FieldAttachment, "cac:Attachment", func() {
			if len(doc.Attachment) > 0 {
				u.Required("", "cbc:EmbeddedDocumentBinaryObject",
					base64.StdEncoding.EncodeToString(doc.Attachment),
					xmlio.A("mimeCode", doc.AttachmentMimeType()),
					xmlio.A("filename", doc.Filename))
			}
			if doc.URI != "" {
				u.Section("", "cac:ExternalReference", func() {
					u.Required("", "cbc:URI", doc.URI)
				})
			}
		})
	})
}

// writeParty writes cac:Party. The registration name is the party name;
// cac:PartyName carries the trading name.
func (e *UBLEncoder) writeParty(u *ublWriter, p *model.Party, creditorID string) {
	if p == nil {
		return
	}
	u.Section("", "cac:Party", func() {
		if ea := p.ElectronicAddress; ea != nil && ea.Address != "" {
			u.Required(profile.FieldPartyElectronicAddress, "cbc:EndpointID", ea.Address, xmlio.A("schemeID", string(ea.Scheme)))
		}
		if p.ID != nil && p.ID.ID != "" {
			u.Section(profile.FieldPartyID, "cac:PartyIdentification", func() {
				u.Required("", "cbc:ID", p.ID.ID)
			})
		}
		if g := p.GlobalID; !g.IsEmpty() && g.Scheme.IsKnown() {
			u.Section(profile.FieldPartyID, "cac:PartyIdentification", func() {
				u.Required("", "cbc:ID", g.ID, xmlio.A("schemeID", string(g.Scheme)))
			})
		}
		if creditorID != "" {
			u.Section(profile.FieldCreditorReference, "cac:PartyIdentification", func() {
				u.Required("", "cbc:ID", creditorID, xmlio.A("schemeID", sepaScheme))
			})
		}
		if lo := p.LegalOrganization; lo != nil && lo.TradingName != "" {
			u.Section(profile.FieldPartyTradingName, "cac:PartyName", func() {
				u.Required("", "cbc:Name", lo.TradingName)
			})
		}
		e.writeAddress(u, "cac:PostalAddress", p)
		for _, reg := range p.TaxRegistrations {
			if reg.No == "" {
				continue
			}
			u.Section(profile.FieldPartyTaxRegistration, "cac:PartyTaxScheme", func() {
				u.Required("", "cbc:CompanyID", reg.No)
				u.Section("", "cac:TaxScheme", func() {
					u.Required("", "cbc:ID", taxSchemeID(reg.Scheme))
				})
			})
		}
		u.Section(profile.FieldPartyLegalOrg, "cac:PartyLegalEntity", func() {
			u.Required(profile.FieldPartyName, "cbc:RegistrationName", p.Name)
			if lo := p.LegalOrganization; lo != nil && !lo.ID.IsEmpty() {
				scheme := ""
				if lo.ID.Scheme.IsKnown() {
					scheme = string(lo.ID.Scheme)
				}
				u.Required("", "cbc:CompanyID", lo.ID.ID, xmlio.A("schemeID", scheme))
			}
			u.Element(profile.FieldPartyDescription, "cbc:CompanyLegalForm", p.Description)
		})
		if ct := p.Contact; ct != nil {
			name := ct.Name
			if name == "" {
				name = ct.OrgUnit
			}
			u.Optional(profile.FieldPartyContact, "cac:Contact", func() {
				u.Element("", "cbc:Name", name)
				u.Element("", "cbc:Telephone", ct.Phone)
				u.Element("", "cbc:ElectronicMail", ct.Email)
			})
		}
	})
}

func taxSchemeID(s model.TaxRegistrationScheme) string {
	if s == model.TaxRegistrationVAT {
		return "VAT"
	}
	return string(s)
}

// writeAddress maps street, third address line and contact name onto
// StreetName, AdditionalStreetName and AddressLine
func (e *UBLEncoder) writeAddress(u *ublWriter, tag string, p *model.Party) {
	if !p.HasAddress() {
		return
	}
	u.Optional(profile.FieldPartyAddress, tag, func() {
		u.Element(profile.FieldPartyAddressDetail, "cbc:StreetName", p.Street)
		u.Element(profile.FieldPartyAddressDetail, "cbc:AdditionalStreetName", p.AddressLine3)
		u.Element(profile.FieldPartyAddressDetail, "cbc:CityName", p.City)
		u.Element(profile.FieldPartyAddressDetail, "cbc:PostalZone", p.Postcode)
		u.Element(profile.FieldPartyAddressDetail, "cbc:CountrySubentity", p.CountrySubdivision)
		if p.ContactName != "" {
			u.Section(profile.FieldPartyAddressDetail, "cac:AddressLine", func() {
				u.Required("", "cbc:Line", p.ContactName)
			})
		}
		if p.Country != "" && p.Country != model.CountryUnknown {
			u.Section("", "cac:Country", func() {
				u.Required("", "cbc:IdentificationCode", string(p.Country))
			})
		}
	})
}

func (e *UBLEncoder) writePayee(u *ublWriter, p *model.Party) {
	if p == nil {
		return
	}
	u.Section(profile.FieldPayee, "cac:PayeeParty", func() {
		if g := p.GlobalID; !g.IsEmpty() && g.Scheme.IsKnown() {
			u.Section(profile.FieldPartyID, "cac:PartyIdentification", func() {
				u.Required("", "cbc:ID", g.ID, xmlio.A("schemeID", string(g.Scheme)))
			})
		} else if p.ID != nil && p.ID.ID != "" {
			u.Section(profile.FieldPartyID, "cac:PartyIdentification", func() {
				u.Required("", "cbc:ID", p.ID.ID)
			})
		}
		u.Section("", "cac:PartyName", func() {
			u.Required(profile.FieldPartyName, "cbc:Name", p.Name)
		})
		if lo := p.LegalOrganization; lo != nil && !lo.ID.IsEmpty() {
			u.Section(profile.FieldPartyLegalOrg, "cac:PartyLegalEntity", func() {
				u.Required("", "cbc:CompanyID", lo.ID.ID)
			})
		}
	})
}

func (e *UBLEncoder) writeDelivery(u *ublWriter) {
	inv := u.inv
	if inv.ActualDeliveryDate == nil && inv.ShipTo == nil {
		return
	}
	u.Optional("", "cac:Delivery", func() {
		u.date(profile.FieldDeliveryDate, "cbc:ActualDeliveryDate", inv.ActualDeliveryDate)
		st := inv.ShipTo
		if st == nil {
			return
		}
		u.Optional(profile.FieldShipTo, "cac:DeliveryLocation", func() {
			if g := st.GlobalID; !g.IsEmpty() {
				scheme := ""
				if g.Scheme.IsKnown() {
					scheme = string(g.Scheme)
				}
				u.Required("", "cbc:ID", g.ID, xmlio.A("schemeID", scheme))
			}
			e.writeAddress(u, "cac:Address", st)
		})
		if st.Name != "" {
			u.Section(profile.FieldShipTo, "cac:DeliveryParty", func() {
				u.Section("", "cac:PartyName", func() {
					u.Required("", "cbc:Name", st.Name)
				})
			})
		}
	})
}

// writePaymentMeans writes one cac:PaymentMeans per creditor account. The
// card, the mandate and the debitor account go to the first.
func (e *UBLEncoder) writePaymentMeans(u *ublWriter) {
	inv := u.inv
	pm := inv.PaymentMeans
	if pm == nil {
		return
	}
	accounts := inv.CreditorAccounts
	if len(accounts) == 0 {
		accounts = []model.BankAccount{{}}
	}
	mandate := pm.SEPAMandateReference
	if mandate == "" {
		for _, pt := range inv.PaymentTerms {
			if pt.DirectDebitMandateID != "" {
				mandate = pt.DirectDebitMandateID
				break
			}
		}
	}

	for i, acct := range accounts {
		first := i == 0
		u.Section(profile.FieldPaymentMeans, "cac:PaymentMeans", func() {
			info := ""
			if u.Permits(profile.FieldPaymentMeansInformation) {
				info = pm.Information
			}
			u.Required("", "cbc:PaymentMeansCode", string(pm.TypeCode), xmlio.A("name", info))
			u.Element(profile.FieldPaymentReference, "cbc:PaymentID", inv.PaymentReference)
			if card := pm.FinancialCard; card != nil && first {
				u.Section(profile.FieldFinancialCard, "cac:CardAccount", func() {
					u.Required("", "cbc:PrimaryAccountNumberID", card.ID)
					u.Required("", "cbc:NetworkID", "NA")
					u.Element("", "cbc:HolderName", card.CardholderName)
				})
			}
			if id := accountID(acct); id != "" {
				u.Section(profile.FieldCreditorAccount, "cac:PayeeFinancialAccount", func() {
					u.Required("", "cbc:ID", id)
					u.Element(profile.FieldAccountName, "cbc:Name", acct.Name)
					if acct.BIC != "" {
						u.id(profile.FieldBIC, "cac:FinancialInstitutionBranch", acct.BIC)
					}
				})
			}
			if first && (mandate != "" || len(inv.DebitorAccounts) > 0) {
				u.Optional(profile.FieldDirectDebitMandate, "cac:PaymentMandate", func() {
					u.Element("", "cbc:ID", mandate)
					if len(inv.DebitorAccounts) > 0 {
						u.id(profile.FieldDebitorAccount, "cac:PayerFinancialAccount", accountID(inv.DebitorAccounts[0]))
					}
				})
			}
		})
	}
}

func accountID(acct model.BankAccount) string {
	if acct.IBAN != "" {
		return acct.IBAN
	}
	return acct.ProprietaryID
}

func (e *UBLEncoder) writeTaxCategory(u *ublWriter, tag string, typ model.TaxType, category model.TaxCategory, percent *decimal.Decimal, exemptionCode, exemption string) {
	u.Section("", tag, func() {
		u.Required("", "cbc:ID", string(category))
		u.Decimal("", "cbc:Percent", percent, dec.PercentScale)
		u.Element(profile.FieldTaxExemptionReasonCode, "cbc:TaxExemptionReasonCode", exemptionCode)
		u.Element(profile.FieldTaxExemptionReason, "cbc:TaxExemptionReason", exemption)
		if typ == "" {
			typ = model.TaxTypeVAT
		}
		u.Section("", "cac:TaxScheme", func() {
			u.Required("", "cbc:ID", string(typ))
		})
	})
}

func (e *UBLEncoder) writeAllowanceCharge(u *ublWriter, field profile.Field, ac model.AllowanceCharge, withTax bool) {
	u.Section(field, "cac:AllowanceCharge", func() {
		u.Required("", "cbc:ChargeIndicator", boolText(ac.ChargeIndicator))
		u.Element(profile.FieldAllowanceChargeReason, "cbc:AllowanceChargeReasonCode", ac.ReasonCode)
		u.Element("", "cbc:AllowanceChargeReason", ac.Reason)
		u.Decimal(profile.FieldAllowanceChargePercent, "cbc:MultiplierFactorNumeric", ac.Percent, dec.PercentScale)
		u.acMoney("", "cbc:Amount", &ac.ActualAmount, ac)
		u.acMoney(profile.FieldAllowanceChargeBasis, "cbc:BaseAmount", ac.BasisAmount, ac)
		if withTax && (ac.TaxCategory != "" || ac.TaxPercent != nil) {
			e.writeTaxCategory(u, "cac:TaxCategory", ac.TaxType, ac.TaxCategory, ac.TaxPercent, "", "")
		}
	})
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (e *UBLEncoder) writeTaxTotal(u *ublWriter, totals model.Totals) {
	u.Section(profile.FieldTotalTax, "cac:TaxTotal", func() {
		u.moneyValue("", "cbc:TaxAmount", totals.TaxTotal)
		for _, t := range u.inv.EffectiveTaxes() {
			u.Section(profile.FieldTax, "cac:TaxSubtotal", func() {
				u.moneyValue("", "cbc:TaxableAmount", t.BasisAmount)
				u.moneyValue("", "cbc:TaxAmount", t.TaxAmount)
				e.writeTaxCategory(u, "cac:TaxCategory", t.TypeCode, t.CategoryCode, &t.Percent, t.ExemptionReasonCode, t.ExemptionReason)
			})
		}
	})
}

func (e *UBLEncoder) writeMonetaryTotal(u *ublWriter, t model.Totals) {
	u.Section("", "cac:LegalMonetaryTotal", func() {
		u.moneyValue(profile.FieldTotalLine, "cbc:LineExtensionAmount", t.LineTotal)
		u.moneyValue(profile.FieldTotalTaxBasis, "cbc:TaxExclusiveAmount", t.TaxBasis)
		u.moneyValue(profile.FieldTotalGrand, "cbc:TaxInclusiveAmount", t.GrandTotal)
		u.money(profile.FieldTotalAllowance, "cbc:AllowanceTotalAmount", t.AllowanceTotal)
		u.money(profile.FieldTotalCharge, "cbc:ChargeTotalAmount", t.ChargeTotal)
		u.money(profile.FieldTotalPrepaid, "cbc:PrepaidAmount", t.Prepaid)
		u.money(profile.FieldTotalRounding, "cbc:PayableRoundingAmount", t.Rounding)
		u.moneyValue(profile.FieldTotalDuePayable, "cbc:PayableAmount", t.DuePayable)
	})
}

func (e *UBLEncoder) writeLine(u *ublWriter, li *model.TradeLineItem) {
	lineTag, qtyTag := "cac:InvoiceLine", "cbc:InvoicedQuantity"
	if u.creditNote {
		lineTag, qtyTag = "cac:CreditNoteLine", "cbc:CreditedQuantity"
	}
	comment := li.IsCommentLine()

	u.Section(profile.FieldLineItem, lineTag, func() {
		u.Required("", "cbc:ID", li.LineID)
		for _, n := range li.Notes {
			u.Element(profile.FieldLineNote, "cbc:Note", ublNote(n))
		}
		unit := xmlio.A("unitCode", string(li.UnitCode))
		u.Decimal(profile.FieldLineBilledQuantity, qtyTag, &li.BilledQuantity, dec.QuantityScale, unit)
		if comment {
			// UBL has no optional line amount or item name
			u.moneyValue("", "cbc:LineExtensionAmount", decimal.Zero)
			name := li.Name
			if name == "" {
				name = commentPlaceholder
			}
			u.Section("", "cac:Item", func() {
				u.Required("", "cbc:Name", name)
			})
			return
		}

		u.moneyValue(profile.FieldLineTotal, "cbc:LineExtensionAmount", li.EffectiveLineTotal())
		u.Element(profile.FieldLineReceivableAccount, "cbc:AccountingCost", li.ReceivableAccountID)
		if li.BillingPeriodStart != nil || li.BillingPeriodEnd != nil {
			u.Section(profile.FieldLineBillingPeriod, "cac:InvoicePeriod", func() {
				u.date("", "cbc:StartDate", li.BillingPeriodStart)
				u.date("", "cbc:EndDate", li.BillingPeriodEnd)
			})
		}
		if ref := li.BuyerOrderReference; ref != nil && ref.LineID != "" {
			u.Section(profile.FieldLineBuyerOrderReference, "cac:OrderLineReference", func() {
				u.Required("", "cbc:LineID", ref.LineID)
			})
		}
		for _, ac := range li.AllowanceCharges {
			e.writeAllowanceCharge(u, profile.FieldLineAllowanceCharge, ac, false)
		}

		u.Section("", "cac:Item", func() {
			u.Element(profile.FieldLineProductDescription, "cbc:Description", li.Description)
			u.Element(profile.FieldLineProductName, "cbc:Name", li.Name)
			if li.BuyerAssignedID != "" {
				u.id(profile.FieldLineBuyerAssignedID, "cac:BuyersItemIdentification", li.BuyerAssignedID)
			}
			if li.SellerAssignedID != "" {
				u.id(profile.FieldLineSellerAssignedID, "cac:SellersItemIdentification", li.SellerAssignedID)
			}
			if g := li.GlobalID; !g.IsEmpty() {
				scheme := ""
				if g.Scheme.IsKnown() {
					scheme = string(g.Scheme)
				}
				u.Section(profile.FieldLineProductGlobalID, "cac:StandardItemIdentification", func() {
					u.Required("", "cbc:ID", g.ID, xmlio.A("schemeID", scheme))
				})
			}
			percent := li.TaxPercent
			u.Section(profile.FieldLineTax, "cac:ClassifiedTaxCategory", func() {
				u.Required("", "cbc:ID", string(li.TaxCategory))
				u.Decimal("", "cbc:Percent", &percent, dec.PercentScale)
				typ := li.TaxType
				if typ == "" {
					typ = model.TaxTypeVAT
				}
				u.Section("", "cac:TaxScheme", func() {
					u.Required("", "cbc:ID", string(typ))
				})
			})
		})

		if li.NetUnitPrice != nil {
			u.Section(profile.FieldLineNetPrice, "cac:Price", func() {
				u.Decimal("", "cbc:PriceAmount", li.NetUnitPrice, dec.PriceScale, xmlio.A("currencyID", string(u.inv.Currency)))
				u.Decimal(profile.FieldLineBasisQuantity, "cbc:BaseQuantity", li.UnitQuantity, dec.QuantityScale, unit)
				e.writePriceAllowances(u, li)
			})
		}
	})
}

// writePriceAllowances carries the gross price as the base amount of the
// price allowances; without any, a zero allowance holds it
func (e *UBLEncoder) writePriceAllowances(u *ublWriter, li *model.TradeLineItem) {
	if li.GrossUnitPrice == nil {
		return
	}
	allowances := li.PriceAllowanceCharges
	if len(allowances) == 0 {
		allowances = []model.AllowanceCharge{model.NewTradeAllowanceCharge(true, decimal.Zero, "")}
	}
	for _, ac := range allowances {
		cur := xmlio.A("currencyID", string(amountCurrency(ac, u.inv.Currency)))
		u.Section(profile.FieldLineGrossPrice, "cac:AllowanceCharge", func() {
			u.Required("", "cbc:ChargeIndicator", boolText(ac.ChargeIndicator))
			u.Element("", "cbc:AllowanceChargeReason", strings.TrimSpace(ac.Reason))
			u.Decimal("", "cbc:Amount", &ac.ActualAmount, dec.PriceScale, cur)
			u.Decimal("", "cbc:BaseAmount", li.GrossUnitPrice, dec.PriceScale, cur)
		})
	}
}
