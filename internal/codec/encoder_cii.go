package codec

import (
	"io"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// CIIEncoder writes rsm:CrossIndustryInvoice documents of ZUGFeRD 2.0,
// 2.1 and 2.3 (Factur-X). The versions share the element order; what each
// may carry comes from its capability table.
type CIIEncoder struct {
	encoderBase
}

// NewV20Encoder creates the ZUGFeRD 2.0 encoder
func NewV20Encoder(opts ...Option) *CIIEncoder {
	return &CIIEncoder{encoderBase: newEncoderBase(profile.Version20, profile.FamilyCII, "encoder-v20", opts)}
}

// NewV21Encoder creates the ZUGFeRD 2.1 / Factur-X 1.0.05 encoder
func NewV21Encoder(opts ...Option) *CIIEncoder {
	return &CIIEncoder{encoderBase: newEncoderBase(profile.Version21, profile.FamilyCII, "encoder-v21", opts)}
}

// NewV23Encoder creates the ZUGFeRD 2.3 / Factur-X 1.07 encoder
func NewV23Encoder(opts ...Option) *CIIEncoder {
	return &CIIEncoder{encoderBase: newEncoderBase(profile.Version23, profile.FamilyCII, "encoder-v23", opts)}
}

// Save implements Encoder
func (e *CIIEncoder) Save(inv *model.Invoice, p profile.Profile, ws io.WriteSeeker) error {
	return e.save(inv, p, ws, func(w *xmlio.Writer, guideline string) {
		c := newCIIWriter(w, inv, false)
		c.Root("rsm:CrossIndustryInvoice", xmlio.CIINamespaces)
		e.writeContext(c, guideline)
		e.writeHeader(c)
		c.Section("", "rsm:SupplyChainTradeTransaction", func() {
			for _, li := range inv.LineItems {
				e.writeLine(c, li)
			}
			e.writeAgreement(c)
			e.writeDelivery(c)
			e.writeSettlement(c)
		})
	})
}

func (e *CIIEncoder) writeContext(c *ciiWriter, guideline string) {
	c.Section("", "rsm:ExchangedDocumentContext", func() {
		if c.inv.IsTest {
			c.Indicator(profile.FieldTestIndicator, "ram:TestIndicator", udtBool, true)
		}
		c.contextParameter(profile.FieldBusinessProcess, "ram:BusinessProcessSpecifiedDocumentContextParameter", c.inv.BusinessProcess)
		c.contextParameter("", "ram:GuidelineSpecifiedDocumentContextParameter", guideline)
	})
}

func (e *CIIEncoder) writeHeader(c *ciiWriter) {
	inv := c.inv
	c.Section("", "rsm:ExchangedDocument", func() {
		c.Required(profile.FieldDocumentID, "ram:ID", inv.InvoiceNo)
		c.Element(profile.FieldDocumentName, "ram:Name", inv.Name)
		c.Required(profile.FieldTypeCode, "ram:TypeCode", string(inv.Type))
		c.Date(profile.FieldIssueDate, "ram:IssueDateTime", udtDateTime, inv.InvoiceDate)
		for _, n := range inv.Notes {
			c.note(profile.FieldNote, n)
		}
	})
}

func (e *CIIEncoder) writeLine(c *ciiWriter, li *model.TradeLineItem) {
	comment := li.IsCommentLine()
	c.Section(profile.FieldLineItem, "ram:IncludedSupplyChainTradeLineItem", func() {
		c.Section("", "ram:AssociatedDocumentLineDocument", func() {
			c.Required("", "ram:LineID", li.LineID)
			for _, n := range li.Notes {
				c.note(profile.FieldLineNote, n)
			}
		})
		c.product(li)
		if comment {
			return
		}

		c.Section("", "ram:SpecifiedLineTradeAgreement", func() {
			c.referencedDocument(profile.FieldLineBuyerOrderReference, "ram:BuyerOrderReferencedDocument", li.BuyerOrderReference)
			c.referencedDocument(profile.FieldLineContractReference, "ram:ContractReferencedDocument", li.ContractReference)
			for _, doc := range li.AdditionalReferences {
				c.additionalReference(profile.FieldLineAdditionalReference, doc)
			}
			c.prices(li)
		})

		c.Section("", "ram:SpecifiedLineTradeDelivery", func() {
			c.billedQuantity(li)
			c.deliveryEvent(profile.FieldLineDeliveryDate, li.ActualDeliveryDate)
			c.referencedDocument(profile.FieldLineDeliveryNote, "ram:DeliveryNoteReferencedDocument", li.DeliveryNoteReference)
		})

		c.Section("", "ram:SpecifiedLineTradeSettlement", func() {
			c.categoryTax(profile.FieldLineTax, "ram:ApplicableTradeTax", li.TaxType, li.TaxCategory, &li.TaxPercent)
			c.period(profile.FieldLineBillingPeriod, li.BillingPeriodStart, li.BillingPeriodEnd)
			for _, ac := range li.AllowanceCharges {
				c.allowanceCharge(profile.FieldLineAllowanceCharge, "ram:SpecifiedTradeAllowanceCharge", ac, false)
			}
			c.lineTotal(li)
			if li.ReceivableAccountID != "" {
				c.Section(profile.FieldLineReceivableAccount, "ram:ReceivableSpecifiedTradeAccountingAccount", func() {
					c.Required("", "ram:ID", li.ReceivableAccountID)
				})
			}
		})
	})
}

func (e *CIIEncoder) writeAgreement(c *ciiWriter) {
	inv := c.inv
	c.Section("", "ram:ApplicableHeaderTradeAgreement", func() {
		c.Element(profile.FieldBuyerReference, "ram:BuyerReference", inv.BuyerReference)
		c.party(profile.FieldSeller, "ram:SellerTradeParty", inv.Seller)
		c.party(profile.FieldBuyer, "ram:BuyerTradeParty", inv.Buyer)
		c.referencedDocument(profile.FieldSellerOrderReference, "ram:SellerOrderReferencedDocument", inv.SellerOrderReference)
		c.referencedDocument(profile.FieldBuyerOrderReference, "ram:BuyerOrderReferencedDocument", inv.OrderReference)
		c.referencedDocument(profile.FieldContractReference, "ram:ContractReferencedDocument", inv.ContractReference)
		for _, doc := range inv.AdditionalReferences {
			c.additionalReference(profile.FieldAdditionalReference, doc)
		}
		if pp := inv.ProcuringProject; pp != nil && pp.ID != "" {
			c.Section(profile.FieldProcuringProject, "ram:SpecifiedProcuringProject", func() {
				c.Required("", "ram:ID", pp.ID)
				c.Required("", "ram:Name", pp.Name)
			})
		}
	})
}

func (e *CIIEncoder) writeDelivery(c *ciiWriter) {
	inv := c.inv
	c.Section("", "ram:ApplicableHeaderTradeDelivery", func() {
		c.party(profile.FieldShipTo, "ram:ShipToTradeParty", inv.ShipTo)
		c.party(profile.FieldShipFrom, "ram:ShipFromTradeParty", inv.ShipFrom)
		c.deliveryEvent(profile.FieldDeliveryDate, inv.ActualDeliveryDate)
		c.referencedDocument(profile.FieldDespatchAdvice, "ram:DespatchAdviceReferencedDocument", inv.DespatchAdviceReference)
		c.referencedDocument(profile.FieldDeliveryNote, "ram:DeliveryNoteReferencedDocument", inv.DeliveryNoteReference)
	})
}

func (e *CIIEncoder) writeSettlement(c *ciiWriter) {
	inv := c.inv
	c.Section("", "ram:ApplicableHeaderTradeSettlement", func() {
		creditorID := inv.CreditorReferenceID
		if creditorID == "" && inv.PaymentMeans != nil {
			creditorID = inv.PaymentMeans.SEPACreditorIdentifier
		}
		c.Element(profile.FieldCreditorReference, "ram:CreditorReferenceID", creditorID)
		c.Element(profile.FieldPaymentReference, "ram:PaymentReference", inv.PaymentReference)
		c.Element(profile.FieldTaxCurrency, "ram:TaxCurrencyCode", string(inv.TaxCurrency))
		c.Required(profile.FieldCurrency, "ram:InvoiceCurrencyCode", string(inv.Currency))
		c.party(profile.FieldInvoicer, "ram:InvoicerTradeParty", inv.Invoicer)
		c.party(profile.FieldInvoicee, "ram:InvoiceeTradeParty", inv.Invoicee)
		c.party(profile.FieldPayee, "ram:PayeeTradeParty", inv.Payee)
		c.paymentMeans("ram:SpecifiedTradeSettlementPaymentMeans")

		for _, t := range inv.EffectiveTaxes() {
			c.headerTax(t)
		}
		c.period(profile.FieldBillingPeriod, inv.BillingPeriodStart, inv.BillingPeriodEnd)
		for _, ac := range inv.AllowanceCharges {
			c.allowanceCharge(profile.FieldAllowanceCharge, "ram:SpecifiedTradeAllowanceCharge", ac, true)
		}
		for _, sc := range inv.ServiceCharges {
			c.serviceCharge(sc)
		}
		for _, pt := range e.paymentTerms(inv) {
			c.paymentTerms(pt)
		}
		c.summation("ram:SpecifiedTradeSettlementHeaderMonetarySummation", inv.EffectiveTotals())
		for i := range inv.InvoiceReferences {
			c.referencedDocument(profile.FieldInvoiceReference, "ram:InvoiceReferencedDocument", &inv.InvoiceReferences[i])
		}
		if inv.ReceivableAccountID != "" {
			c.Section(profile.FieldReceivableAccount, "ram:ReceivableSpecifiedTradeAccountingAccount", func() {
				c.Required("", "ram:ID", inv.ReceivableAccountID)
			})
		}
	})
}

// paymentTerms carries the SEPA mandate reference of the payment means
// into the first terms when none of them names one
func (e *CIIEncoder) paymentTerms(inv *model.Invoice) []model.PaymentTerms {
	terms := inv.PaymentTerms
	pm := inv.PaymentMeans
	if pm == nil || pm.SEPAMandateReference == "" {
		return terms
	}
	for _, pt := range terms {
		if pt.DirectDebitMandateID != "" {
			return terms
		}
	}
	out := make([]model.PaymentTerms, len(terms))
	copy(out, terms)
	if len(out) == 0 {
		out = append(out, model.PaymentTerms{})
	}
	out[0].DirectDebitMandateID = pm.SEPAMandateReference
	return out
}
