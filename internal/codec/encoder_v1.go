package codec

import (
	"io"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// V1Encoder writes ZUGFeRD 1.0 rsm:CrossIndustryDocument documents. Unlike
// 2.x the line items follow the header settlement and the product block
// closes each line.
type V1Encoder struct {
	encoderBase
}

// NewV1Encoder creates the ZUGFeRD 1.0 encoder
func NewV1Encoder(opts ...Option) *V1Encoder {
	return &V1Encoder{encoderBase: newEncoderBase(profile.Version1, profile.FamilyCII, "encoder-v1", opts)}
}

// Save implements Encoder
func (e *V1Encoder) Save(inv *model.Invoice, p profile.Profile, ws io.WriteSeeker) error {
	return e.save(inv, p, ws, func(w *xmlio.Writer, guideline string) {
		c := newCIIWriter(w, inv, true)
		c.Root("rsm:CrossIndustryDocument", xmlio.V1Namespaces)

		c.Section("", "rsm:SpecifiedExchangedDocumentContext", func() {
			if inv.IsTest {
				c.Indicator(profile.FieldTestIndicator, "ram:TestIndicator", udtBool, true)
			}
			c.contextParameter("", "ram:GuidelineSpecifiedDocumentContextParameter", guideline)
		})

		c.Section("", "rsm:HeaderExchangedDocument", func() {
			c.Required(profile.FieldDocumentID, "ram:ID", inv.InvoiceNo)
			c.Element(profile.FieldDocumentName, "ram:Name", inv.Name)
			c.Required(profile.FieldTypeCode, "ram:TypeCode", string(inv.Type))
			c.Date(profile.FieldIssueDate, "ram:IssueDateTime", udtDateTime, inv.InvoiceDate)
			for _, n := range inv.Notes {
				c.note(profile.FieldNote, n)
			}
		})

		c.Section("", "rsm:SpecifiedSupplyChainTradeTransaction", func() {
			e.writeAgreement(c)
			e.writeDelivery(c)
			e.writeSettlement(c)
			for _, li := range inv.LineItems {
				e.writeLine(c, li)
			}
		})
	})
}

func (e *V1Encoder) writeAgreement(c *ciiWriter) {
	inv := c.inv
	c.Section("", "ram:ApplicableSupplyChainTradeAgreement", func() {
		c.Element(profile.FieldBuyerReference, "ram:BuyerReference", inv.BuyerReference)
		c.party(profile.FieldSeller, "ram:SellerTradeParty", inv.Seller)
		c.party(profile.FieldBuyer, "ram:BuyerTradeParty", inv.Buyer)
		c.referencedDocument(profile.FieldBuyerOrderReference, "ram:BuyerOrderReferencedDocument", inv.OrderReference)
		c.referencedDocument(profile.FieldContractReference, "ram:ContractReferencedDocument", inv.ContractReference)
		for _, doc := range inv.AdditionalReferences {
			c.additionalReference(profile.FieldAdditionalReference, doc)
		}
	})
}

func (e *V1Encoder) writeDelivery(c *ciiWriter) {
	inv := c.inv
	c.Section("", "ram:ApplicableSupplyChainTradeDelivery", func() {
		c.party(profile.FieldShipTo, "ram:ShipToTradeParty", inv.ShipTo)
		c.party(profile.FieldShipFrom, "ram:ShipFromTradeParty", inv.ShipFrom)
		c.deliveryEvent(profile.FieldDeliveryDate, inv.ActualDeliveryDate)
		c.referencedDocument(profile.FieldDespatchAdvice, "ram:DespatchAdviceReferencedDocument", inv.DespatchAdviceReference)
		c.referencedDocument(profile.FieldDeliveryNote, "ram:DeliveryNoteReferencedDocument", inv.DeliveryNoteReference)
	})
}

func (e *V1Encoder) writeSettlement(c *ciiWriter) {
	inv := c.inv
	c.Section("", "ram:ApplicableSupplyChainTradeSettlement", func() {
		c.Element(profile.FieldPaymentReference, "ram:PaymentReference", inv.PaymentReference)
		c.Required(profile.FieldCurrency, "ram:InvoiceCurrencyCode", string(inv.Currency))
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
		for _, pt := range inv.PaymentTerms {
			c.paymentTerms(pt)
		}
		c.summation("ram:SpecifiedTradeSettlementMonetarySummation", inv.EffectiveTotals())
	})
}

func (e *V1Encoder) writeLine(c *ciiWriter, li *model.TradeLineItem) {
	comment := li.IsCommentLine()
	c.Section(profile.FieldLineItem, "ram:IncludedSupplyChainTradeLineItem", func() {
		c.Section("", "ram:AssociatedDocumentLineDocument", func() {
			c.Required("", "ram:LineID", li.LineID)
			for _, n := range li.Notes {
				c.note(profile.FieldLineNote, n)
			}
		})

		if !comment {
			c.Optional("", "ram:SpecifiedSupplyChainTradeAgreement", func() {
				c.referencedDocument(profile.FieldLineBuyerOrderReference, "ram:BuyerOrderReferencedDocument", li.BuyerOrderReference)
				c.referencedDocument(profile.FieldLineContractReference, "ram:ContractReferencedDocument", li.ContractReference)
				c.prices(li)
			})

			c.Section("", "ram:SpecifiedSupplyChainTradeDelivery", func() {
				c.billedQuantity(li)
				c.deliveryEvent(profile.FieldLineDeliveryDate, li.ActualDeliveryDate)
				c.referencedDocument(profile.FieldLineDeliveryNote, "ram:DeliveryNoteReferencedDocument", li.DeliveryNoteReference)
			})

			c.Section("", "ram:SpecifiedSupplyChainTradeSettlement", func() {
				c.categoryTax(profile.FieldLineTax, "ram:ApplicableTradeTax", li.TaxType, li.TaxCategory, &li.TaxPercent)
				c.period(profile.FieldLineBillingPeriod, li.BillingPeriodStart, li.BillingPeriodEnd)
				for _, ac := range li.AllowanceCharges {
					c.allowanceCharge(profile.FieldLineAllowanceCharge, "ram:SpecifiedTradeAllowanceCharge", ac, false)
				}
				c.lineTotal(li)
			})
		}

		c.product(li)
	})
}
