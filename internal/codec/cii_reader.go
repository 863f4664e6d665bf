package codec

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// ciiReader holds the CII extraction helpers shared by the 1.0 and 2.x
// decoders. Every lookup tolerates absent nodes.
type ciiReader struct {
	nav *xmlio.Navigator
	v1  bool
}

func (r *ciiReader) percentTag() string {
	if r.v1 {
		return "ram:ApplicablePercent"
	}
	return "ram:RateApplicablePercent"
}

func (r *ciiReader) date(ctx *etree.Element, path string) *time.Time {
	return r.nav.Date(ctx, xmlio.CIIDate(path)...)
}

// referenceDate reads the issue date of a referenced document: the
// formatted qdt wrapper in 2.x, a plain date in 1.0
func (r *ciiReader) referenceDate(ctx *etree.Element) *time.Time {
	return r.nav.Date(ctx,
		xmlio.FormattedDate("ram:FormattedIssueDateTime/qdt:DateTimeString"),
		xmlio.FormattedDate("ram:FormattedIssueDateTime/udt:DateTimeString"),
		xmlio.PlainDate("ram:IssueDateTime"),
	)
}

func (r *ciiReader) globalID(ctx *etree.Element, path string) *model.GlobalID {
	el := r.nav.Find(ctx, path)
	if el == nil {
		return nil
	}
	id := strings.TrimSpace(el.Text())
	if id == "" {
		return nil
	}
	return &model.GlobalID{ID: id, Scheme: model.ParseGlobalIDScheme(el.SelectAttrValue("schemeID", ""))}
}

func (r *ciiReader) notes(ctx *etree.Element, path string) []model.Note {
	var notes []model.Note
	for _, el := range r.nav.FindAll(ctx, path) {
		notes = append(notes, model.Note{
			Content:     r.nav.Text(el, "ram:Content"),
			SubjectCode: model.ParseSubjectCode(r.nav.Text(el, "ram:SubjectCode")),
			ContentCode: r.nav.Text(el, "ram:ContentCode"),
		})
	}
	return notes
}

func (r *ciiReader) party(ctx *etree.Element, path string) *model.Party {
	el := r.nav.Find(ctx, path)
	if el == nil {
		return nil
	}
	p := &model.Party{
		ID:          r.globalID(el, "ram:ID"),
		GlobalID:    r.globalID(el, "ram:GlobalID"),
		Name:        r.nav.Text(el, "ram:Name"),
		Description: r.nav.Text(el, "ram:Description"),
	}

	if lo := r.nav.Find(el, "ram:SpecifiedLegalOrganization"); lo != nil {
		p.LegalOrganization = &model.LegalOrganization{
			ID:          r.globalID(lo, "ram:ID"),
			TradingName: r.nav.Text(lo, "ram:TradingBusinessName"),
		}
	}

	if ct := r.nav.Find(el, "ram:DefinedTradeContact"); ct != nil {
		p.Contact = &model.Contact{
			Name:    r.nav.Text(ct, "ram:PersonName"),
			OrgUnit: r.nav.Text(ct, "ram:DepartmentName"),
			Phone:   r.nav.Text(ct, "ram:TelephoneUniversalCommunication/ram:CompleteNumber"),
			Fax:     r.nav.Text(ct, "ram:FaxUniversalCommunication/ram:CompleteNumber"),
			Email:   r.nav.Text(ct, "ram:EmailURIUniversalCommunication/ram:URIID"),
		}
	}

	if addr := r.nav.Find(el, "ram:PostalTradeAddress"); addr != nil {
		lineOne := r.nav.Text(addr, "ram:LineOne")
		lineTwo := r.nav.Text(addr, "ram:LineTwo")
		if lineTwo != "" {
			p.ContactName, p.Street = lineOne, lineTwo
		} else {
			p.Street = lineOne
		}
		p.AddressLine3 = r.nav.Text(addr, "ram:LineThree")
		p.Postcode = r.nav.Text(addr, "ram:PostcodeCode")
		p.City = r.nav.Text(addr, "ram:CityName")
		p.Country = model.ParseCountryCode(r.nav.Text(addr, "ram:CountryID"))
		p.CountrySubdivision = r.nav.Text(addr, "ram:CountrySubDivisionName")
	}

	if uri := r.nav.Find(el, "ram:URIUniversalCommunication/ram:URIID"); uri != nil {
		p.ElectronicAddress = &model.ElectronicAddress{
			Address: strings.TrimSpace(uri.Text()),
			Scheme:  electronicAddressScheme(uri.SelectAttrValue("schemeID", "")),
		}
	}

	for _, reg := range r.nav.FindAll(el, "ram:SpecifiedTaxRegistration/ram:ID") {
		p.TaxRegistrations = append(p.TaxRegistrations, model.TaxRegistration{
			No:     strings.TrimSpace(reg.Text()),
			Scheme: taxRegistrationScheme(reg.SelectAttrValue("schemeID", "")),
		})
	}
	return p
}

func (r *ciiReader) referencedDocument(ctx *etree.Element, path string) *model.ReferencedDocument {
	el := r.nav.Find(ctx, path)
	if el == nil {
		return nil
	}
	id := r.nav.Text(el, "ram:IssuerAssignedID")
	if r.v1 {
		id = r.nav.Text(el, "ram:ID")
	}
	return &model.ReferencedDocument{
		ID:        id,
		IssueDate: r.referenceDate(el),
		LineID:    r.nav.Text(el, "ram:LineID"),
	}
}

func (r *ciiReader) additionalReferences(ctx *etree.Element, path string) []model.AdditionalReferencedDocument {
	var docs []model.AdditionalReferencedDocument
	for _, el := range r.nav.FindAll(ctx, path) {
		doc := model.AdditionalReferencedDocument{
			IssueDate:         r.referenceDate(el),
			TypeCode:          referencedDocumentType(r.nav.Text(el, "ram:TypeCode")),
			ReferenceTypeCode: r.nav.Text(el, "ram:ReferenceTypeCode"),
			Name:              r.nav.Text(el, "ram:Name"),
			URI:               r.nav.Text(el, "ram:URIID"),
		}
		if r.v1 {
			doc.ID = r.nav.Text(el, "ram:ID")
		} else {
			doc.ID = r.nav.Text(el, "ram:IssuerAssignedID")
		}
		if bin := r.nav.Find(el, "ram:AttachmentBinaryObject"); bin != nil {
			if data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(bin.Text())); err == nil {
				doc.Attachment = data
			}
			doc.MimeType = bin.SelectAttrValue("mimeCode", "")
			doc.Filename = bin.SelectAttrValue("filename", "")
		}
		docs = append(docs, doc)
	}
	return docs
}

func (r *ciiReader) headerTaxes(ctx *etree.Element, path string) []model.Tax {
	var taxes []model.Tax
	for _, el := range r.nav.FindAll(ctx, path) {
		taxes = append(taxes, model.Tax{
			TypeCode:                   taxType(r.nav.Text(el, "ram:TypeCode")),
			CategoryCode:               taxCategory(r.nav.Text(el, "ram:CategoryCode")),
			Percent:                    r.nav.DecimalValue(el, r.percentTag()),
			BasisAmount:                r.nav.DecimalValue(el, "ram:BasisAmount"),
			TaxAmount:                  r.nav.DecimalValue(el, "ram:CalculatedAmount"),
			ExemptionReason:            r.nav.Text(el, "ram:ExemptionReason"),
			ExemptionReasonCode:        r.nav.Text(el, "ram:ExemptionReasonCode"),
			AllowanceChargeBasisAmount: r.nav.Decimal(el, "ram:AllowanceChargeBasisAmount"),
			TaxPointDate: r.nav.Date(el,
				xmlio.FormattedDate("ram:TaxPointDate/udt:DateString"),
				xmlio.FormattedDate("ram:TaxPointDate/udt:DateTimeString"),
			),
		})
	}
	return taxes
}

// allowanceCharges reads document or line level entries. The charge
// indicator is kept as on the wire.
func (r *ciiReader) allowanceCharges(ctx *etree.Element, path string) []model.AllowanceCharge {
	var out []model.AllowanceCharge
	for _, el := range r.nav.FindAll(ctx, path) {
		ac := model.AllowanceCharge{
			ChargeIndicator: r.nav.Bool(el, "ram:ChargeIndicator/udt:Indicator"),
			BasisAmount:     r.nav.Decimal(el, "ram:BasisAmount"),
			ActualAmount:    r.nav.DecimalValue(el, "ram:ActualAmount"),
			Percent:         r.nav.Decimal(el, "ram:CalculationPercent"),
			ReasonCode:      r.nav.Text(el, "ram:ReasonCode"),
			Reason:          r.nav.Text(el, "ram:Reason"),
			Currency:        currency(r.nav.Attr(el, "ram:ActualAmount", "currencyID")),
		}
		if tax := r.nav.Find(el, "ram:CategoryTradeTax"); tax != nil {
			ac.TaxType = taxType(r.nav.Text(tax, "ram:TypeCode"))
			ac.TaxCategory = taxCategory(r.nav.Text(tax, "ram:CategoryCode"))
			ac.TaxPercent = r.nav.Decimal(tax, r.percentTag())
		}
		out = append(out, ac)
	}
	return out
}

func (r *ciiReader) serviceCharges(ctx *etree.Element, path string) []model.ServiceCharge {
	var out []model.ServiceCharge
	for _, el := range r.nav.FindAll(ctx, path) {
		sc := model.ServiceCharge{
			Description: r.nav.Text(el, "ram:Description"),
			Amount:      r.nav.DecimalValue(el, "ram:AppliedAmount"),
		}
		if tax := r.nav.Find(el, "ram:AppliedTradeTax"); tax != nil {
			sc.TaxType = taxType(r.nav.Text(tax, "ram:TypeCode"))
			sc.TaxCategory = taxCategory(r.nav.Text(tax, "ram:CategoryCode"))
			sc.TaxPercent = r.nav.Decimal(tax, r.percentTag())
		}
		out = append(out, sc)
	}
	return out
}

func (r *ciiReader) paymentTerms(ctx *etree.Element, path string) []model.PaymentTerms {
	var out []model.PaymentTerms
	for _, el := range r.nav.FindAll(ctx, path) {
		pt := model.PaymentTerms{
			Description:          r.nav.Text(el, "ram:Description"),
			DueDate:              r.date(el, "ram:DueDateDateTime"),
			DirectDebitMandateID: r.nav.Text(el, "ram:DirectDebitMandateID"),
		}
		if d := r.nav.Find(el, "ram:ApplicableTradePaymentDiscountTerms"); d != nil {
			if days, err := strconv.Atoi(r.nav.Text(d, "ram:BasisPeriodMeasure")); err == nil {
				pt.DiscountDays = &days
			}
			pt.DiscountBasis = r.nav.Decimal(d, "ram:BasisAmount")
			pt.DiscountPercent = r.nav.Decimal(d, "ram:CalculationPercent")
			pt.DiscountAmount = r.nav.Decimal(d, "ram:ActualDiscountAmount")
		}
		out = append(out, pt)
	}
	return out
}

func (r *ciiReader) period(ctx *etree.Element, path string) (*time.Time, *time.Time) {
	el := r.nav.Find(ctx, path)
	if el == nil {
		return nil, nil
	}
	return r.date(el, "ram:StartDateTime"), r.date(el, "ram:EndDateTime")
}

func (r *ciiReader) totals(ctx *etree.Element, path string) *model.Totals {
	el := r.nav.Find(ctx, path)
	if el == nil {
		return nil
	}
	return &model.Totals{
		LineTotal:      r.nav.DecimalValue(el, "ram:LineTotalAmount"),
		ChargeTotal:    r.nav.Decimal(el, "ram:ChargeTotalAmount"),
		AllowanceTotal: r.nav.Decimal(el, "ram:AllowanceTotalAmount"),
		TaxBasis:       r.nav.DecimalValue(el, "ram:TaxBasisTotalAmount"),
		TaxTotal:       r.nav.DecimalValue(el, "ram:TaxTotalAmount"),
		Rounding:       r.nav.Decimal(el, "ram:RoundingAmount"),
		GrandTotal:     r.nav.DecimalValue(el, "ram:GrandTotalAmount"),
		Prepaid:        r.nav.Decimal(el, "ram:TotalPrepaidAmount"),
		DuePayable:     r.nav.DecimalValue(el, "ram:DuePayableAmount"),
	}
}

// paymentMeans collects the type, card and accounts spread over the
// settlement payment means elements
func (r *ciiReader) paymentMeans(inv *model.Invoice, ctx *etree.Element, path string) {
	for i, el := range r.nav.FindAll(ctx, path) {
		if i == 0 {
			if code := r.nav.Text(el, "ram:TypeCode"); code != "" {
				pm := &model.PaymentMeans{
					TypeCode:    paymentMeansType(code),
					Information: r.nav.Text(el, "ram:Information"),
				}
				if r.v1 {
					pm.SEPACreditorIdentifier = r.nav.Text(el, "ram:ID")
				}
				if card := r.nav.Find(el, "ram:ApplicableTradeSettlementFinancialCard"); card != nil {
					pm.FinancialCard = &model.FinancialCard{
						ID:             r.nav.Text(card, "ram:ID"),
						CardholderName: r.nav.Text(card, "ram:CardholderName"),
					}
				}
				inv.PaymentMeans = pm
			}
		}

		if d := r.nav.Find(el, "ram:PayerPartyDebtorFinancialAccount"); d != nil {
			acct := model.BankAccount{
				IBAN:          r.nav.Text(d, "ram:IBANID"),
				ProprietaryID: r.nav.Text(d, "ram:ProprietaryID"),
			}
			if inst := r.nav.Find(el, "ram:PayerSpecifiedDebtorFinancialInstitution"); inst != nil {
				acct.BIC = r.nav.Text(inst, "ram:BICID")
				acct.BankName = r.nav.Text(inst, "ram:Name")
			}
			inv.DebitorAccounts = append(inv.DebitorAccounts, acct)
		}

		if c := r.nav.Find(el, "ram:PayeePartyCreditorFinancialAccount"); c != nil {
			acct := model.BankAccount{
				IBAN:          r.nav.Text(c, "ram:IBANID"),
				Name:          r.nav.Text(c, "ram:AccountName"),
				ProprietaryID: r.nav.Text(c, "ram:ProprietaryID"),
			}
			if inst := r.nav.Find(el, "ram:PayeeSpecifiedCreditorFinancialInstitution"); inst != nil {
				acct.BIC = r.nav.Text(inst, "ram:BICID")
				acct.BankName = r.nav.Text(inst, "ram:Name")
			}
			inv.CreditorAccounts = append(inv.CreditorAccounts, acct)
		}
	}
}

// line reads one trade line item. agreement, delivery and settlement name
// the version's line sub-structures.
func (r *ciiReader) line(el *etree.Element, agreement, delivery, settlement string) *model.TradeLineItem {
	li := &model.TradeLineItem{
		LineID: r.nav.Text(el, "ram:AssociatedDocumentLineDocument/ram:LineID"),
		Notes:  r.notes(el, "ram:AssociatedDocumentLineDocument/ram:IncludedNote"),
	}

	if prod := r.nav.Find(el, "ram:SpecifiedTradeProduct"); prod != nil {
		li.GlobalID = r.globalID(prod, "ram:GlobalID")
		li.SellerAssignedID = r.nav.Text(prod, "ram:SellerAssignedID")
		li.BuyerAssignedID = r.nav.Text(prod, "ram:BuyerAssignedID")
		li.Name = r.nav.Text(prod, "ram:Name")
		li.Description = r.nav.Text(prod, "ram:Description")
	}

	if ag := r.nav.Find(el, agreement); ag != nil {
		li.BuyerOrderReference = r.referencedDocument(ag, "ram:BuyerOrderReferencedDocument")
		li.ContractReference = r.referencedDocument(ag, "ram:ContractReferencedDocument")
		li.AdditionalReferences = r.additionalReferences(ag, "ram:AdditionalReferencedDocument")

		if gross := r.nav.Find(ag, "ram:GrossPriceProductTradePrice"); gross != nil {
			li.GrossUnitPrice = r.nav.Decimal(gross, "ram:ChargeAmount")
			li.UnitQuantity = r.nav.Decimal(gross, "ram:BasisQuantity")
			for _, ac := range r.nav.FindAll(gross, "ram:AppliedTradeAllowanceCharge") {
				li.PriceAllowanceCharges = append(li.PriceAllowanceCharges, model.AllowanceCharge{
					ChargeIndicator: r.nav.Bool(ac, "ram:ChargeIndicator/udt:Indicator"),
					ActualAmount:    r.nav.DecimalValue(ac, "ram:ActualAmount"),
					Reason:          r.nav.Text(ac, "ram:Reason"),
					Currency:        currency(r.nav.Attr(ac, "ram:ActualAmount", "currencyID")),
				})
			}
		}
		if net := r.nav.Find(ag, "ram:NetPriceProductTradePrice"); net != nil {
			li.NetUnitPrice = r.nav.Decimal(net, "ram:ChargeAmount")
			if q := r.nav.Decimal(net, "ram:BasisQuantity"); q != nil {
				li.UnitQuantity = q
			}
		}
	}

	if dl := r.nav.Find(el, delivery); dl != nil {
		li.BilledQuantity = r.nav.DecimalValue(dl, "ram:BilledQuantity")
		li.UnitCode = model.ParseQuantityCode(r.nav.Attr(dl, "ram:BilledQuantity", "unitCode"))
		li.ActualDeliveryDate = r.date(dl, "ram:ActualDeliverySupplyChainEvent/ram:OccurrenceDateTime")
		li.DeliveryNoteReference = r.referencedDocument(dl, "ram:DeliveryNoteReferencedDocument")
	}
	if li.UnitCode == "" {
		li.UnitCode = model.ParseQuantityCode(r.nav.Attr(el, agreement+"/ram:NetPriceProductTradePrice/ram:BasisQuantity", "unitCode"))
	}

	if st := r.nav.Find(el, settlement); st != nil {
		if tax := r.nav.Find(st, "ram:ApplicableTradeTax"); tax != nil {
			li.TaxType = taxType(r.nav.Text(tax, "ram:TypeCode"))
			li.TaxCategory = taxCategory(r.nav.Text(tax, "ram:CategoryCode"))
			li.TaxPercent = r.nav.DecimalValue(tax, r.percentTag())
		}
		li.BillingPeriodStart, li.BillingPeriodEnd = r.period(st, "ram:BillingSpecifiedPeriod")
		li.AllowanceCharges = r.allowanceCharges(st, "ram:SpecifiedTradeAllowanceCharge")
		li.LineTotalAmount = r.nav.Decimal(st, "ram:SpecifiedTradeSettlementLineMonetarySummation/ram:LineTotalAmount")
		li.ReceivableAccountID = r.nav.Text(st, "ram:ReceivableSpecifiedTradeAccountingAccount/ram:ID")
	}

	finishLine(li)
	return li
}

// sepa copies the creditor identifier and first mandate reference into a
// SEPA direct debit payment means
func sepa(inv *model.Invoice) {
	pm := inv.PaymentMeans
	if pm == nil || pm.TypeCode != model.PaymentMeansSEPADirectDebit {
		return
	}
	if pm.SEPACreditorIdentifier == "" {
		pm.SEPACreditorIdentifier = inv.CreditorReferenceID
	}
	if inv.CreditorReferenceID == "" {
		inv.CreditorReferenceID = pm.SEPACreditorIdentifier
	}
	if pm.SEPAMandateReference == "" {
		for _, pt := range inv.PaymentTerms {
			if pt.DirectDebitMandateID != "" {
				pm.SEPAMandateReference = pt.DirectDebitMandateID
				break
			}
		}
	}
}

// ciiLayout names the header structures, which 1.0 and 2.x call
// differently
type ciiLayout struct {
	context     string
	header      string
	transaction string
	agreement   string
	delivery    string
	settlement  string
	summation   string

	lineAgreement  string
	lineDelivery   string
	lineSettlement string
}

var (
	v1Layout = ciiLayout{
		context:        "rsm:SpecifiedExchangedDocumentContext",
		header:         "rsm:HeaderExchangedDocument",
		transaction:    "rsm:SpecifiedSupplyChainTradeTransaction",
		agreement:      "ram:ApplicableSupplyChainTradeAgreement",
		delivery:       "ram:ApplicableSupplyChainTradeDelivery",
		settlement:     "ram:ApplicableSupplyChainTradeSettlement",
		summation:      "ram:SpecifiedTradeSettlementMonetarySummation",
		lineAgreement:  "ram:SpecifiedSupplyChainTradeAgreement",
		lineDelivery:   "ram:SpecifiedSupplyChainTradeDelivery",
		lineSettlement: "ram:SpecifiedSupplyChainTradeSettlement",
	}

	ciiLayout2 = ciiLayout{
		context:        "rsm:ExchangedDocumentContext",
		header:         "rsm:ExchangedDocument",
		transaction:    "rsm:SupplyChainTradeTransaction",
		agreement:      "ram:ApplicableHeaderTradeAgreement",
		delivery:       "ram:ApplicableHeaderTradeDelivery",
		settlement:     "ram:ApplicableHeaderTradeSettlement",
		summation:      "ram:SpecifiedTradeSettlementHeaderMonetarySummation",
		lineAgreement:  "ram:SpecifiedLineTradeAgreement",
		lineDelivery:   "ram:SpecifiedLineTradeDelivery",
		lineSettlement: "ram:SpecifiedLineTradeSettlement",
	}
)

// guidelinePath is where both generations carry the profile identifier
func (l ciiLayout) guidelinePath() string {
	return l.context + "/ram:GuidelineSpecifiedDocumentContextParameter/ram:ID"
}

// invoice builds the model from a recognized root
func (r *ciiReader) invoice(root *etree.Element, l ciiLayout) *model.Invoice {
	inv := &model.Invoice{}

	if ctx := r.nav.Find(root, l.context); ctx != nil {
		inv.IsTest = r.nav.Bool(ctx, "ram:TestIndicator/udt:Indicator")
		inv.BusinessProcess = r.nav.Text(ctx, "ram:BusinessProcessSpecifiedDocumentContextParameter/ram:ID")
	}

	if hdr := r.nav.Find(root, l.header); hdr != nil {
		inv.InvoiceNo = r.nav.Text(hdr, "ram:ID")
		inv.Name = r.nav.Text(hdr, "ram:Name")
		inv.Type = invoiceType(r.nav.Text(hdr, "ram:TypeCode"))
		inv.InvoiceDate = r.date(hdr, "ram:IssueDateTime")
		inv.Notes = r.notes(hdr, "ram:IncludedNote")
	}

	tx := r.nav.Find(root, l.transaction)
	if tx == nil {
		return inv
	}

	if ag := r.nav.Find(tx, l.agreement); ag != nil {
		inv.BuyerReference = r.nav.Text(ag, "ram:BuyerReference")
		inv.Seller = r.party(ag, "ram:SellerTradeParty")
		inv.Buyer = r.party(ag, "ram:BuyerTradeParty")
		inv.SellerOrderReference = r.referencedDocument(ag, "ram:SellerOrderReferencedDocument")
		inv.OrderReference = r.referencedDocument(ag, "ram:BuyerOrderReferencedDocument")
		inv.ContractReference = r.referencedDocument(ag, "ram:ContractReferencedDocument")
		inv.AdditionalReferences = r.additionalReferences(ag, "ram:AdditionalReferencedDocument")
		if pp := r.nav.Find(ag, "ram:SpecifiedProcuringProject"); pp != nil {
			inv.ProcuringProject = &model.ProcuringProject{
				ID:   r.nav.Text(pp, "ram:ID"),
				Name: r.nav.Text(pp, "ram:Name"),
			}
		}
	}

	if dl := r.nav.Find(tx, l.delivery); dl != nil {
		inv.ShipTo = r.party(dl, "ram:ShipToTradeParty")
		inv.ShipFrom = r.party(dl, "ram:ShipFromTradeParty")
		inv.ActualDeliveryDate = r.date(dl, "ram:ActualDeliverySupplyChainEvent/ram:OccurrenceDateTime")
		inv.DespatchAdviceReference = r.referencedDocument(dl, "ram:DespatchAdviceReferencedDocument")
		inv.DeliveryNoteReference = r.referencedDocument(dl, "ram:DeliveryNoteReferencedDocument")
	}

	if st := r.nav.Find(tx, l.settlement); st != nil {
		inv.CreditorReferenceID = r.nav.Text(st, "ram:CreditorReferenceID")
		inv.PaymentReference = r.nav.Text(st, "ram:PaymentReference")
		inv.TaxCurrency = currency(r.nav.Text(st, "ram:TaxCurrencyCode"))
		inv.Currency = currency(r.nav.Text(st, "ram:InvoiceCurrencyCode"))
		inv.Invoicer = r.party(st, "ram:InvoicerTradeParty")
		inv.Invoicee = r.party(st, "ram:InvoiceeTradeParty")
		inv.Payee = r.party(st, "ram:PayeeTradeParty")
		r.paymentMeans(inv, st, "ram:SpecifiedTradeSettlementPaymentMeans")
		inv.Taxes = r.headerTaxes(st, "ram:ApplicableTradeTax")
		inv.BillingPeriodStart, inv.BillingPeriodEnd = r.period(st, "ram:BillingSpecifiedPeriod")
		inv.AllowanceCharges = r.allowanceCharges(st, "ram:SpecifiedTradeAllowanceCharge")
		inv.ServiceCharges = r.serviceCharges(st, "ram:SpecifiedLogisticsServiceCharge")
		inv.PaymentTerms = r.paymentTerms(st, "ram:SpecifiedTradePaymentTerms")
		inv.Totals = r.totals(st, l.summation)
		for _, el := range r.nav.FindAll(st, "ram:InvoiceReferencedDocument") {
			if doc := r.referencedDocument(el, "."); doc != nil {
				inv.InvoiceReferences = append(inv.InvoiceReferences, *doc)
			}
		}
		inv.ReceivableAccountID = r.nav.Text(st, "ram:ReceivableSpecifiedTradeAccountingAccount/ram:ID")
	}
	sepa(inv)

	for _, el := range r.nav.FindAll(tx, "ram:IncludedSupplyChainTradeLineItem") {
		inv.LineItems = append(inv.LineItems, r.line(el, l.lineAgreement, l.lineDelivery, l.lineSettlement))
	}
	inheritCurrency(inv)
	return inv
}
