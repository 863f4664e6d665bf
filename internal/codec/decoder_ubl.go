package codec

import (
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// UBLDecoder reads UBL 2.1 Invoice and CreditNote documents
type UBLDecoder struct {
	decoderBase
}

// NewUBLDecoder creates the UBL decoder
func NewUBLDecoder(opts ...Option) *UBLDecoder {
	o := applyOptions("decoder-ubl", opts)
	return &UBLDecoder{
		decoderBase: decoderBase{
			version:    profile.Version23,
			family:     profile.FamilyUBL,
			rootTags:   []string{"Invoice", "CreditNote"},
			rootURIs:   []string{xmlio.NSUBLInvoice, xmlio.NSUBLCreditNote},
			guideline:  "cbc:CustomizationID",
			guidelines: profile.ReadGuidelines(profile.Version23, profile.FamilyUBL),
			// every path below the root is cac/cbc qualified, so one
			// binding serves both roots
			nav: xmlio.NewNavigator(xmlio.UBLNamespaces(false)),
			log: o.log,
		},
	}
}

// Load implements Decoder
func (d *UBLDecoder) Load(r io.Reader) (*model.Invoice, profile.Profile, error) {
	root, p, err := d.open(r)
	if err != nil {
		return nil, profile.Unknown, err
	}

	inv := d.header(root)
	d.references(inv, root)

	if el := d.nav.Find(root, "cac:AccountingSupplierParty/cac:Party"); el != nil {
		inv.Seller, inv.CreditorReferenceID = d.party(el)
	}
	if el := d.nav.Find(root, "cac:AccountingCustomerParty/cac:Party"); el != nil {
		inv.Buyer, _ = d.party(el)
	}
	inv.Payee = d.payee(root)
	d.delivery(inv, root)
	d.paymentMeans(inv, root)
	d.paymentTerms(inv, root)

	for _, el := range d.nav.FindAll(root, "cac:AllowanceCharge") {
		inv.AllowanceCharges = append(inv.AllowanceCharges, d.allowanceCharge(el))
	}
	d.taxes(inv, root)
	d.totals(inv, root)

	for _, tag := range []string{"cac:InvoiceLine", "cac:CreditNoteLine"} {
		for _, el := range d.nav.FindAll(root, tag) {
			inv.LineItems = append(inv.LineItems, d.line(el))
		}
	}
	sepa(inv)
	inheritCurrency(inv)

	if err := d.requireID(inv, "cbc:ID"); err != nil {
		return nil, profile.Unknown, err
	}
	return inv, p, nil
}

func (d *UBLDecoder) date(ctx *etree.Element, path string) *time.Time {
	return d.nav.Date(ctx, xmlio.PlainDate(path))
}

func (d *UBLDecoder) header(root *etree.Element) *model.Invoice {
	inv := &model.Invoice{
		InvoiceNo:           d.nav.Text(root, "cbc:ID"),
		InvoiceDate:         d.date(root, "cbc:IssueDate"),
		Currency:            currency(d.nav.Text(root, "cbc:DocumentCurrencyCode")),
		TaxCurrency:         currency(d.nav.Text(root, "cbc:TaxCurrencyCode")),
		ReceivableAccountID: d.nav.Text(root, "cbc:AccountingCost"),
		BuyerReference:      d.nav.Text(root, "cbc:BuyerReference"),
	}

	typeCode := d.nav.Text(root, "cbc:InvoiceTypeCode")
	if typeCode == "" {
		typeCode = d.nav.Text(root, "cbc:CreditNoteTypeCode")
	}
	inv.Type = invoiceType(typeCode)

	if bp := d.nav.Text(root, "cbc:ProfileID"); bp != profile.PeppolBIS {
		inv.BusinessProcess = bp
	}
	for _, text := range d.nav.Texts(root, "cbc:Note") {
		inv.Notes = append(inv.Notes, parseUBLNote(text))
	}
	if period := d.nav.Find(root, "cac:InvoicePeriod"); period != nil {
		inv.BillingPeriodStart = d.date(period, "cbc:StartDate")
		inv.BillingPeriodEnd = d.date(period, "cbc:EndDate")
	}
	return inv
}

// parseUBLNote splits a "#AAI#text" note into subject code and content
func parseUBLNote(text string) model.Note {
	if strings.HasPrefix(text, "#") {
		if end := strings.Index(text[1:], "#"); end > 0 {
			code := model.ParseSubjectCode(text[1 : end+1])
			if code.IsKnown() {
				return model.Note{Content: text[end+2:], SubjectCode: code}
			}
		}
	}
	return model.Note{Content: text}
}

func (d *UBLDecoder) references(inv *model.Invoice, root *etree.Element) {
	if ord := d.nav.Find(root, "cac:OrderReference"); ord != nil {
		if id := d.nav.Text(ord, "cbc:ID"); id != "" && id != "NA" {
			inv.OrderReference = &model.ReferencedDocument{ID: id}
		}
		if id := d.nav.Text(ord, "cbc:SalesOrderID"); id != "" {
			inv.SellerOrderReference = &model.ReferencedDocument{ID: id}
		}
	}
	for _, el := range d.nav.FindAll(root, "cac:BillingReference/cac:InvoiceDocumentReference") {
		inv.InvoiceReferences = append(inv.InvoiceReferences, model.ReferencedDocument{
			ID:        d.nav.Text(el, "cbc:ID"),
			IssueDate: d.date(el, "cbc:IssueDate"),
		})
	}
	if id := d.nav.Text(root, "cac:DespatchDocumentReference/cbc:ID"); id != "" {
		inv.DespatchAdviceReference = &model.ReferencedDocument{ID: id}
	}
	if id := d.nav.Text(root, "cac:ContractDocumentReference/cbc:ID"); id != "" {
		inv.ContractReference = &model.ReferencedDocument{ID: id}
	}
	for _, el := range d.nav.FindAll(root, "cac:AdditionalDocumentReference") {
		doc := model.AdditionalReferencedDocument{
			ID:                d.nav.Text(el, "cbc:ID"),
			ReferenceTypeCode: d.nav.Attr(el, "cbc:ID", "schemeID"),
			TypeCode:          referencedDocumentType(d.nav.Text(el, "cbc:DocumentTypeCode")),
			Name:              d.nav.Text(el, "cbc:DocumentDescription"),
			URI:               d.nav.Text(el, "cac:Attachment/cac:ExternalReference/cbc:URI"),
		}
		if bin := d.nav.Find(el, "cac:Attachment/cbc:EmbeddedDocumentBinaryObject"); bin != nil {
			if data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(bin.Text())); err == nil {
				doc.Attachment = data
			}
			doc.MimeType = bin.SelectAttrValue("mimeCode", "")
			doc.Filename = bin.SelectAttrValue("filename", "")
		}
		inv.AdditionalReferences = append(inv.AdditionalReferences, doc)
	}
	if id := d.nav.Text(root, "cac:ProjectReference/cbc:ID"); id != "" {
		inv.ProcuringProject = &model.ProcuringProject{ID: id}
	}
}

// party reads cac:Party and returns the SEPA creditor identifier found
// among its identifications
func (d *UBLDecoder) party(el *etree.Element) (*model.Party, string) {
	p := &model.Party{}
	creditorID := ""

	if ep := d.nav.Find(el, "cbc:EndpointID"); ep != nil {
		p.ElectronicAddress = &model.ElectronicAddress{
			Address: strings.TrimSpace(ep.Text()),
			Scheme:  electronicAddressScheme(ep.SelectAttrValue("schemeID", "")),
		}
	}

	for _, id := range d.nav.FindAll(el, "cac:PartyIdentification/cbc:ID") {
		value := strings.TrimSpace(id.Text())
		switch scheme := id.SelectAttrValue("schemeID", ""); scheme {
		case "":
			p.ID = &model.GlobalID{ID: value}
		case sepaScheme:
			creditorID = value
		default:
			p.GlobalID = &model.GlobalID{ID: value, Scheme: model.ParseGlobalIDScheme(scheme)}
		}
	}

	tradingName := d.nav.Text(el, "cac:PartyName/cbc:Name")
	if legal := d.nav.Find(el, "cac:PartyLegalEntity"); legal != nil {
		p.Name = d.nav.Text(legal, "cbc:RegistrationName")
		p.Description = d.nav.Text(legal, "cbc:CompanyLegalForm")
		if company := d.nav.Find(legal, "cbc:CompanyID"); company != nil {
			p.LegalOrganization = &model.LegalOrganization{ID: &model.GlobalID{
				ID:     strings.TrimSpace(company.Text()),
				Scheme: model.ParseGlobalIDScheme(company.SelectAttrValue("schemeID", "")),
			}}
			if p.LegalOrganization.ID.Scheme == model.GlobalIDSchemeUnknown {
				p.LegalOrganization.ID.Scheme = model.GlobalIDSchemeNone
			}
		}
	}
	if tradingName != "" {
		if p.LegalOrganization == nil {
			p.LegalOrganization = &model.LegalOrganization{}
		}
		p.LegalOrganization.TradingName = tradingName
	}

	d.address(p, d.nav.Find(el, "cac:PostalAddress"))

	for _, reg := range d.nav.FindAll(el, "cac:PartyTaxScheme") {
		scheme := d.nav.Text(reg, "cac:TaxScheme/cbc:ID")
		p.TaxRegistrations = append(p.TaxRegistrations, model.TaxRegistration{
			No:     d.nav.Text(reg, "cbc:CompanyID"),
			Scheme: ublTaxRegistrationScheme(scheme),
		})
	}

	if ct := d.nav.Find(el, "cac:Contact"); ct != nil {
		p.Contact = &model.Contact{
			Name:  d.nav.Text(ct, "cbc:Name"),
			Phone: d.nav.Text(ct, "cbc:Telephone"),
			Email: d.nav.Text(ct, "cbc:ElectronicMail"),
		}
	}
	return p, creditorID
}

func ublTaxRegistrationScheme(s string) model.TaxRegistrationScheme {
	if s == "VAT" {
		return model.TaxRegistrationVAT
	}
	return taxRegistrationScheme(s)
}

func (d *UBLDecoder) address(p *model.Party, addr *etree.Element) {
	if addr == nil {
		return
	}
	p.Street = d.nav.Text(addr, "cbc:StreetName")
	p.AddressLine3 = d.nav.Text(addr, "cbc:AdditionalStreetName")
	p.City = d.nav.Text(addr, "cbc:CityName")
	p.Postcode = d.nav.Text(addr, "cbc:PostalZone")
	p.CountrySubdivision = d.nav.Text(addr, "cbc:CountrySubentity")
	p.ContactName = d.nav.Text(addr, "cac:AddressLine/cbc:Line")
	p.Country = model.ParseCountryCode(d.nav.Text(addr, "cac:Country/cbc:IdentificationCode"))
}

func (d *UBLDecoder) payee(root *etree.Element) *model.Party {
	el := d.nav.Find(root, "cac:PayeeParty")
	if el == nil {
		return nil
	}
	p := &model.Party{Name: d.nav.Text(el, "cac:PartyName/cbc:Name")}
	if id := d.nav.Find(el, "cac:PartyIdentification/cbc:ID"); id != nil {
		value := strings.TrimSpace(id.Text())
		if scheme := id.SelectAttrValue("schemeID", ""); scheme != "" {
			p.GlobalID = &model.GlobalID{ID: value, Scheme: model.ParseGlobalIDScheme(scheme)}
		} else {
			p.ID = &model.GlobalID{ID: value}
		}
	}
	if company := d.nav.Text(el, "cac:PartyLegalEntity/cbc:CompanyID"); company != "" {
		p.LegalOrganization = &model.LegalOrganization{ID: &model.GlobalID{ID: company}}
	}
	return p
}

func (d *UBLDecoder) delivery(inv *model.Invoice, root *etree.Element) {
	el := d.nav.Find(root, "cac:Delivery")
	if el == nil {
		return
	}
	inv.ActualDeliveryDate = d.date(el, "cbc:ActualDeliveryDate")

	loc := d.nav.Find(el, "cac:DeliveryLocation")
	name := d.nav.Text(el, "cac:DeliveryParty/cac:PartyName/cbc:Name")
	if loc == nil && name == "" {
		return
	}
	st := &model.Party{Name: name}
	if loc != nil {
		if id := d.nav.Find(loc, "cbc:ID"); id != nil {
			st.GlobalID = &model.GlobalID{
				ID:     strings.TrimSpace(id.Text()),
				Scheme: model.ParseGlobalIDScheme(id.SelectAttrValue("schemeID", "")),
			}
		}
		d.address(st, d.nav.Find(loc, "cac:Address"))
	}
	inv.ShipTo = st
}

// paymentMeans merges the cac:PaymentMeans elements: type, card and
// mandate from the first, one creditor account from each
func (d *UBLDecoder) paymentMeans(inv *model.Invoice, root *etree.Element) {
	for i, el := range d.nav.FindAll(root, "cac:PaymentMeans") {
		if i == 0 {
			pm := &model.PaymentMeans{
				TypeCode:             paymentMeansType(d.nav.Text(el, "cbc:PaymentMeansCode")),
				Information:          d.nav.Attr(el, "cbc:PaymentMeansCode", "name"),
				SEPAMandateReference: d.nav.Text(el, "cac:PaymentMandate/cbc:ID"),
			}
			if card := d.nav.Find(el, "cac:CardAccount"); card != nil {
				pm.FinancialCard = &model.FinancialCard{
					ID:             d.nav.Text(card, "cbc:PrimaryAccountNumberID"),
					CardholderName: d.nav.Text(card, "cbc:HolderName"),
				}
			}
			inv.PaymentMeans = pm
			inv.PaymentReference = d.nav.Text(el, "cbc:PaymentID")
			if id := d.nav.Text(el, "cac:PaymentMandate/cac:PayerFinancialAccount/cbc:ID"); id != "" {
				inv.DebitorAccounts = append(inv.DebitorAccounts, ublAccount(id))
			}
		}

		if fa := d.nav.Find(el, "cac:PayeeFinancialAccount"); fa != nil {
			acct := ublAccount(d.nav.Text(fa, "cbc:ID"))
			acct.Name = d.nav.Text(fa, "cbc:Name")
			acct.BIC = d.nav.Text(fa, "cac:FinancialInstitutionBranch/cbc:ID")
			inv.CreditorAccounts = append(inv.CreditorAccounts, acct)
		}
	}
}

// ublAccount files an account identifier as IBAN when it looks like one
func ublAccount(id string) model.BankAccount {
	if isIBAN(id) {
		return model.BankAccount{IBAN: id}
	}
	return model.BankAccount{ProprietaryID: id}
}

func isIBAN(id string) bool {
	if len(id) < 15 || len(id) > 34 {
		return false
	}
	for i, r := range id {
		switch {
		case i < 2 && (r < 'A' || r > 'Z'):
			return false
		case i >= 2 && i < 4 && (r < '0' || r > '9'):
			return false
		case i >= 4 && !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
			return false
		}
	}
	return true
}

// paymentTerms reads the term notes; the header due date belongs to the
// first
func (d *UBLDecoder) paymentTerms(inv *model.Invoice, root *etree.Element) {
	for _, note := range d.nav.Texts(root, "cac:PaymentTerms/cbc:Note") {
		inv.PaymentTerms = append(inv.PaymentTerms, model.PaymentTerms{Description: note})
	}
	due := d.date(root, "cbc:DueDate")
	if due == nil {
		return
	}
	if len(inv.PaymentTerms) == 0 {
		inv.PaymentTerms = append(inv.PaymentTerms, model.PaymentTerms{})
	}
	inv.PaymentTerms[0].DueDate = due
}

func (d *UBLDecoder) allowanceCharge(el *etree.Element) model.AllowanceCharge {
	ac := model.AllowanceCharge{
		ChargeIndicator: d.nav.Bool(el, "cbc:ChargeIndicator"),
		ReasonCode:      d.nav.Text(el, "cbc:AllowanceChargeReasonCode"),
		Reason:          d.nav.Text(el, "cbc:AllowanceChargeReason"),
		Percent:         d.nav.Decimal(el, "cbc:MultiplierFactorNumeric"),
		ActualAmount:    d.nav.DecimalValue(el, "cbc:Amount"),
		BasisAmount:     d.nav.Decimal(el, "cbc:BaseAmount"),
		Currency:        currency(d.nav.Attr(el, "cbc:Amount", "currencyID")),
	}
	if cat := d.nav.Find(el, "cac:TaxCategory"); cat != nil {
		ac.TaxCategory = taxCategory(d.nav.Text(cat, "cbc:ID"))
		ac.TaxPercent = d.nav.Decimal(cat, "cbc:Percent")
		ac.TaxType = taxType(d.nav.Text(cat, "cac:TaxScheme/cbc:ID"))
	}
	return ac
}

func (d *UBLDecoder) taxes(inv *model.Invoice, root *etree.Element) {
	for _, el := range d.nav.FindAll(root, "cac:TaxTotal/cac:TaxSubtotal") {
		inv.Taxes = append(inv.Taxes, model.Tax{
			BasisAmount:         d.nav.DecimalValue(el, "cbc:TaxableAmount"),
			TaxAmount:           d.nav.DecimalValue(el, "cbc:TaxAmount"),
			CategoryCode:        taxCategory(d.nav.Text(el, "cac:TaxCategory/cbc:ID")),
			Percent:             d.nav.DecimalValue(el, "cac:TaxCategory/cbc:Percent"),
			ExemptionReasonCode: d.nav.Text(el, "cac:TaxCategory/cbc:TaxExemptionReasonCode"),
			ExemptionReason:     d.nav.Text(el, "cac:TaxCategory/cbc:TaxExemptionReason"),
			TypeCode:            taxType(d.nav.Text(el, "cac:TaxCategory/cac:TaxScheme/cbc:ID")),
		})
	}
}

func (d *UBLDecoder) totals(inv *model.Invoice, root *etree.Element) {
	mt := d.nav.Find(root, "cac:LegalMonetaryTotal")
	if mt == nil {
		return
	}
	inv.Totals = &model.Totals{
		LineTotal:      d.nav.DecimalValue(mt, "cbc:LineExtensionAmount"),
		TaxBasis:       d.nav.DecimalValue(mt, "cbc:TaxExclusiveAmount"),
		GrandTotal:     d.nav.DecimalValue(mt, "cbc:TaxInclusiveAmount"),
		AllowanceTotal: d.nav.Decimal(mt, "cbc:AllowanceTotalAmount"),
		ChargeTotal:    d.nav.Decimal(mt, "cbc:ChargeTotalAmount"),
		Prepaid:        d.nav.Decimal(mt, "cbc:PrepaidAmount"),
		Rounding:       d.nav.Decimal(mt, "cbc:PayableRoundingAmount"),
		DuePayable:     d.nav.DecimalValue(mt, "cbc:PayableAmount"),
		TaxTotal:       d.nav.DecimalValue(root, "cac:TaxTotal/cbc:TaxAmount"),
	}
}

func (d *UBLDecoder) line(el *etree.Element) *model.TradeLineItem {
	li := &model.TradeLineItem{
		LineID:              d.nav.Text(el, "cbc:ID"),
		LineTotalAmount:     d.nav.Decimal(el, "cbc:LineExtensionAmount"),
		ReceivableAccountID: d.nav.Text(el, "cbc:AccountingCost"),
	}
	for _, text := range d.nav.Texts(el, "cbc:Note") {
		li.Notes = append(li.Notes, parseUBLNote(text))
	}
	for _, tag := range []string{"cbc:InvoicedQuantity", "cbc:CreditedQuantity"} {
		if q := d.nav.Find(el, tag); q != nil {
			li.BilledQuantity = d.nav.DecimalValue(el, tag)
			li.UnitCode = model.ParseQuantityCode(q.SelectAttrValue("unitCode", ""))
		}
	}
	if period := d.nav.Find(el, "cac:InvoicePeriod"); period != nil {
		li.BillingPeriodStart = d.date(period, "cbc:StartDate")
		li.BillingPeriodEnd = d.date(period, "cbc:EndDate")
	}
	if lineID := d.nav.Text(el, "cac:OrderLineReference/cbc:LineID"); lineID != "" {
		li.BuyerOrderReference = &model.ReferencedDocument{LineID: lineID}
	}
	for _, ac := range d.nav.FindAll(el, "cac:AllowanceCharge") {
		li.AllowanceCharges = append(li.AllowanceCharges, d.allowanceCharge(ac))
	}

	if item := d.nav.Find(el, "cac:Item"); item != nil {
		li.Description = d.nav.Text(item, "cbc:Description")
		li.Name = d.nav.Text(item, "cbc:Name")
		li.BuyerAssignedID = d.nav.Text(item, "cac:BuyersItemIdentification/cbc:ID")
		li.SellerAssignedID = d.nav.Text(item, "cac:SellersItemIdentification/cbc:ID")
		if g := d.nav.Find(item, "cac:StandardItemIdentification/cbc:ID"); g != nil {
			li.GlobalID = &model.GlobalID{
				ID:     strings.TrimSpace(g.Text()),
				Scheme: model.ParseGlobalIDScheme(g.SelectAttrValue("schemeID", "")),
			}
		}
		if cat := d.nav.Find(item, "cac:ClassifiedTaxCategory"); cat != nil {
			li.TaxCategory = taxCategory(d.nav.Text(cat, "cbc:ID"))
			li.TaxPercent = d.nav.DecimalValue(cat, "cbc:Percent")
			li.TaxType = taxType(d.nav.Text(cat, "cac:TaxScheme/cbc:ID"))
		}
	}

	if price := d.nav.Find(el, "cac:Price"); price != nil {
		li.NetUnitPrice = d.nav.Decimal(price, "cbc:PriceAmount")
		li.UnitQuantity = d.nav.Decimal(price, "cbc:BaseQuantity")
		if li.UnitCode == "" {
			li.UnitCode = model.ParseQuantityCode(d.nav.Attr(price, "cbc:BaseQuantity", "unitCode"))
		}
		for _, ac := range d.nav.FindAll(price, "cac:AllowanceCharge") {
			if li.GrossUnitPrice == nil {
				li.GrossUnitPrice = d.nav.Decimal(ac, "cbc:BaseAmount")
			}
			amount := d.nav.DecimalValue(ac, "cbc:Amount")
			if amount.Equal(decimal.Zero) {
				continue
			}
			li.PriceAllowanceCharges = append(li.PriceAllowanceCharges, model.AllowanceCharge{
				ChargeIndicator: d.nav.Bool(ac, "cbc:ChargeIndicator"),
				ActualAmount:    amount,
				Reason:          d.nav.Text(ac, "cbc:AllowanceChargeReason"),
				Currency:        currency(d.nav.Attr(ac, "cbc:Amount", "currencyID")),
			})
		}
	}

	finishLine(li)
	return li
}
