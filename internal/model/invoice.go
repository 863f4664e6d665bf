package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/zugferd/internal/decimal"
)

// Invoice is the canonical trade invoice, independent of wire format
type Invoice struct {
	// Header
	InvoiceNo       string       `json:"invoice_no"`
	InvoiceDate     *time.Time   `json:"invoice_date,omitempty"`
	Name            string       `json:"name,omitempty"` // Document name, Extended only
	Type            InvoiceType  `json:"type"`
	Currency        CurrencyCode `json:"currency"`
	TaxCurrency     CurrencyCode `json:"tax_currency,omitempty"`
	IsTest          bool         `json:"is_test,omitempty"`
	BusinessProcess string       `json:"business_process,omitempty"`
	Notes           []Note       `json:"notes,omitempty"`

	// Parties
	Seller   *Party `json:"seller"`
	Buyer    *Party `json:"buyer"`
	ShipTo   *Party `json:"ship_to,omitempty"`
	ShipFrom *Party `json:"ship_from,omitempty"`
	Payee    *Party `json:"payee,omitempty"`
	Invoicee *Party `json:"invoicee,omitempty"`
	Invoicer *Party `json:"invoicer,omitempty"`

	// Agreement
	BuyerReference       string                         `json:"buyer_reference,omitempty"`
	OrderReference       *ReferencedDocument            `json:"order_reference,omitempty"`
	SellerOrderReference *ReferencedDocument            `json:"seller_order_reference,omitempty"`
	ContractReference    *ReferencedDocument            `json:"contract_reference,omitempty"`
	AdditionalReferences []AdditionalReferencedDocument `json:"additional_references,omitempty"`
	ProcuringProject     *ProcuringProject              `json:"procuring_project,omitempty"`

	// Delivery
	ActualDeliveryDate      *time.Time          `json:"actual_delivery_date,omitempty"`
	DespatchAdviceReference *ReferencedDocument `json:"despatch_advice_reference,omitempty"`
	DeliveryNoteReference   *ReferencedDocument `json:"delivery_note_reference,omitempty"`

	// Settlement
	CreditorReferenceID string               `json:"creditor_reference_id,omitempty"`
	PaymentReference    string               `json:"payment_reference,omitempty"`
	PaymentMeans        *PaymentMeans        `json:"payment_means,omitempty"`
	CreditorAccounts    []BankAccount        `json:"creditor_accounts,omitempty"`
	DebitorAccounts     []BankAccount        `json:"debitor_accounts,omitempty"`
	Taxes               []Tax                `json:"taxes,omitempty"`
	BillingPeriodStart  *time.Time           `json:"billing_period_start,omitempty"`
	BillingPeriodEnd    *time.Time           `json:"billing_period_end,omitempty"`
	AllowanceCharges    []AllowanceCharge    `json:"allowance_charges,omitempty"`
	ServiceCharges      []ServiceCharge      `json:"service_charges,omitempty"`
	PaymentTerms        []PaymentTerms       `json:"payment_terms,omitempty"`
	InvoiceReferences   []ReferencedDocument `json:"invoice_references,omitempty"` // Preceding invoices
	ReceivableAccountID string               `json:"receivable_account_id,omitempty"`

	LineItems []*TradeLineItem `json:"line_items,omitempty"`

	// Explicit totals; nil means EffectiveTotals computes them
	Totals *Totals `json:"totals,omitempty"`
}

// New creates an invoice with the mandatory header values
func New(invoiceNo string, invoiceDate time.Time, currency CurrencyCode) *Invoice {
	return &Invoice{
		InvoiceNo:   invoiceNo,
		InvoiceDate: &invoiceDate,
		Type:        InvoiceTypeInvoice,
		Currency:    currency,
	}
}

// SetSeller sets the seller party
func (inv *Invoice) SetSeller(p Party) *Party {
	inv.Seller = &p
	return inv.Seller
}

// SetBuyer sets the buyer party
func (inv *Invoice) SetBuyer(p Party) *Party {
	inv.Buyer = &p
	return inv.Buyer
}

// SetSellerContact sets the seller contact, the seller must exist
func (inv *Invoice) SetSellerContact(c Contact) error {
	if inv.Seller == nil {
		return NewValidationError("seller", nil, "required", "seller must be set before its contact")
	}
	inv.Seller.Contact = &c
	return nil
}

// SetBuyerContact sets the buyer contact, the buyer must exist
func (inv *Invoice) SetBuyerContact(c Contact) error {
	if inv.Buyer == nil {
		return NewValidationError("buyer", nil, "required", "buyer must be set before its contact")
	}
	inv.Buyer.Contact = &c
	return nil
}

// AddSellerTaxRegistration appends a seller VAT id or tax number
func (inv *Invoice) AddSellerTaxRegistration(no string, scheme TaxRegistrationScheme) error {
	if inv.Seller == nil {
		return NewValidationError("seller", nil, "required", "seller must be set before its tax registration")
	}
	inv.Seller.TaxRegistrations = append(inv.Seller.TaxRegistrations, TaxRegistration{No: no, Scheme: scheme})
	return nil
}

// AddBuyerTaxRegistration appends a buyer VAT id or tax number
func (inv *Invoice) AddBuyerTaxRegistration(no string, scheme TaxRegistrationScheme) error {
	if inv.Buyer == nil {
		return NewValidationError("buyer", nil, "required", "buyer must be set before its tax registration")
	}
	inv.Buyer.TaxRegistrations = append(inv.Buyer.TaxRegistrations, TaxRegistration{No: no, Scheme: scheme})
	return nil
}

// SetShipTo sets the deliver-to party
func (inv *Invoice) SetShipTo(p Party) { inv.ShipTo = &p }

// SetShipFrom sets the ship-from party
func (inv *Invoice) SetShipFrom(p Party) { inv.ShipFrom = &p }

// SetPayee sets the payee party
func (inv *Invoice) SetPayee(p Party) { inv.Payee = &p }

// SetInvoicee sets the invoicee party
func (inv *Invoice) SetInvoicee(p Party) { inv.Invoicee = &p }

// SetInvoicer sets the invoicer party
func (inv *Invoice) SetInvoicer(p Party) { inv.Invoicer = &p }

// AddNote appends a header note
func (inv *Invoice) AddNote(content string, subject SubjectCode) {
	inv.Notes = append(inv.Notes, Note{Content: content, SubjectCode: subject})
}

// AddTradeLineItem appends a copy of item. An empty LineID is replaced by
// the next unused integer id; a duplicate LineID is rejected.
func (inv *Invoice) AddTradeLineItem(item TradeLineItem) (*TradeLineItem, error) {
	if item.LineID == "" {
		item.LineID = inv.nextLineID()
	} else if inv.hasLineID(item.LineID) {
		return nil, NewValidationError("line_id", item.LineID, "unique", "line id already used")
	}
	li := &item
	inv.LineItems = append(inv.LineItems, li)
	return li, nil
}

// AddTradeLineCommentItem appends a line that only carries a note
func (inv *Invoice) AddTradeLineCommentItem(lineID, comment string) (*TradeLineItem, error) {
	return inv.AddTradeLineItem(TradeLineItem{
		LineID: lineID,
		Notes:  []Note{{Content: comment}},
	})
}

func (inv *Invoice) hasLineID(id string) bool {
	for _, li := range inv.LineItems {
		if li.LineID == id {
			return true
		}
	}
	return false
}

func (inv *Invoice) nextLineID() string {
	highest := 0
	for _, li := range inv.LineItems {
		if n, err := strconv.Atoi(li.LineID); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// AddApplicableTradeTax appends a tax breakdown entry and returns it as
// stored. A zero tax amount with a non-zero rate is computed from the basis.
func (inv *Invoice) AddApplicableTradeTax(t Tax) Tax {
	if t.TaxAmount.IsZero() && !t.Percent.IsZero() {
		t.TaxAmount = dec.Percentage(t.BasisAmount, t.Percent)
	}
	if t.TypeCode == "" {
		t.TypeCode = TaxTypeVAT
	}
	inv.Taxes = append(inv.Taxes, t)
	return t
}

// AddTradeAllowanceCharge appends a document level allowance or charge
// with its linked tax
func (inv *Invoice) AddTradeAllowanceCharge(isDiscount bool, basis *decimal.Decimal, actual decimal.Decimal, reason string, taxType TaxType, category TaxCategory, taxPercent decimal.Decimal) {
	ac := NewTradeAllowanceCharge(isDiscount, actual, reason)
	ac.BasisAmount = basis
	ac.TaxType = taxType
	ac.TaxCategory = category
	ac.TaxPercent = &taxPercent
	inv.AllowanceCharges = append(inv.AllowanceCharges, ac)
}

// AddLogisticsServiceCharge appends a logistics service charge
func (inv *Invoice) AddLogisticsServiceCharge(amount decimal.Decimal, description string, taxType TaxType, category TaxCategory, taxPercent decimal.Decimal) {
	inv.ServiceCharges = append(inv.ServiceCharges, ServiceCharge{
		Description: description,
		Amount:      amount,
		TaxType:     taxType,
		TaxCategory: category,
		TaxPercent:  &taxPercent,
	})
}

// AddCreditorFinancialAccount appends a seller bank account
func (inv *Invoice) AddCreditorFinancialAccount(acct BankAccount) {
	inv.CreditorAccounts = append(inv.CreditorAccounts, acct)
}

// AddDebitorFinancialAccount appends a buyer bank account
func (inv *Invoice) AddDebitorFinancialAccount(acct BankAccount) {
	inv.DebitorAccounts = append(inv.DebitorAccounts, acct)
}

// SetPaymentMeans sets the payment means
func (inv *Invoice) SetPaymentMeans(pm PaymentMeans) {
	inv.PaymentMeans = &pm
}

// SetPaymentMeansSEPADirectDebit sets SEPA direct debit with its creditor
// identifier and mandate reference
func (inv *Invoice) SetPaymentMeansSEPADirectDebit(creditorID, mandateReference, information string) {
	inv.PaymentMeans = &PaymentMeans{
		TypeCode:               PaymentMeansSEPADirectDebit,
		Information:            information,
		SEPACreditorIdentifier: creditorID,
		SEPAMandateReference:   mandateReference,
	}
	inv.CreditorReferenceID = creditorID
}

// AddTradePaymentTerms appends payment terms
func (inv *Invoice) AddTradePaymentTerms(pt PaymentTerms) {
	inv.PaymentTerms = append(inv.PaymentTerms, pt)
}

// SetTotals stores explicit totals
func (inv *Invoice) SetTotals(t Totals) {
	inv.Totals = &t
}

// SetBuyerOrderReferencedDocument sets the purchase order reference
func (inv *Invoice) SetBuyerOrderReferencedDocument(id string, issueDate *time.Time) {
	inv.OrderReference = &ReferencedDocument{ID: id, IssueDate: issueDate}
}

// SetContractReferencedDocument sets the contract reference
func (inv *Invoice) SetContractReferencedDocument(id string, issueDate *time.Time) {
	inv.ContractReference = &ReferencedDocument{ID: id, IssueDate: issueDate}
}

// SetDeliveryNoteReferencedDocument sets the delivery note reference
func (inv *Invoice) SetDeliveryNoteReferencedDocument(id string, issueDate *time.Time) {
	inv.DeliveryNoteReference = &ReferencedDocument{ID: id, IssueDate: issueDate}
}

// SetDespatchAdviceReferencedDocument sets the despatch advice reference
func (inv *Invoice) SetDespatchAdviceReferencedDocument(id string, issueDate *time.Time) {
	inv.DespatchAdviceReference = &ReferencedDocument{ID: id, IssueDate: issueDate}
}

// AddInvoiceReferencedDocument appends a preceding invoice reference
func (inv *Invoice) AddInvoiceReferencedDocument(id string, issueDate *time.Time) {
	inv.InvoiceReferences = append(inv.InvoiceReferences, ReferencedDocument{ID: id, IssueDate: issueDate})
}

// AddAdditionalReferencedDocument appends a supporting document. The mime
// type of an attachment is detected when not given.
func (inv *Invoice) AddAdditionalReferencedDocument(doc AdditionalReferencedDocument) {
	if len(doc.Attachment) > 0 && doc.MimeType == "" {
		doc.MimeType = DetectMimeType(doc.Filename, doc.Attachment)
	}
	inv.AdditionalReferences = append(inv.AdditionalReferences, doc)
}

// SetProcuringProject sets the project reference
func (inv *Invoice) SetProcuringProject(id, name string) {
	inv.ProcuringProject = &ProcuringProject{ID: id, Name: name}
}

// SetBillingPeriod sets the invoicing period
func (inv *Invoice) SetBillingPeriod(start, end time.Time) {
	inv.BillingPeriodStart = &start
	inv.BillingPeriodEnd = &end
}

// BillableLines returns the lines that are not comment lines
func (inv *Invoice) BillableLines() []*TradeLineItem {
	lines := make([]*TradeLineItem, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		if !li.IsCommentLine() {
			lines = append(lines, li)
		}
	}
	return lines
}
