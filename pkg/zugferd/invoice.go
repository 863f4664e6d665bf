// Package zugferd reads, writes and converts ZUGFeRD, Factur-X and
// XRechnung invoices.
//
// Build an invoice with NewInvoice and the builder methods of Invoice,
// then write it for a schema version, dialect and profile:
//
//	inv := zugferd.NewInvoice("471102", time.Now(), zugferd.CurrencyEUR)
//	inv.SetSeller(zugferd.Party{Name: "Lieferant GmbH", Country: "DE"})
//	...
//	err := zugferd.Save(inv, zugferd.Version23, zugferd.FamilyCII, zugferd.XRechnung, f)
//
// Load reads any supported document:
//
//	doc, err := zugferd.Load(f)
//	fmt.Println(doc.Version, doc.Profile, doc.Invoice.InvoiceNo)
package zugferd

import (
	"time"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
)

// Re-export the invoice model
type (
	Invoice                      = model.Invoice
	Party                        = model.Party
	GlobalID                     = model.GlobalID
	TaxRegistration              = model.TaxRegistration
	Contact                      = model.Contact
	ElectronicAddress            = model.ElectronicAddress
	LegalOrganization            = model.LegalOrganization
	TradeLineItem                = model.TradeLineItem
	Note                         = model.Note
	Tax                          = model.Tax
	AllowanceCharge              = model.AllowanceCharge
	ServiceCharge                = model.ServiceCharge
	Totals                       = model.Totals
	PaymentMeans                 = model.PaymentMeans
	FinancialCard                = model.FinancialCard
	BankAccount                  = model.BankAccount
	PaymentTerms                 = model.PaymentTerms
	ReferencedDocument           = model.ReferencedDocument
	AdditionalReferencedDocument = model.AdditionalReferencedDocument
	ProcuringProject             = model.ProcuringProject
	CurrencyCode                 = model.CurrencyCode
	CountryCode                  = model.CountryCode
)

// Re-export profiles, versions and dialects
type (
	Profile = profile.Profile
	Version = profile.Version
	Family  = profile.Family
)

const (
	Minimum    = profile.Minimum
	BasicWL    = profile.BasicWL
	Basic      = profile.Basic
	Comfort    = profile.Comfort
	Extended   = profile.Extended
	XRechnung1 = profile.XRechnung1
	XRechnung  = profile.XRechnung
)

const (
	Version1  = profile.Version1
	Version20 = profile.Version20
	Version21 = profile.Version21
	Version23 = profile.Version23
)

const (
	FamilyCII = profile.FamilyCII
	FamilyUBL = profile.FamilyUBL
)

const CurrencyEUR = model.CurrencyEUR

// Re-export error types
type (
	StreamAccessError             = model.StreamAccessError
	FormatRecognitionError        = model.FormatRecognitionError
	MalformedDocumentError        = model.MalformedDocumentError
	BusinessRuleViolation         = model.BusinessRuleViolation
	ViolationList                 = model.ViolationList
	UnsupportedConfigurationError = model.UnsupportedConfigurationError
	ValidationError               = model.ValidationError
)

// NewInvoice starts a commercial invoice (type 380)
func NewInvoice(invoiceNo string, invoiceDate time.Time, currency CurrencyCode) *Invoice {
	return model.New(invoiceNo, invoiceDate, currency)
}

// ParseProfile reads a profile name such as "comfort" or "xrechnung"
func ParseProfile(s string) (Profile, error) { return profile.Parse(s) }

// ParseVersion reads a schema version such as "2.3"
func ParseVersion(s string) (Version, error) { return profile.ParseVersion(s) }

// ParseFamily reads "cii" or "ubl"
func ParseFamily(s string) (Family, error) { return profile.ParseFamily(s) }
