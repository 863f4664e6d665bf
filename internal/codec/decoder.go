package codec

import (
	"bytes"
	"io"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// decoderBase recognizes documents by root element and exact guideline
// identifier and hands the parsed root to the version specific reader
type decoderBase struct {
	version    profile.Version
	family     profile.Family
	rootTags   []string
	rootURIs   []string
	guideline  string
	guidelines profile.Guidelines
	nav        *xmlio.Navigator
	log        zerolog.Logger
}

func (b *decoderBase) Version() profile.Version { return b.version }
func (b *decoderBase) Family() profile.Family   { return b.family }

// Recognizes implements Decoder
func (b *decoderBase) Recognizes(r io.Reader) bool {
	if r == nil {
		return false
	}
	doc, err := xmlio.ReadDocument(r)
	if err != nil {
		return false
	}
	_, ok := b.identify(doc.Root())
	return ok
}

func (b *decoderBase) identify(root *etree.Element) (profile.Profile, bool) {
	if root == nil || !contains(b.rootTags, root.Tag) || !contains(b.rootURIs, root.NamespaceURI()) {
		return profile.Unknown, false
	}
	return b.guidelines.Lookup(b.nav.Text(root, b.guideline))
}

// open reads the whole stream and parses it. Read failures are stream
// errors, parse failures malformed documents.
func (b *decoderBase) open(r io.Reader) (*etree.Element, profile.Profile, error) {
	if r == nil {
		return nil, profile.Unknown, model.NewStreamAccessError("read", "stream is nil", nil)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, profile.Unknown, model.NewStreamAccessError("read", "stream is not readable", err)
	}
	doc, err := xmlio.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, profile.Unknown, model.NewMalformedDocumentError(b.version.String(), "", "document is not well-formed XML", err)
	}

	root := doc.Root()
	p, ok := b.identify(root)
	if !ok {
		id := b.nav.Text(root, b.guideline)
		if id == "" {
			id = root.Tag
		}
		return nil, profile.Unknown, model.NewFormatRecognitionError(id,
			"not a "+b.family.String()+" "+b.version.String()+" document")
	}

	b.log.Debug().
		Str("version", b.version.String()).
		Str("profile", p.String()).
		Msg("decoding document")
	return root, p, nil
}

// requireID enforces BT-1, the only element without which no invoice can
// be built
func (b *decoderBase) requireID(inv *model.Invoice, path string) error {
	if inv.InvoiceNo == "" {
		return model.NewMalformedDocumentError(b.version.String(), path, "invoice number (BT-1) is missing", nil)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Optional code parsers: an absent element stays empty, an unrecognized
// code becomes the Unknown variant

func invoiceType(s string) model.InvoiceType {
	if s == "" {
		return ""
	}
	return model.ParseInvoiceType(s)
}

func taxType(s string) model.TaxType {
	if s == "" {
		return ""
	}
	return model.ParseTaxType(s)
}

func taxCategory(s string) model.TaxCategory {
	if s == "" {
		return ""
	}
	return model.ParseTaxCategory(s)
}

func currency(s string) model.CurrencyCode {
	if s == "" {
		return ""
	}
	return model.ParseCurrencyCode(s)
}

func paymentMeansType(s string) model.PaymentMeansType {
	if s == "" {
		return ""
	}
	return model.ParsePaymentMeansType(s)
}

func taxRegistrationScheme(s string) model.TaxRegistrationScheme {
	if s == "" {
		return ""
	}
	return model.ParseTaxRegistrationScheme(s)
}

func electronicAddressScheme(s string) model.ElectronicAddressScheme {
	if s == "" {
		return ""
	}
	return model.ParseElectronicAddressScheme(s)
}

func referencedDocumentType(s string) model.ReferencedDocumentType {
	if s == "" {
		return ""
	}
	return model.ParseReferencedDocumentType(s)
}

// amountCurrency is the currency an allowance or charge is stated in
func amountCurrency(ac model.AllowanceCharge, document model.CurrencyCode) model.CurrencyCode {
	if ac.Currency != "" {
		return ac.Currency
	}
	return document
}

// inheritCurrency clears allowance/charge currencies that merely repeat
// the document currency, leaving only real overrides
func inheritCurrency(inv *model.Invoice) {
	inherit := func(list []model.AllowanceCharge) {
		for i := range list {
			if list[i].Currency == inv.Currency {
				list[i].Currency = ""
			}
		}
	}
	inherit(inv.AllowanceCharges)
	for _, li := range inv.LineItems {
		inherit(li.AllowanceCharges)
		inherit(li.PriceAllowanceCharges)
	}
}

// finishLine restores the empty name and amount of comment lines written
// with placeholders
func finishLine(li *model.TradeLineItem) {
	if !li.IsCommentLine() {
		return
	}
	if li.Name == commentPlaceholder {
		li.Name = ""
	}
	if li.LineTotalAmount != nil && li.LineTotalAmount.IsZero() {
		li.LineTotalAmount = nil
	}
}
