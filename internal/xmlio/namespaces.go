// Package xmlio wraps etree with the two primitives the codecs need: a
// profile-gated document writer and a namespace-aware path navigator.
package xmlio

// Namespace binds a prefix to a URI. The empty prefix is the default namespace.
type Namespace struct {
	Prefix string
	URI    string
}

// Namespaces is an ordered prefix binding list, written on the root element
// in this order
type Namespaces []Namespace

// URI returns the namespace bound to prefix
func (ns Namespaces) URI(prefix string) (string, bool) {
	for _, n := range ns {
		if n.Prefix == prefix {
			return n.URI, true
		}
	}
	return "", false
}

// Common namespace URIs
const (
	NSXSI = "http://www.w3.org/2001/XMLSchema-instance"

	NSV1RSM = "urn:ferd:CrossIndustryDocument:invoice:1p0"
	NSV1RAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:12"
	NSV1UDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:15"

	NSCIIRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NSCIIRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NSCIIUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
	NSCIIQDT = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"

	NSUBLInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NSUBLCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
	NSUBLCAC        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NSUBLCBC        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// Bindings used by the encoders and, by URI, the decoders
var (
	V1Namespaces = Namespaces{
		{"xsi", NSXSI},
		{"rsm", NSV1RSM},
		{"ram", NSV1RAM},
		{"udt", NSV1UDT},
	}

	CIINamespaces = Namespaces{
		{"xsi", NSXSI},
		{"qdt", NSCIIQDT},
		{"udt", NSCIIUDT},
		{"rsm", NSCIIRSM},
		{"ram", NSCIIRAM},
	}
)

// UBLNamespaces returns the bindings for an invoice or credit note root
func UBLNamespaces(creditNote bool) Namespaces {
	root := NSUBLInvoice
	if creditNote {
		root = NSUBLCreditNote
	}
	return Namespaces{
		{"", root},
		{"cac", NSUBLCAC},
		{"cbc", NSUBLCBC},
	}
}
