package profile

// Guideline identifiers carried in
// ExchangedDocumentContext/GuidelineSpecifiedDocumentContextParameter/ID
// (CII) or cbc:CustomizationID (UBL).
const (
	GuidelineV1Basic    = "urn:ferd:CrossIndustryDocument:invoice:1p0:basic"
	GuidelineV1Comfort  = "urn:ferd:CrossIndustryDocument:invoice:1p0:comfort"
	GuidelineV1Extended = "urn:ferd:CrossIndustryDocument:invoice:1p0:extended"

	GuidelineV20Minimum    = "urn:zugferd.de:2p0:minimum"
	GuidelineV20BasicWL    = "urn:zugferd.de:2p0:basicwl"
	GuidelineV20Basic      = "urn:cen.eu:en16931:2017#compliant#urn:zugferd.de:2p0:basic"
	GuidelineV20Extended   = "urn:cen.eu:en16931:2017#conformant#urn:zugferd.de:2p0:extended"
	GuidelineV20XRechnung1 = "urn:cen.eu:en16931:2017:compliant:xoev-de:kosit:standard:xrechnung_1.2"

	GuidelineEN16931 = "urn:cen.eu:en16931:2017"

	GuidelineFacturXMinimum  = "urn:factur-x.eu:1p0:minimum"
	GuidelineFacturXBasicWL  = "urn:factur-x.eu:1p0:basicwl"
	GuidelineFacturXBasic    = "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic"
	GuidelineFacturXExtended = "urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended"
	GuidelineXRechnung1      = "urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_1.2"
	GuidelineXRechnung       = "urn:cen.eu:en16931:2017#compliant#urn:xeinkauf.de:kosit:xrechnung_3.0"

	// PeppolBIS is written as cbc:ProfileID by the UBL encoder
	PeppolBIS = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"
)

// Identifiers only accepted on read
var legacyXRechnung = []string{
	"urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_2.0",
	"urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_2.1",
	"urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_2.2",
	"urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_2.3",
	"urn:cen.eu:en16931:2017#compliant#urn:xeinkauf.de:kosit:xrechnung_2.3",
}

var writeGuidelines = map[Version]map[Profile]string{
	Version1: {
		Basic:    GuidelineV1Basic,
		Comfort:  GuidelineV1Comfort,
		Extended: GuidelineV1Extended,
	},
	Version20: {
		Minimum:    GuidelineV20Minimum,
		BasicWL:    GuidelineV20BasicWL,
		Basic:      GuidelineV20Basic,
		Comfort:    GuidelineEN16931,
		Extended:   GuidelineV20Extended,
		XRechnung1: GuidelineV20XRechnung1,
	},
	Version21: facturX,
	Version23: facturX,
}

var facturX = map[Profile]string{
	Minimum:    GuidelineFacturXMinimum,
	BasicWL:    GuidelineFacturXBasicWL,
	Basic:      GuidelineFacturXBasic,
	Comfort:    GuidelineEN16931,
	Extended:   GuidelineFacturXExtended,
	XRechnung1: GuidelineXRechnung1,
	XRechnung:  GuidelineXRechnung,
}

var ublGuidelines = map[Profile]string{
	Comfort:    GuidelineEN16931,
	XRechnung1: GuidelineXRechnung1,
	XRechnung:  GuidelineXRechnung,
}

// GuidelineID returns the identifier an encoder writes for the pair
func GuidelineID(v Version, f Family, p Profile) (string, bool) {
	if f == FamilyUBL {
		if v != Version23 {
			return "", false
		}
		id, ok := ublGuidelines[p]
		return id, ok
	}
	id, ok := writeGuidelines[v][p]
	return id, ok
}

// Guidelines is an exact-match lookup from identifier to profile
type Guidelines map[string]Profile

// Lookup resolves an identifier; matching is exact
func (g Guidelines) Lookup(id string) (Profile, bool) {
	p, ok := g[id]
	return p, ok
}

// ReadGuidelines returns the identifiers a decoder for the version and
// family accepts. The plain EN16931 identifier belongs to the 2.x tables.
func ReadGuidelines(v Version, f Family) Guidelines {
	g := make(Guidelines)
	switch {
	case f == FamilyUBL:
		for p, id := range ublGuidelines {
			g[id] = p
		}
		for _, id := range legacyXRechnung {
			g[id] = XRechnung
		}
	case v == Version1:
		for p, id := range writeGuidelines[Version1] {
			g[id] = p
		}
	case v == Version20:
		for p, id := range writeGuidelines[Version20] {
			if id != GuidelineEN16931 {
				g[id] = p
			}
		}
	default:
		for p, id := range facturX {
			g[id] = p
		}
		for _, id := range legacyXRechnung {
			g[id] = XRechnung
		}
	}
	return g
}
