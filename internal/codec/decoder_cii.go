package codec

import (
	"io"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// CIIDecoder reads rsm:CrossIndustryInvoice documents. One reader serves
// 2.0, 2.1 and 2.3; the accepted guideline identifiers tell them apart.
type CIIDecoder struct {
	decoderBase
	reader *ciiReader
}

// NewV20Decoder creates the decoder for ZUGFeRD 2.0 identifiers
func NewV20Decoder(opts ...Option) *CIIDecoder {
	return newCIIDecoder(profile.Version20, "decoder-v20", opts)
}

// NewCIIDecoder creates the decoder for ZUGFeRD 2.1/2.2/2.3, Factur-X and
// XRechnung CII identifiers. Documents report version 2.3.
func NewCIIDecoder(opts ...Option) *CIIDecoder {
	return newCIIDecoder(profile.Version23, "decoder-cii", opts)
}

func newCIIDecoder(v profile.Version, component string, opts []Option) *CIIDecoder {
	o := applyOptions(component, opts)
	nav := xmlio.NewNavigator(xmlio.CIINamespaces)
	return &CIIDecoder{
		decoderBase: decoderBase{
			version:    v,
			family:     profile.FamilyCII,
			rootTags:   []string{"CrossIndustryInvoice"},
			rootURIs:   []string{xmlio.NSCIIRSM},
			guideline:  ciiLayout2.guidelinePath(),
			guidelines: profile.ReadGuidelines(v, profile.FamilyCII),
			nav:        nav,
			log:        o.log,
		},
		reader: &ciiReader{nav: nav},
	}
}

// Load implements Decoder
func (d *CIIDecoder) Load(r io.Reader) (*model.Invoice, profile.Profile, error) {
	root, p, err := d.open(r)
	if err != nil {
		return nil, profile.Unknown, err
	}
	inv := d.reader.invoice(root, ciiLayout2)
	if err := d.requireID(inv, ciiLayout2.header+"/ram:ID"); err != nil {
		return nil, profile.Unknown, err
	}
	return inv, p, nil
}
