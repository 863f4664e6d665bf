package codec

import (
	"io"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// V1Decoder reads ZUGFeRD 1.0 rsm:CrossIndustryDocument documents
type V1Decoder struct {
	decoderBase
	reader *ciiReader
}

// NewV1Decoder creates the ZUGFeRD 1.0 decoder
func NewV1Decoder(opts ...Option) *V1Decoder {
	o := applyOptions("decoder-v1", opts)
	nav := xmlio.NewNavigator(xmlio.V1Namespaces)
	return &V1Decoder{
		decoderBase: decoderBase{
			version:    profile.Version1,
			family:     profile.FamilyCII,
			rootTags:   []string{"CrossIndustryDocument"},
			rootURIs:   []string{xmlio.NSV1RSM},
			guideline:  v1Layout.guidelinePath(),
			guidelines: profile.ReadGuidelines(profile.Version1, profile.FamilyCII),
			nav:        nav,
			log:        o.log,
		},
		reader: &ciiReader{nav: nav, v1: true},
	}
}

// Load implements Decoder
func (d *V1Decoder) Load(r io.Reader) (*model.Invoice, profile.Profile, error) {
	root, p, err := d.open(r)
	if err != nil {
		return nil, profile.Unknown, err
	}
	inv := d.reader.invoice(root, v1Layout)
	if err := d.requireID(inv, v1Layout.header+"/ram:ID"); err != nil {
		return nil, profile.Unknown, err
	}
	return inv, p, nil
}
