package codec

import (
	"io"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// Dispatcher holds the registered decoders and picks the one that
// recognizes a document
type Dispatcher struct {
	decoders []Decoder
	log      zerolog.Logger
}

// NewDispatcher creates a dispatcher with every built-in decoder.
// Order matters: the 2.0 decoder comes before the shared CII decoder so
// 2.0 identifiers report version 2.0.
func NewDispatcher(opts ...Option) *Dispatcher {
	o := applyOptions("dispatcher", opts)
	return &Dispatcher{
		decoders: []Decoder{
			NewV1Decoder(opts...),  // rsm:CrossIndustryDocument
			NewV20Decoder(opts...), // 2.0 guideline identifiers
			NewUBLDecoder(opts...), // Invoice / CreditNote
			NewCIIDecoder(opts...), // 2.1, 2.2, 2.3 and XRechnung CII, last
		},
		log: o.log,
	}
}

// Detect returns the first decoder recognizing the document. Every probe
// starts at the stream position Detect was called with, and the stream is
// left there.
func (d *Dispatcher) Detect(rs io.ReadSeeker) (Decoder, error) {
	if rs == nil {
		return nil, model.NewStreamAccessError("identify", "stream is nil", nil)
	}
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, model.NewStreamAccessError("identify", "stream is not seekable", err)
	}
	rewind := func() error {
		if _, err := rs.Seek(start, io.SeekStart); err != nil {
			return model.NewStreamAccessError("identify", "cannot restore stream position", err)
		}
		return nil
	}

	for _, dec := range d.decoders {
		if err := rewind(); err != nil {
			return nil, err
		}
		if dec.Recognizes(rs) {
			if err := rewind(); err != nil {
				return nil, err
			}
			d.log.Debug().
				Str("version", dec.Version().String()).
				Str("family", dec.Family().String()).
				Msg("document recognized")
			return dec, nil
		}
	}
	if err := rewind(); err != nil {
		return nil, err
	}
	source := "stream"
	if doc, err := xmlio.ReadDocument(rs); err == nil {
		source = rootName(doc.Root())
	}
	if err := rewind(); err != nil {
		return nil, err
	}
	return nil, model.NewFormatRecognitionError(source, "no decoder recognizes the document")
}

// rootName renders the root element as {namespace}local
func rootName(root *etree.Element) string {
	if ns := root.NamespaceURI(); ns != "" {
		return "{" + ns + "}" + root.Tag
	}
	return root.Tag
}

// Identify reports the dialect and schema version of a document
func (d *Dispatcher) Identify(rs io.ReadSeeker) (profile.Family, profile.Version, error) {
	dec, err := d.Detect(rs)
	if err != nil {
		return profile.FamilyUnknown, profile.VersionUnknown, err
	}
	return dec.Family(), dec.Version(), nil
}

// Result is a decoded document together with what it was recognized as
type Result struct {
	Invoice *model.Invoice
	Profile profile.Profile
	Version profile.Version
	Family  profile.Family
}

// Load identifies the document and decodes it with the matching decoder
func (d *Dispatcher) Load(rs io.ReadSeeker) (*Result, error) {
	dec, err := d.Detect(rs)
	if err != nil {
		return nil, err
	}
	inv, p, err := dec.Load(rs)
	if err != nil {
		return nil, err
	}
	return &Result{Invoice: inv, Profile: p, Version: dec.Version(), Family: dec.Family()}, nil
}

// RegisterDecoder replaces the decoder for the version and dialect of dec
// and keeps its place in the probe order. A decoder for a pair without a
// built-in one is probed first.
func (d *Dispatcher) RegisterDecoder(dec Decoder) {
	for i, existing := range d.decoders {
		if existing.Version() == dec.Version() && existing.Family() == dec.Family() {
			d.decoders[i] = dec
			return
		}
	}
	d.decoders = append([]Decoder{dec}, d.decoders...)
}

// Decoder returns the registered decoder for a version and dialect
func (d *Dispatcher) Decoder(v profile.Version, f profile.Family) Decoder {
	for _, dec := range d.decoders {
		if dec.Version() == v && dec.Family() == f {
			return dec
		}
	}
	return nil
}
