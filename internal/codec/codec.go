// Package codec converts between the canonical invoice model and the
// ZUGFeRD, Factur-X and XRechnung wire formats. Each schema version and
// dialect has its own Encoder and Decoder; the Dispatcher picks the decoder
// for an unidentified document.
package codec

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rezonia/zugferd/internal/logger"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/validation"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// Encoder writes an invoice in one schema version and dialect
type Encoder interface {
	// Save validates inv for profile p and writes the document at the
	// current position of ws. The stream is flushed when possible and
	// seeked back to where writing started; it is never closed.
	Save(inv *model.Invoice, p profile.Profile, ws io.WriteSeeker) error

	Version() profile.Version
	Family() profile.Family
}

// Decoder reads documents of one schema version and dialect
type Decoder interface {
	// Recognizes reports whether r holds a document of this version. It
	// reads from r without rewinding it.
	Recognizes(r io.Reader) bool

	// Load parses r into a new invoice and returns the profile named by
	// the document's guideline identifier. The reader is not closed.
	Load(r io.Reader) (*model.Invoice, profile.Profile, error)

	Version() profile.Version
	Family() profile.Family
}

type options struct {
	log  zerolog.Logger
	mode validation.Mode
}

// Option configures encoders, decoders and the dispatcher
type Option func(*options)

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithValidationMode selects strict or collect validation before encoding
func WithValidationMode(m validation.Mode) Option {
	return func(o *options) { o.mode = m }
}

func applyOptions(component string, opts []Option) options {
	o := options{
		log:  logger.WithComponent(component),
		mode: validation.Strict,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewEncoder returns the encoder for a version and dialect
func NewEncoder(v profile.Version, f profile.Family, opts ...Option) (Encoder, error) {
	if f == profile.FamilyUBL {
		if v != profile.Version23 {
			return nil, model.NewUnsupportedConfigurationError(v.String(), "", "UBL is only written for version 2.3")
		}
		return NewUBLEncoder(opts...), nil
	}
	switch v {
	case profile.Version1:
		return NewV1Encoder(opts...), nil
	case profile.Version20:
		return NewV20Encoder(opts...), nil
	case profile.Version21:
		return NewV21Encoder(opts...), nil
	case profile.Version23:
		return NewV23Encoder(opts...), nil
	}
	return nil, model.NewUnsupportedConfigurationError(v.String(), "", fmt.Sprintf("no %s encoder for this version", f))
}

// NewDecoder returns the decoder for a version and dialect. Versions 2.1
// and 2.3 share one CII decoder.
func NewDecoder(v profile.Version, f profile.Family, opts ...Option) (Decoder, error) {
	if f == profile.FamilyUBL {
		if v != profile.Version23 {
			return nil, model.NewUnsupportedConfigurationError(v.String(), "", "UBL is only read for version 2.3")
		}
		return NewUBLDecoder(opts...), nil
	}
	switch v {
	case profile.Version1:
		return NewV1Decoder(opts...), nil
	case profile.Version20:
		return NewV20Decoder(opts...), nil
	case profile.Version21, profile.Version23:
		return NewCIIDecoder(opts...), nil
	}
	return nil, model.NewUnsupportedConfigurationError(v.String(), "", fmt.Sprintf("no %s decoder for this version", f))
}

// encoderBase carries what every encoder needs: its capability table, the
// validator for the same version and a logger
type encoderBase struct {
	version   profile.Version
	family    profile.Family
	table     *profile.Table
	validator *validation.Validator
	log       zerolog.Logger
}

func newEncoderBase(v profile.Version, f profile.Family, component string, opts []Option) encoderBase {
	o := applyOptions(component, opts)
	vd, err := validation.New(v, f, validation.WithMode(o.mode), validation.WithLogger(o.log))
	if err != nil {
		// every encoder is built for a pair that has a table
		panic(err)
	}
	return encoderBase{
		version:   v,
		family:    f,
		table:     profile.For(v, f),
		validator: vd,
		log:       o.log,
	}
}

func (b *encoderBase) Version() profile.Version { return b.version }
func (b *encoderBase) Family() profile.Family   { return b.family }

// save validates, builds the whole document in memory and only then
// touches the stream
func (b *encoderBase) save(inv *model.Invoice, p profile.Profile, ws io.WriteSeeker, build func(w *xmlio.Writer, guideline string)) error {
	if ws == nil {
		return model.NewStreamAccessError("write", "stream is nil", nil)
	}
	if err := b.validator.Validate(inv, p); err != nil {
		return err
	}
	guideline, ok := profile.GuidelineID(b.version, b.family, p)
	if !ok {
		return model.NewUnsupportedConfigurationError(b.version.String(), p.String(), "no guideline identifier for this profile")
	}

	w := xmlio.NewWriter(b.table, p, b.log)
	build(w, guideline)
	data, err := w.Bytes()
	if err != nil {
		return fmt.Errorf("serialize %s %s document: %w", b.family, b.version, err)
	}
	if err := xmlio.WriteRestoring(ws, data); err != nil {
		return err
	}

	b.log.Debug().
		Str("invoice_no", inv.InvoiceNo).
		Str("version", b.version.String()).
		Str("family", b.family.String()).
		Str("profile", p.String()).
		Int("bytes", len(data)).
		Msg("invoice written")
	return nil
}
