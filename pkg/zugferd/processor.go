package zugferd

import (
	"context"
	"io"

	"github.com/rezonia/zugferd/internal/codec"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/validation"
)

// Document is a decoded invoice together with what it was recognized as
type Document struct {
	Invoice *Invoice
	Family  Family
	Version Version
	Profile Profile
}

// Target names the version, dialect and profile of a conversion. Zero
// fields are taken from the source document.
type Target = processor.Target

// Input is one named document of a batch
type Input = processor.Input

// Result is the outcome of converting one document of a batch
type Result = processor.Result

// Load identifies and decodes a document. The stream is read from its
// current position and not closed.
func Load(r io.ReadSeeker) (*Document, error) {
	res, err := codec.NewDispatcher().Load(r)
	if err != nil {
		return nil, err
	}
	return &Document{Invoice: res.Invoice, Family: res.Family, Version: res.Version, Profile: res.Profile}, nil
}

// Identify reports dialect and version of a document and leaves the
// stream where it was
func Identify(r io.ReadSeeker) (Family, Version, error) {
	return codec.NewDispatcher().Identify(r)
}

// Save validates inv for the profile and writes it at the current
// position of ws, which is restored afterwards
func Save(inv *Invoice, v Version, f Family, p Profile, ws io.WriteSeeker) error {
	enc, err := codec.NewEncoder(v, f)
	if err != nil {
		return err
	}
	return enc.Save(inv, p, ws)
}

// Validate checks inv against the business rules of a version, dialect
// and profile and returns the first violation
func Validate(inv *Invoice, v Version, f Family, p Profile) error {
	vd, err := validation.New(v, f)
	if err != nil {
		return err
	}
	return vd.Validate(inv, p)
}

// ValidateAll is Validate reporting every violation. The returned
// error is a *ViolationList when rules are broken.
func ValidateAll(inv *Invoice, v Version, f Family, p Profile) error {
	vd, err := validation.New(v, f, validation.WithMode(validation.Collect))
	if err != nil {
		return err
	}
	return vd.Validate(inv, p)
}

// Converter converts documents between versions, dialects and profiles
type Converter struct {
	pipeline *processor.Pipeline
}

// ConverterOptions configures a Converter
type ConverterOptions struct {
	// Workers bounds concurrent conversions in ConvertBatch (default: 4)
	Workers int
	// CollectViolations reports every broken rule instead of the first
	CollectViolations bool
}

// DefaultConverterOptions returns the default converter options
func DefaultConverterOptions() ConverterOptions {
	return ConverterOptions{Workers: 4}
}

// NewConverter creates a converter with the given options
func NewConverter(opts ConverterOptions) *Converter {
	mode := validation.Strict
	if opts.CollectViolations {
		mode = validation.Collect
	}
	return &Converter{
		pipeline: processor.NewPipeline(
			processor.WithWorkers(opts.Workers),
			processor.WithValidationMode(mode),
		),
	}
}

// NewDefaultConverter creates a converter with default options
func NewDefaultConverter() *Converter {
	return NewConverter(DefaultConverterOptions())
}

// Convert reads a document and returns it encoded for t
func (c *Converter) Convert(r io.Reader, t Target) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewStreamAccessError("read", "failed to read input", err)
	}
	res := c.pipeline.Convert(data, t)
	if res.Error != nil {
		return nil, res.Error
	}
	return res.Output, nil
}

// ConvertBatch converts inputs concurrently. Failures of single
// documents are in their Result; the error is set when ctx ends first.
func (c *Converter) ConvertBatch(ctx context.Context, inputs []Input, t Target) ([]*Result, error) {
	return c.pipeline.ConvertBatch(ctx, inputs, t)
}
