// Package processor runs whole documents through the codecs: identify,
// decode, validate against a target and re-encode. The CLI, the HTTP API
// and the public package all go through a Pipeline.
package processor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/zugferd/internal/codec"
	"github.com/rezonia/zugferd/internal/logger"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/validation"
	"github.com/rezonia/zugferd/internal/xmlio"
)

// Format is the container format of an input
type Format int

const (
	FormatUnknown Format = iota
	FormatXML
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// DetectFormat sniffs the container format from the content
func DetectFormat(data []byte) Format {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		switch {
		case mt.Is("text/xml"):
			return FormatXML
		case mt.Is("application/pdf"):
			return FormatPDF
		}
	}
	return FormatUnknown
}

// Target names the schema version, dialect and profile to produce or
// validate against. Zero fields are taken from the source document.
type Target struct {
	Version profile.Version `json:"version"`
	Family  profile.Family  `json:"family"`
	Profile profile.Profile `json:"profile"`
}

func (t Target) String() string {
	return fmt.Sprintf("%s %s %s", t.Family, t.Version, t.Profile)
}

// Result holds the outcome of one pipeline run. Source fields describe
// the input document as recognized.
type Result struct {
	Name    string          `json:"name,omitempty"`
	Invoice *model.Invoice  `json:"invoice,omitempty"`
	Family  profile.Family  `json:"family"`
	Version profile.Version `json:"version"`
	Profile profile.Profile `json:"profile"`
	Target  *Target         `json:"target,omitempty"`
	Output  []byte          `json:"-"`
	Error   error           `json:"-"`
}

// Input is one named document of a batch
type Input struct {
	Name string
	Data []byte
}

// Pipeline processes invoice documents
type Pipeline struct {
	dispatcher *codec.Dispatcher
	mode       validation.Mode
	workers    int
	log        zerolog.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithValidationMode selects strict or collect validation
func WithValidationMode(m validation.Mode) Option {
	return func(p *Pipeline) { p.mode = m }
}

// WithWorkers bounds the number of documents a batch converts at once
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		mode:    validation.Strict,
		workers: 4,
		log:     logger.WithComponent("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.dispatcher = codec.NewDispatcher(codec.WithLogger(p.log))
	return p
}

// Dispatcher exposes the dispatcher so callers can register decoders
func (p *Pipeline) Dispatcher() *codec.Dispatcher {
	return p.dispatcher
}

func container(data []byte) error {
	if len(data) == 0 {
		return model.NewFormatRecognitionError("input", "document is empty")
	}
	if DetectFormat(data) == FormatPDF {
		return model.NewFormatRecognitionError("application/pdf", "PDF containers are not read, extract the embedded XML first")
	}
	return nil
}

// Identify reports dialect, version and profile of a document. A
// recognized document that fails to decode still reports dialect and
// version; its profile stays unknown.
func (p *Pipeline) Identify(data []byte) *Result {
	res := &Result{}
	if res.Error = container(data); res.Error != nil {
		return res
	}
	rs := bytes.NewReader(data)
	dec, err := p.dispatcher.Detect(rs)
	if err != nil {
		res.Error = err
		return res
	}
	res.Family, res.Version = dec.Family(), dec.Version()
	if _, prof, err := dec.Load(rs); err == nil {
		res.Profile = prof
	} else {
		p.log.Debug().Err(err).Msg("recognized document does not decode")
	}
	return res
}

// Load decodes a document with whichever decoder recognizes it
func (p *Pipeline) Load(data []byte) *Result {
	res := &Result{}
	if res.Error = container(data); res.Error != nil {
		return res
	}
	loaded, err := p.dispatcher.Load(bytes.NewReader(data))
	if err != nil {
		res.Error = err
		return res
	}
	res.Invoice = loaded.Invoice
	res.Family, res.Version, res.Profile = loaded.Family, loaded.Version, loaded.Profile
	return res
}

// resolve fills the zero fields of t from the loaded document
func (res *Result) resolve(t Target) Target {
	if t.Version == profile.VersionUnknown {
		t.Version = res.Version
		if t.Family == profile.FamilyUnknown {
			t.Family = res.Family
		}
	}
	if t.Family == profile.FamilyUnknown {
		t.Family = profile.FamilyCII
	}
	if t.Profile == profile.Unknown {
		t.Profile = res.Profile
	}
	return t
}

// Validate decodes a document and checks it against the business rules
// of the target. Result.Error carries the violations.
func (p *Pipeline) Validate(data []byte, t Target) *Result {
	res := p.Load(data)
	if res.Error != nil {
		return res
	}
	target := res.resolve(t)
	res.Target = &target

	vd, err := validation.New(target.Version, target.Family, validation.WithMode(p.mode), validation.WithLogger(p.log))
	if err != nil {
		res.Error = err
		return res
	}
	res.Error = vd.Validate(res.Invoice, target.Profile)
	return res
}

// Convert decodes a document and encodes it for the target. The encoded
// document is in Result.Output.
func (p *Pipeline) Convert(data []byte, t Target) *Result {
	res := p.Load(data)
	if res.Error != nil {
		return res
	}
	target := res.resolve(t)
	res.Target = &target

	enc, err := codec.NewEncoder(target.Version, target.Family,
		codec.WithLogger(p.log), codec.WithValidationMode(p.mode))
	if err != nil {
		res.Error = err
		return res
	}
	var buf xmlio.Buffer
	if err := enc.Save(res.Invoice, target.Profile, &buf); err != nil {
		res.Error = err
		return res
	}
	res.Output = buf.Bytes()

	p.log.Debug().
		Str("invoice", res.Invoice.InvoiceNo).
		Str("from", fmt.Sprintf("%s %s %s", res.Family, res.Version, res.Profile)).
		Str("to", target.String()).
		Msg("document converted")
	return res
}

// ConvertBatch converts every input concurrently, at most the configured
// number of workers at a time. Per-document failures are reported in the
// results; the returned error is only set when ctx ends early.
func (p *Pipeline) ConvertBatch(ctx context.Context, inputs []Input, t Target) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := p.Convert(in.Data, t)
			res.Name = in.Name
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
