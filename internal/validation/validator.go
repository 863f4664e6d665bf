package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rezonia/zugferd/internal/logger"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
)

// Mode selects how many violations a run reports
type Mode int

const (
	// Strict stops at the first violation
	Strict Mode = iota
	// Collect runs every rule and reports all violations
	Collect
)

// Validator checks an invoice against the business rules of one schema
// version before it is encoded
type Validator struct {
	table *profile.Table
	rules []rule
	mode  Mode
	log   zerolog.Logger
	vd    *validator.Validate
}

// Option configures a Validator
type Option func(*Validator)

// WithMode sets strict or collect mode
func WithMode(m Mode) Option {
	return func(v *Validator) { v.mode = m }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) { v.log = l }
}

// New creates the validator for a version and dialect
func New(version profile.Version, family profile.Family, opts ...Option) (*Validator, error) {
	table := profile.For(version, family)
	if table == nil {
		return nil, model.NewUnsupportedConfigurationError(version.String(), family.String(), "no such schema version")
	}

	v := &Validator{
		table: table,
		rules: rulesFor(version),
		mode:  Strict,
		log:   logger.WithComponent("validator"),
		vd:    validator.New(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate returns nil, a *model.UnsupportedConfigurationError, a single
// *model.BusinessRuleViolation (Strict) or a *model.ViolationList (Collect)
func (v *Validator) Validate(inv *model.Invoice, p profile.Profile) error {
	if !v.table.Supports(p) {
		return model.NewUnsupportedConfigurationError(
			v.table.Version.String(), p.String(),
			fmt.Sprintf("%s %s does not support this profile", v.table.Family, v.table.Version))
	}
	if inv == nil {
		return model.NewBusinessRuleViolation("BR-00", "", "invoice is nil")
	}

	var found []*model.BusinessRuleViolation
	report := func(viol ...*model.BusinessRuleViolation) bool {
		found = append(found, viol...)
		return v.mode == Strict && len(found) > 0
	}

	for _, field := range v.table.MandatoryFields(p) {
		present, ok := presence[field]
		if !ok || present(inv) {
			continue
		}
		req, _ := v.table.Mandatory(field, p)
		if report(model.NewBusinessRuleViolation(req.RuleID, string(field), req.Message)) {
			return v.result(found, p)
		}
	}

	for _, r := range v.rules {
		if !profile.Permits(r.profiles, p) {
			continue
		}
		if report(r.check(v, inv)...) {
			return v.result(found, p)
		}
	}
	return v.result(found, p)
}

func (v *Validator) result(found []*model.BusinessRuleViolation, p profile.Profile) error {
	if len(found) == 0 {
		return nil
	}
	v.log.Debug().
		Str("version", v.table.Version.String()).
		Str("profile", p.String()).
		Int("violations", len(found)).
		Msg("validation failed")
	if v.mode == Strict {
		return found[0]
	}
	return &model.ViolationList{Violations: found}
}
