package model

import (
	"fmt"
	"strings"
)

// StreamAccessError reports a stream that cannot be read, written or seeked
type StreamAccessError struct {
	Op      string
	Message string
	Cause   error
}

func (e *StreamAccessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stream %s: %s (%v)", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("stream %s: %s", e.Op, e.Message)
}

func (e *StreamAccessError) Unwrap() error {
	return e.Cause
}

// NewStreamAccessError creates a new stream access error
func NewStreamAccessError(op, message string, cause error) *StreamAccessError {
	return &StreamAccessError{
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// FormatRecognitionError is returned when no decoder recognizes a document
type FormatRecognitionError struct {
	Source  string
	Message string
}

func (e *FormatRecognitionError) Error() string {
	return fmt.Sprintf("unsupported format [%s]: %s", e.Source, e.Message)
}

// NewFormatRecognitionError creates a new format recognition error
func NewFormatRecognitionError(source, message string) *FormatRecognitionError {
	return &FormatRecognitionError{
		Source:  source,
		Message: message,
	}
}

// MalformedDocumentError represents parse failures and missing required elements
type MalformedDocumentError struct {
	Version string
	Field   string
	Message string
	Cause   error
}

func (e *MalformedDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Version, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Version, e.Field, e.Message)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// NewMalformedDocumentError creates a new malformed document error
func NewMalformedDocumentError(version, field, message string, cause error) *MalformedDocumentError {
	return &MalformedDocumentError{
		Version: version,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// BusinessRuleViolation is profile-illegal data identified by a stable rule id
type BusinessRuleViolation struct {
	RuleID  string `json:"rule" yaml:"rule"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (e *BusinessRuleViolation) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.RuleID, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.RuleID, e.Message)
}

// NewBusinessRuleViolation creates a new business rule violation
func NewBusinessRuleViolation(ruleID, field, message string) *BusinessRuleViolation {
	return &BusinessRuleViolation{
		RuleID:  ruleID,
		Field:   field,
		Message: message,
	}
}

// ViolationList collects every violation found in one validation run
type ViolationList struct {
	Violations []*BusinessRuleViolation
}

func (e *ViolationList) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return fmt.Sprintf("%d business rule violation(s): %s", len(e.Violations), strings.Join(msgs, "; "))
}

func (e *ViolationList) Unwrap() []error {
	errs := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		errs = append(errs, v)
	}
	return errs
}

// RuleIDs lists the violated rule ids in report order
func (e *ViolationList) RuleIDs() []string {
	ids := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		ids = append(ids, v.RuleID)
	}
	return ids
}

// UnsupportedConfigurationError is a version/profile pair an encoder cannot produce
type UnsupportedConfigurationError struct {
	Version string
	Profile string
	Message string
}

func (e *UnsupportedConfigurationError) Error() string {
	return fmt.Sprintf("unsupported configuration %s/%s: %s", e.Version, e.Profile, e.Message)
}

// NewUnsupportedConfigurationError creates a new unsupported configuration error
func NewUnsupportedConfigurationError(version, profile, message string) *UnsupportedConfigurationError {
	return &UnsupportedConfigurationError{
		Version: version,
		Profile: profile,
		Message: message,
	}
}

// ValidationError represents builder misuse
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
