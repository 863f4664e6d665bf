package server

import (
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
)

// IdentifyResponse is the response for the identify endpoint
type IdentifyResponse struct {
	Family  profile.Family  `json:"family"`
	Version profile.Version `json:"version"`
	Profile profile.Profile `json:"profile"`
}

// InspectResponse is the response for the inspect endpoint
type InspectResponse struct {
	IdentifyResponse
	Invoice *model.Invoice `json:"invoice"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid      bool                           `json:"valid"`
	Version    profile.Version                `json:"version"`
	Family     profile.Family                 `json:"family"`
	Profile    profile.Profile                `json:"profile"`
	Violations []*model.BusinessRuleViolation `json:"violations,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
