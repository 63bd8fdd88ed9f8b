package envschema

import (
	"errors"
	"strings"
)

// ErrorPrefix starts every ConfigurationInvalid message. Integrations match on it.
const ErrorPrefix = "configuration validation failed: "

// IssueCode is a stable, client-safe code for a single field problem.
type IssueCode string

const (
	CodeMissingRequired IssueCode = "config.missing_required"
	CodeTypeCoercion    IssueCode = "config.type_coercion"
)

// ErrConfigurationInvalid matches any *ValidationError via errors.Is.
var ErrConfigurationInvalid = errors.New("config.invalid")

// Issue is one violated constraint.
type Issue struct {
	Key     string    `json:"key" yaml:"key"`
	Code    IssueCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	return i.Key + ": " + i.Message
}

// ValidationError aggregates every issue found by a single Parse call.
type ValidationError struct {
	Schema string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return ErrorPrefix + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrConfigurationInvalid
}

// Keys lists the offending keys in schema order, one per issue.
func (e *ValidationError) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Key
	}
	return out
}

// AsValidationError unwraps err to a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}
