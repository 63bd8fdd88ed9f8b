package envschema

import (
	"github.com/theory-cloud/reactstarter/pkg/logger"
	"github.com/theory-cloud/reactstarter/pkg/observability"
	"github.com/theory-cloud/reactstarter/pkg/sanitization"
)

type Option func(*parseOptions)

type parseOptions struct {
	log observability.StructuredLogger
}

// WithLogger overrides the process logger used for diagnostics about the attempt.
func WithLogger(l observability.StructuredLogger) Option {
	return func(opts *parseOptions) {
		opts.log = l
	}
}

// Parse validates raw against schema.
//
// A key missing from raw is absent; any string value, including "", is present.
// Every field is checked and all issues are reported together. On failure the
// returned error is a *ValidationError and the Values are empty.
func Parse(schema *Schema, raw map[string]string, options ...Option) (Values, error) {
	opts := &parseOptions{log: nil}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	log := opts.log
	if log == nil {
		log = logger.Logger()
	}

	fields := schema.Fields()
	values := make(map[string]any, len(fields))
	var issues []Issue

	for _, f := range fields {
		rawValue, present := raw[f.Key]
		if !present {
			switch {
			case f.HasDefault:
				rawValue = f.Default
			case f.Required:
				issues = append(issues, Issue{Key: f.Key, Code: CodeMissingRequired, Message: "required"})
				continue
			default:
				continue
			}
		}

		coerced, msg, ok := coerce(f, rawValue)
		if !ok {
			issues = append(issues, Issue{Key: f.Key, Code: CodeTypeCoercion, Message: msg})
			continue
		}
		values[f.Key] = coerced
	}

	scoped := log.WithField("schema", schema.Name())
	if len(issues) > 0 {
		scoped.Warn("configuration rejected", map[string]any{
			"issue_count": len(issues),
			"keys":        issueKeys(issues),
			"rejected":    sanitization.SanitizeEnvironment(rejectedValues(raw, issues)),
		})
		return Values{schema: schema.Name()}, &ValidationError{Schema: schema.Name(), Issues: issues}
	}

	scoped.Debug("configuration parsed", map[string]any{"field_count": len(values)})
	return Values{schema: schema.Name(), values: values}, nil
}

func issueKeys(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Key
	}
	return out
}

// rejectedValues picks the raw values that failed coercion; missing keys have none.
func rejectedValues(raw map[string]string, issues []Issue) map[string]string {
	out := make(map[string]string)
	for _, issue := range issues {
		if v, ok := raw[issue.Key]; ok && issue.Code == CodeTypeCoercion {
			out[issue.Key] = v
		}
	}
	return out
}
