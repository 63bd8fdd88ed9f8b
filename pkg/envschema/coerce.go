package envschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02T15:04:05Z"
)

// validate is safe for concurrent use; it only caches parsed tags.
var validate = validator.New()

var kindTags = map[Kind]string{
	KindDate:     "datetime=" + DateLayout,
	KindTime:     "datetime=" + TimeLayout,
	KindDateTime: "datetime=" + DateTimeLayout,
	KindURL:      "url",
}

var kindMessages = map[Kind]string{
	KindDate:     "expected a calendar date (YYYY-MM-DD)",
	KindTime:     "expected a time of day (HH:MM:SS)",
	KindDateTime: "expected a UTC timestamp (YYYY-MM-DDTHH:MM:SSZ)",
	KindURL:      "expected an absolute URL",
}

// coerce converts raw to the field's semantic type. Integers come back as int, every
// other kind as the (unchanged) string.
func coerce(f Field, raw string) (any, string, bool) {
	switch f.Kind {
	case KindString:
		return raw, "", true

	case KindEnum:
		for _, allowed := range f.Allowed {
			if raw == allowed {
				return raw, "", true
			}
		}
		return nil, fmt.Sprintf("invalid value %q, must be one of: %s", raw, strings.Join(f.Allowed, ", ")), false

	case KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
		if err != nil {
			return nil, fmt.Sprintf("invalid value %q, expected an integer", raw), false
		}
		if n < 0 {
			return nil, fmt.Sprintf("invalid value %q, must be greater than or equal to 0", raw), false
		}
		return int(n), "", true

	case KindDate, KindTime, KindDateTime, KindURL:
		if err := validate.Var(raw, kindTags[f.Kind]); err != nil {
			return nil, fmt.Sprintf("invalid value %q, %s", raw, kindMessages[f.Kind]), false
		}
		return raw, "", true

	default:
		return nil, fmt.Sprintf("unsupported kind %q", f.Kind), false
	}
}
