package infraconfig

import "sort"

const (
	TagApp   = "App"
	TagEnv   = "Env"
	TagOU    = "OU"
	TagOwner = "Owner"
)

// TagSet maps the four fixed tag names to values.
type TagSet map[string]string

// Tags projects the tagging fields of cfg verbatim.
func Tags(cfg Config) TagSet {
	return TagSet{
		TagApp:   cfg.AppName,
		TagEnv:   string(cfg.Env),
		TagOU:    cfg.OU,
		TagOwner: cfg.Owner,
	}
}

// Keys returns the tag names in lexical order, for deterministic application.
func (t TagSet) Keys() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
