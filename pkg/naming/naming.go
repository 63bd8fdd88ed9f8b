package naming

import (
	"regexp"
	"strings"
)

var (
	nonAlnum  = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

func sanitizePart(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "_", "-")
	value = strings.ReplaceAll(value, " ", "-")
	value = nonAlnum.ReplaceAllString(value, "-")
	value = multiDash.ReplaceAllString(value, "-")
	value = strings.Trim(value, "-")
	return value
}

// StackName returns <app>-<component>-<env>, e.g. react-starter-ui-dev.
func StackName(appName, component, env string) string {
	return join(sanitizePart(appName), sanitizePart(component), sanitizePart(env))
}

// ResourceName returns <app>-<component>-<resource>-<env>.
func ResourceName(appName, component, resource, env string) string {
	return join(sanitizePart(appName), sanitizePart(component), sanitizePart(resource), sanitizePart(env))
}

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "-")
}
