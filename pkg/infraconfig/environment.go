package infraconfig

import (
	"os"
	"strings"
)

const (
	EnvCDKDefaultAccount = "CDK_DEFAULT_ACCOUNT"
	EnvCDKDefaultRegion  = "CDK_DEFAULT_REGION"
)

// PlatformDefaults are the ambient account/region supplied by deployment tooling.
type PlatformDefaults struct {
	Account string
	Region  string
}

// PlatformDefaultsFromEnv reads the values the CDK CLI exports to the app process.
func PlatformDefaultsFromEnv() PlatformDefaults {
	return PlatformDefaults{
		Account: strings.TrimSpace(os.Getenv(EnvCDKDefaultAccount)),
		Region:  strings.TrimSpace(os.Getenv(EnvCDKDefaultRegion)),
	}
}

// Merge fills empty fields of d from fallback.
func (d PlatformDefaults) Merge(fallback PlatformDefaults) PlatformDefaults {
	return PlatformDefaults{
		Account: firstNonEmpty(d.Account, fallback.Account),
		Region:  firstNonEmpty(d.Region, fallback.Region),
	}
}

// ResolvedEnvironment is a fully qualified deployment target.
type ResolvedEnvironment struct {
	Account string `json:"account" yaml:"account"`
	Region  string `json:"region" yaml:"region"`
}

// ResolveEnvironment picks the explicit config value over the platform default for
// each of account and region. It reports false unless both end up non-empty; a half
// target is treated as unspecified.
func ResolveEnvironment(cfg Config, defaults PlatformDefaults) (ResolvedEnvironment, bool) {
	account := firstNonEmpty(cfg.Account, defaults.Account)
	region := firstNonEmpty(cfg.Region, defaults.Region)
	if account == "" || region == "" {
		return ResolvedEnvironment{}, false
	}
	return ResolvedEnvironment{Account: account, Region: region}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
