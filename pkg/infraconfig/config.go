// Package infraconfig is the validated configuration for the CDK application: the
// infrastructure schema, the typed Config, the resource tag set and the target
// account/region resolution.
package infraconfig

import (
	"fmt"

	"github.com/theory-cloud/reactstarter/pkg/envschema"
)

// Config is the validated infrastructure configuration. Optional values that were not
// supplied are empty strings.
type Config struct {
	AppName string `json:"appName" yaml:"appName"`
	Env     Env    `json:"env" yaml:"env"`
	Account string `json:"account,omitempty" yaml:"account,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	OU      string `json:"ou" yaml:"ou"`
	Owner   string `json:"owner" yaml:"owner"`

	AssetPath string       `json:"assetPath" yaml:"assetPath"`
	Domain    DomainConfig `json:"domain" yaml:"domain"`

	StorybookAssetPath string       `json:"storybookAssetPath" yaml:"storybookAssetPath"`
	StorybookDomain    DomainConfig `json:"storybookDomain" yaml:"storybookDomain"`
}

// LoadOptions control where Load reads raw values from.
type LoadOptions struct {
	// DotenvPath is read first; the process environment overrides it. Empty skips it.
	DotenvPath string
	Parse      []envschema.Option
}

// Parse validates raw against Schema. A failure is always a *envschema.ValidationError.
func Parse(raw map[string]string, opts ...envschema.Option) (Config, error) {
	values, err := envschema.Parse(Schema, raw, opts...)
	if err != nil {
		return Config{}, err
	}
	return fromValues(values), nil
}

// Load layers the optional dotenv file under the process environment and parses the
// result.
func Load(opts LoadOptions) (Config, error) {
	fileEnv, err := envschema.ReadDotenv(opts.DotenvPath)
	if err != nil {
		return Config{}, fmt.Errorf("infraconfig: %w", err)
	}
	return Parse(envschema.Layer(fileEnv, envschema.Environ()), opts.Parse...)
}

func fromValues(v envschema.Values) Config {
	return Config{
		AppName: v.StringOr(KeyAppName, DefaultAppName),
		Env:     Env(v.StringOr(KeyEnv, "")),
		Account: v.StringOr(KeyAccount, ""),
		Region:  v.StringOr(KeyRegion, ""),
		OU:      v.StringOr(KeyOU, DefaultOU),
		Owner:   v.StringOr(KeyOwner, DefaultOwner),

		AssetPath: v.StringOr(KeyAssetPath, DefaultAssetPath),
		Domain:    domainFromValues(v, ""),

		StorybookAssetPath: v.StringOr(KeyStorybookAssetPath, DefaultStorybookAssetPath),
		StorybookDomain:    domainFromValues(v, storybookPrefix),
	}
}
