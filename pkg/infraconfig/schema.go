package infraconfig

import "github.com/theory-cloud/reactstarter/pkg/envschema"

const (
	KeyAppName            = "APP_NAME"
	KeyEnv                = "ENV"
	KeyAccount            = "ACCOUNT"
	KeyRegion             = "REGION"
	KeyOU                 = "OU"
	KeyOwner              = "OWNER"
	KeyAssetPath          = "ASSET_PATH"
	KeyDomainName         = "DOMAIN_NAME"
	KeyCertificateARN     = "CERTIFICATE_ARN"
	KeyHostedZoneID       = "HOSTED_ZONE_ID"
	KeyHostedZoneName     = "HOSTED_ZONE_NAME"
	KeyStorybookAssetPath = "STORYBOOK_ASSET_PATH"

	storybookPrefix = "STORYBOOK_"
)

const (
	DefaultAppName            = "react-starter"
	DefaultOU                 = "unknown"
	DefaultOwner              = "unknown"
	DefaultAssetPath          = "../dist"
	DefaultStorybookAssetPath = "../storybook-static"
)

// Env is a deployment environment code.
type Env string

const (
	EnvDev Env = "dev"
	EnvQA  Env = "qa"
	EnvPrd Env = "prd"
)

// Envs lists the accepted environment codes in declaration order.
func Envs() []Env {
	return []Env{EnvDev, EnvQA, EnvPrd}
}

func envStrings() []string {
	envs := Envs()
	out := make([]string, len(envs))
	for i, e := range envs {
		out[i] = string(e)
	}
	return out
}

// Schema is the infrastructure key namespace.
var Schema = envschema.MustNew("infra",
	envschema.String(KeyAppName).WithDefault(DefaultAppName),
	envschema.Enum(KeyEnv, envStrings()...),
	envschema.String(KeyAccount).Optional(),
	envschema.String(KeyRegion).Optional(),
	envschema.String(KeyOU).WithDefault(DefaultOU),
	envschema.String(KeyOwner).WithDefault(DefaultOwner),
	envschema.String(KeyAssetPath).WithDefault(DefaultAssetPath),
	envschema.String(KeyDomainName).Optional(),
	envschema.String(KeyCertificateARN).Optional(),
	envschema.String(KeyHostedZoneID).Optional(),
	envschema.String(KeyHostedZoneName).Optional(),
	envschema.String(KeyStorybookAssetPath).WithDefault(DefaultStorybookAssetPath),
	envschema.String(storybookPrefix+KeyDomainName).Optional(),
	envschema.String(storybookPrefix+KeyCertificateARN).Optional(),
	envschema.String(storybookPrefix+KeyHostedZoneID).Optional(),
	envschema.String(storybookPrefix+KeyHostedZoneName).Optional(),
)
