package main

import (
	"os/exec"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theory-cloud/reactstarter/pkg/infraconfig"
)

func TestStackEnvironment(t *testing.T) {
	cfg := infraconfig.Config{Account: "111111111111"}

	env := stackEnvironment(cfg, infraconfig.PlatformDefaults{Account: "222222222222", Region: "us-west-2"})
	require.NotNil(t, env)
	assert.Equal(t, "111111111111", *env.Account)
	assert.Equal(t, "us-west-2", *env.Region)

	assert.Nil(t, stackEnvironment(cfg, infraconfig.PlatformDefaults{}))
}

func TestEnvOr(t *testing.T) {
	t.Setenv(envFileVar, "  ")
	assert.Equal(t, defaultEnvFile, envOr(envFileVar, defaultEnvFile))

	t.Setenv(envFileVar, "infra/.env.qa")
	assert.Equal(t, "infra/.env.qa", envOr(envFileVar, defaultEnvFile))
}

func TestBuildApp(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not available; skipping synth test")
	}

	cfg, err := infraconfig.Parse(map[string]string{
		"ENV":                  "qa",
		"ASSET_PATH":           "",
		"STORYBOOK_ASSET_PATH": "",
	})
	require.NoError(t, err)

	app := awscdk.NewApp(nil)
	names := buildApp(app, cfg, infraconfig.PlatformDefaults{})
	assert.Equal(t, []string{"react-starter-ui-qa", "react-starter-storybook-qa"}, names)

	assembly := app.Synth(nil)
	assert.Len(t, *assembly.Stacks(), 2)
}
