package appconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theory-cloud/reactstarter/pkg/envschema"
)

func validRaw() map[string]string {
	return map[string]string{
		"BASE_URL_API":               "https://api.example.com",
		"BUILD_DATE":                 "2024-05-01",
		"BUILD_TIME":                 "12:30:00",
		"BUILD_TS":                   "2024-05-01T12:30:00Z",
		"BUILD_COMMIT_SHA":           "0123456789abcdef",
		"BUILD_ENV_CODE":             "dev",
		"BUILD_WORKFLOW_NAME":        "ci",
		"BUILD_WORKFLOW_RUN_NUMBER":  "42",
		"BUILD_WORKFLOW_RUN_ATTEMPT": "1",
	}
}

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse(validRaw())
	require.NoError(t, err)

	assert.Equal(t, Config{
		BaseURLAPI:             "https://api.example.com",
		ToastAutoDismissMillis: 5000,
		Build: BuildInfo{
			Date:               "2024-05-01",
			Time:               "12:30:00",
			Timestamp:          "2024-05-01T12:30:00Z",
			CommitSHA:          "0123456789abcdef",
			EnvCode:            "dev",
			WorkflowName:       "ci",
			WorkflowRunNumber:  42,
			WorkflowRunAttempt: 1,
		},
	}, cfg)
	assert.Equal(t, 5*time.Second, cfg.ToastAutoDismiss())
	assert.Equal(t, "42.1+0123456", cfg.Version())
}

func TestParse_ToastOverrideAcceptsZero(t *testing.T) {
	raw := validRaw()
	raw["TOAST_AUTO_DISMISS_MILLIS"] = "0"

	cfg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ToastAutoDismissMillis)
	assert.Equal(t, time.Duration(0), cfg.ToastAutoDismiss())
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	raw := validRaw()
	delete(raw, "BASE_URL_API")
	raw["BUILD_DATE"] = "05/01/2024"
	raw["BUILD_TS"] = "2024-05-01T12:30:00+02:00"
	raw["BUILD_WORKFLOW_RUN_NUMBER"] = "-1"
	raw["TOAST_AUTO_DISMISS_MILLIS"] = "soon"

	_, err := Parse(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, envschema.ErrConfigurationInvalid))

	verr, ok := envschema.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "app", verr.Schema)
	assert.Equal(t, []string{
		"BASE_URL_API", "BUILD_DATE", "BUILD_TS", "BUILD_WORKFLOW_RUN_NUMBER", "TOAST_AUTO_DISMISS_MILLIS",
	}, verr.Keys())
	assert.Contains(t, err.Error(), "configuration validation failed: BASE_URL_API: required; BUILD_DATE: ")
}

func TestPublic(t *testing.T) {
	cfg, err := Parse(validRaw())
	require.NoError(t, err)

	assert.Equal(t, PublicConfig{
		BaseURLAPI:             "https://api.example.com",
		ToastAutoDismissMillis: 5000,
		Version:                "42.1+0123456",
		BuildTimestamp:         "2024-05-01T12:30:00Z",
		EnvCode:                "dev",
	}, cfg.Public())
}

func TestVersion_ShortSHA(t *testing.T) {
	cfg := Config{Build: BuildInfo{WorkflowRunNumber: 3, WorkflowRunAttempt: 2, CommitSHA: "abc"}}
	assert.Equal(t, "3.2+abc", cfg.Version())

	cfg.Build.CommitSHA = ""
	assert.Equal(t, "3.2", cfg.Version())
}

func TestInit_InstallsOnlyOnSuccess(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	_, ok := Current()
	assert.False(t, ok, "nothing is installed before Init")

	cfg, err := Init(validRaw())
	require.NoError(t, err)

	got, ok := Current()
	require.True(t, ok)
	assert.Equal(t, cfg, got)

	_, err = Init(map[string]string{})
	require.Error(t, err)

	got, ok = Current()
	require.True(t, ok)
	assert.Equal(t, cfg, got, "failed Init keeps the previous config")

	Reset()
	_, ok = Current()
	assert.False(t, ok)
}
