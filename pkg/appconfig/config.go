// Package appconfig is the validated runtime configuration of the web application:
// API base URL, build metadata and UI timings.
//
// Parse is pure. Init is the one process-wide initialization point; call it from
// main and read the result with Current.
package appconfig

import (
	"strconv"
	"sync"
	"time"

	"github.com/theory-cloud/reactstarter/pkg/envschema"
)

type BuildInfo struct {
	Date               string `json:"date" yaml:"date"`
	Time               string `json:"time" yaml:"time"`
	Timestamp          string `json:"timestamp" yaml:"timestamp"`
	CommitSHA          string `json:"commitSha" yaml:"commitSha"`
	EnvCode            string `json:"envCode" yaml:"envCode"`
	WorkflowName       string `json:"workflowName" yaml:"workflowName"`
	WorkflowRunNumber  int    `json:"workflowRunNumber" yaml:"workflowRunNumber"`
	WorkflowRunAttempt int    `json:"workflowRunAttempt" yaml:"workflowRunAttempt"`
}

type Config struct {
	BaseURLAPI             string    `json:"baseUrlApi" yaml:"baseUrlApi"`
	ToastAutoDismissMillis int       `json:"toastAutoDismissMillis" yaml:"toastAutoDismissMillis"`
	Build                  BuildInfo `json:"build" yaml:"build"`
}

func (c Config) ToastAutoDismiss() time.Duration {
	return time.Duration(c.ToastAutoDismissMillis) * time.Millisecond
}

// PublicConfig is the subset served to the browser.
type PublicConfig struct {
	BaseURLAPI             string `json:"baseUrlApi"`
	ToastAutoDismissMillis int    `json:"toastAutoDismissMillis"`
	Version                string `json:"version"`
	BuildTimestamp         string `json:"buildTimestamp"`
	EnvCode                string `json:"envCode"`
}

func (c Config) Public() PublicConfig {
	return PublicConfig{
		BaseURLAPI:             c.BaseURLAPI,
		ToastAutoDismissMillis: c.ToastAutoDismissMillis,
		Version:                c.Version(),
		BuildTimestamp:         c.Build.Timestamp,
		EnvCode:                c.Build.EnvCode,
	}
}

// Version is a short human-readable build identifier: <run>.<attempt>+<sha7>.
func (c Config) Version() string {
	sha := c.Build.CommitSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	v := strconv.Itoa(c.Build.WorkflowRunNumber) + "." + strconv.Itoa(c.Build.WorkflowRunAttempt)
	if sha != "" {
		v += "+" + sha
	}
	return v
}

// Parse validates raw against Schema. A failure is always a *envschema.ValidationError.
func Parse(raw map[string]string, opts ...envschema.Option) (Config, error) {
	v, err := envschema.Parse(Schema, raw, opts...)
	if err != nil {
		return Config{}, err
	}
	return Config{
		BaseURLAPI:             v.StringOr(KeyBaseURLAPI, ""),
		ToastAutoDismissMillis: v.IntOr(KeyToastAutoDismissMillis, DefaultToastAutoDismissMillis),
		Build: BuildInfo{
			Date:               v.StringOr(KeyBuildDate, ""),
			Time:               v.StringOr(KeyBuildTime, ""),
			Timestamp:          v.StringOr(KeyBuildTimestamp, ""),
			CommitSHA:          v.StringOr(KeyBuildCommitSHA, ""),
			EnvCode:            v.StringOr(KeyBuildEnvCode, ""),
			WorkflowName:       v.StringOr(KeyBuildWorkflowName, ""),
			WorkflowRunNumber:  v.IntOr(KeyBuildWorkflowRunNumber, 0),
			WorkflowRunAttempt: v.IntOr(KeyBuildWorkflowAttempt, 0),
		},
	}, nil
}

var (
	currentMu sync.RWMutex
	current   *Config
)

// Init parses raw and installs the result as the process configuration. On failure
// the previously installed configuration, if any, is left untouched.
func Init(raw map[string]string, opts ...envschema.Option) (Config, error) {
	cfg, err := Parse(raw, opts...)
	if err != nil {
		return Config{}, err
	}
	currentMu.Lock()
	defer currentMu.Unlock()
	current = &cfg
	return cfg, nil
}

// Current returns the configuration installed by Init.
func Current() (Config, bool) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if current == nil {
		return Config{}, false
	}
	return *current, true
}

// Reset clears the installed configuration.
func Reset() {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = nil
}
