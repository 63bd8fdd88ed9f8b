// Command infra is the CDK app for the static web UI and its Storybook catalogue.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/theory-cloud/reactstarter/pkg/infraconfig"
	"github.com/theory-cloud/reactstarter/pkg/logger"
	"github.com/theory-cloud/reactstarter/pkg/observability"
	obszap "github.com/theory-cloud/reactstarter/pkg/observability/zap"
	"github.com/theory-cloud/reactstarter/pkg/stacks"
)

const (
	envFileVar     = "INFRA_ENV_FILE"
	defaultEnvFile = ".env"
	logLevelVar    = "LOG_LEVEL"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer jsii.Close()

	log, err := obszap.NewZapLogger(observability.LoggerConfig{
		Format: "console",
		Level:  envOr(logLevelVar, "info"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "infra: FAIL: logger: %v\n", err)
		return 2
	}
	logger.SetLogger(log)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = log.Flush(ctx)
		_ = log.Close()
	}()

	cfg, err := infraconfig.Load(infraconfig.LoadOptions{DotenvPath: envOr(envFileVar, defaultEnvFile)})
	if err != nil {
		log.Error("infrastructure configuration invalid", map[string]any{"error": err.Error()})
		fmt.Fprintf(os.Stderr, "infra: FAIL: %v\n", err)
		return 1
	}

	app := awscdk.NewApp(nil)
	names := buildApp(app, cfg, infraconfig.PlatformDefaultsFromEnv())
	log.Info("synthesizing stacks", map[string]any{
		"app":    cfg.AppName,
		"env":    string(cfg.Env),
		"stacks": names,
	})
	app.Synth(nil)
	return 0
}

// buildApp tags the app and adds one static site stack per deployable. It returns
// the stack names in creation order.
func buildApp(app awscdk.App, cfg infraconfig.Config, defaults infraconfig.PlatformDefaults) []string {
	tags := infraconfig.Tags(cfg)
	for _, key := range tags.Keys() {
		awscdk.Tags_Of(app).Add(jsii.String(key), jsii.String(tags[key]), nil)
	}

	env := stackEnvironment(cfg, defaults)
	plans := []stacks.SitePlan{stacks.UIPlan(cfg), stacks.StorybookPlan(cfg)}

	names := make([]string, 0, len(plans))
	for _, plan := range plans {
		stacks.NewStaticSiteStack(app, plan.StackName, &stacks.StaticSiteStackProps{
			StackProps: awscdk.StackProps{Env: env},
			Plan:       plan,
		})
		names = append(names, plan.StackName)
	}
	return names
}

// stackEnvironment returns nil when account or region cannot be resolved, which
// synthesizes environment-agnostic stacks.
func stackEnvironment(cfg infraconfig.Config, defaults infraconfig.PlatformDefaults) *awscdk.Environment {
	resolved, ok := infraconfig.ResolveEnvironment(cfg, defaults)
	if !ok {
		return nil
	}
	return &awscdk.Environment{
		Account: jsii.String(resolved.Account),
		Region:  jsii.String(resolved.Region),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
