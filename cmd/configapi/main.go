// Command configapi is the Lambda that serves the SPA runtime configuration.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/theory-cloud/reactstarter/pkg/appconfig"
	"github.com/theory-cloud/reactstarter/pkg/configapi"
	"github.com/theory-cloud/reactstarter/pkg/envschema"
	"github.com/theory-cloud/reactstarter/pkg/logger"
	"github.com/theory-cloud/reactstarter/pkg/observability"
	obszap "github.com/theory-cloud/reactstarter/pkg/observability/zap"
)

func main() {
	srv, err := setup(context.Background(), envschema.Environ())
	if err != nil {
		fmt.Fprintf(os.Stderr, "configapi: FAIL: %v\n", err)
		os.Exit(1)
	}
	lambda.Start(handler(srv, logger.Logger(), os.Stderr))
}

// handler flushes after every invocation so queued error notifications are sent
// before the execution environment is frozen. Entries the logger lost during the
// invocation are reported on stderr, since the logger itself cannot be trusted with it.
func handler(srv *configapi.Server, log observability.StructuredLogger, stderr io.Writer) func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var (
		mu   sync.Mutex
		last = log.GetStats()
	)
	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		resp := srv.ServeAPIGatewayV2(ctx, event)
		_ = log.Flush(ctx)

		stats := log.GetStats()
		mu.Lock()
		dropped, errs := stats.LostSince(last)
		last = stats
		mu.Unlock()
		if dropped > 0 || errs > 0 {
			fmt.Fprintf(stderr, "configapi: logger lost entries: dropped=%d errors=%d last_error=%q\n", dropped, errs, stats.LastError)
		}
		return resp, nil
	}
}

// setup installs the process logger and initializes the application config once per
// cold start. An invalid config fails the cold start rather than serving defaults.
func setup(ctx context.Context, environ map[string]string) (*configapi.Server, error) {
	log, err := obszap.NewZapLogger(
		observability.LoggerConfig{Level: environ["LOG_LEVEL"]},
		obszap.WithEnvironmentErrorNotifications(ctx, obszap.DefaultEnvironmentErrorNotifications()),
	)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logger.SetLogger(log)

	cfg, err := appconfig.Init(environ)
	if err != nil {
		log.Error("application configuration invalid", map[string]any{"error": err.Error()})
		return nil, err
	}
	log.Info("application configuration loaded", map[string]any{
		"version":  cfg.Version(),
		"env_code": cfg.Build.EnvCode,
	})

	return configapi.NewConfigServer(appconfig.Current), nil
}
