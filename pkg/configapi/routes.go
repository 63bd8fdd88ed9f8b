package configapi

import (
	"github.com/theory-cloud/reactstarter/pkg/appconfig"
)

// ConfigSource returns the initialized application config.
type ConfigSource func() (appconfig.Config, bool)

// NewConfigServer registers GET /config and GET /health.
func NewConfigServer(source ConfigSource, opts ...Option) *Server {
	if source == nil {
		source = appconfig.Current
	}
	return New(opts...).
		Get("/config", configHandler(source)).
		Get("/health", healthHandler)
}

func configHandler(source ConfigSource) Handler {
	return func(c *Context) (*Response, error) {
		cfg, ok := source()
		if !ok {
			return nil, &AppError{Code: errorCodeUnavailable, Message: errorMessageUnavailable}
		}
		resp, err := JSON(200, cfg.Public())
		if err != nil {
			return nil, err
		}
		resp.Headers["cache-control"] = []string{"no-store"}
		return resp, nil
	}
}

func healthHandler(*Context) (*Response, error) {
	return JSON(200, map[string]bool{"ok": true})
}
