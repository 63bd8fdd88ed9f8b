// Package configapi serves the application runtime configuration over HTTP behind
// API Gateway.
package configapi

import (
	"context"
	"errors"
	"strings"

	"github.com/theory-cloud/reactstarter/pkg/logger"
	"github.com/theory-cloud/reactstarter/pkg/observability"
)

const headerRequestID = "x-request-id"

// Context is the per-request context passed to handlers.
type Context struct {
	ctx       context.Context
	Request   Request
	RequestID string
	Log       observability.StructuredLogger
}

func (c *Context) Context() context.Context {
	if c == nil || c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

type Server struct {
	router router
	ids    IDGenerator
	log    observability.StructuredLogger
}

type Option func(*Server)

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Server) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger overrides the process logger.
func WithLogger(l observability.StructuredLogger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{ids: ULIDGenerator{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Server) Get(pattern string, handler Handler) *Server {
	s.router.add("GET", pattern, handler)
	return s
}

// Serve dispatches req. Every response carries x-request-id, taken from the request
// when present.
func (s *Server) Serve(ctx context.Context, req Request) (resp Response) {
	if ctx == nil {
		ctx = context.Background()
	}
	req.Headers = cloneHeaders(req.Headers)

	requestID := strings.TrimSpace(req.Header(headerRequestID))
	if requestID == "" {
		requestID = s.ids.NewID()
	}
	log := s.logger().WithRequestID(requestID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panicked", map[string]any{"panic": r, "path": req.Path})
			resp = errorResponse(errorCodeInternal, errorMessageInternal, nil, requestID)
		}
		if resp.Headers == nil {
			resp.Headers = map[string][]string{}
		}
		resp.Headers[headerRequestID] = []string{requestID}
	}()

	handler := s.router.match(req.Method, req.Path)
	if handler == nil {
		log.Debug("route not found", map[string]any{"method": req.Method, "path": req.Path})
		return errorResponse(errorCodeNotFound, errorMessageNotFound, nil, requestID)
	}

	out, err := handler(&Context{ctx: ctx, Request: req, RequestID: requestID, Log: log})
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			log.Warn("request failed", map[string]any{"code": appErr.Code, "path": req.Path})
			return errorResponse(appErr.Code, appErr.Message, nil, requestID)
		}
		log.Error("request failed", map[string]any{"error": err.Error(), "path": req.Path})
		return errorResponse(errorCodeInternal, errorMessageInternal, nil, requestID)
	}
	return normalizeResponse(out, requestID)
}

func (s *Server) logger() observability.StructuredLogger {
	if s.log != nil {
		return s.log
	}
	return logger.Logger()
}
