package configapi

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// ServeAPIGatewayV2 adapts an HTTP API (payload v2) event.
func (s *Server) ServeAPIGatewayV2(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}

	headers := make(map[string][]string, len(event.Headers))
	for key, value := range event.Headers {
		headers[strings.ToLower(key)] = strings.Split(value, ",")
	}

	resp := s.Serve(ctx, Request{
		Method:  event.RequestContext.HTTP.Method,
		Path:    path,
		Headers: headers,
	})

	out := events.APIGatewayV2HTTPResponse{
		StatusCode:        resp.Status,
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
		Body:              string(resp.Body),
	}
	for key, values := range resp.Headers {
		if len(values) == 0 {
			continue
		}
		out.Headers[key] = values[0]
		out.MultiValueHeaders[key] = append([]string(nil), values...)
	}
	return out
}
