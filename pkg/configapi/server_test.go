package configapi

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theory-cloud/reactstarter/pkg/appconfig"
	"github.com/theory-cloud/reactstarter/pkg/observability"
)

type fixedIDs string

func (f fixedIDs) NewID() string { return string(f) }

func testConfig() appconfig.Config {
	return appconfig.Config{
		BaseURLAPI:             "https://api.example.com",
		ToastAutoDismissMillis: 5000,
		Build: appconfig.BuildInfo{
			Timestamp:          "2024-05-01T10:00:00Z",
			CommitSHA:          "0123456789abcdef",
			EnvCode:            "dev",
			WorkflowRunNumber:  12,
			WorkflowRunAttempt: 1,
		},
	}
}

func staticSource(cfg appconfig.Config, ok bool) ConfigSource {
	return func() (appconfig.Config, bool) { return cfg, ok }
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestServe_Config(t *testing.T) {
	srv := NewConfigServer(staticSource(testConfig(), true), WithIDGenerator(fixedIDs("req-1")))

	resp := srv.Serve(context.Background(), Request{Method: "GET", Path: "/config"})
	require.Equal(t, 200, resp.Status)
	assert.Equal(t, []string{"req-1"}, resp.Headers["x-request-id"])
	assert.Equal(t, []string{contentTypeJSON}, resp.Headers["content-type"])
	assert.Equal(t, []string{"no-store"}, resp.Headers["cache-control"])

	var got appconfig.PublicConfig
	require.NoError(t, json.Unmarshal(resp.Body, &got))
	assert.Equal(t, testConfig().Public(), got)
}

func TestServe_ConfigUnavailable(t *testing.T) {
	srv := NewConfigServer(staticSource(appconfig.Config{}, false), WithIDGenerator(fixedIDs("req-2")))

	resp := srv.Serve(context.Background(), Request{Method: "GET", Path: "/config"})
	assert.Equal(t, 503, resp.Status)
	body := decode(t, resp.Body)
	assert.Equal(t, map[string]any{
		"code":       "app.config_unavailable",
		"message":    "configuration not initialized",
		"request_id": "req-2",
	}, body["error"])
}

func TestServe_Health(t *testing.T) {
	srv := NewConfigServer(staticSource(appconfig.Config{}, false))

	resp := srv.Serve(context.Background(), Request{Method: "get", Path: "/health/"})
	assert.Equal(t, 200, resp.Status)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.Len(t, resp.Headers["x-request-id"][0], 26, "ulid")
}

func TestServe_NotFound(t *testing.T) {
	srv := NewConfigServer(staticSource(testConfig(), true), WithIDGenerator(fixedIDs("generated")))

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown path", Request{Method: "GET", Path: "/missing"}},
		{"wrong method", Request{Method: "POST", Path: "/config"}},
		{"root", Request{Method: "GET", Path: "/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.Serve(context.Background(), tt.req)
			assert.Equal(t, 404, resp.Status)
			errBody, ok := decode(t, resp.Body)["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "app.not_found", errBody["code"])
		})
	}
}

func TestServe_PropagatesIncomingRequestID(t *testing.T) {
	srv := NewConfigServer(staticSource(testConfig(), true), WithIDGenerator(fixedIDs("generated")))

	resp := srv.Serve(context.Background(), Request{
		Method:  "GET",
		Path:    "/missing",
		Headers: map[string][]string{"X-Request-Id": {" incoming "}},
	})
	assert.Equal(t, []string{"incoming"}, resp.Headers["x-request-id"])
}

func TestServe_HandlerFailures(t *testing.T) {
	log := observability.NewTestLogger()
	srv := New(WithIDGenerator(fixedIDs("r")), WithLogger(log)).
		Get("/boom", func(*Context) (*Response, error) { return nil, errors.New("secret detail") }).
		Get("/panic", func(*Context) (*Response, error) { panic("bad") }).
		Get("/nil", func(*Context) (*Response, error) { return nil, nil })

	for _, path := range []string{"/boom", "/panic", "/nil"} {
		resp := srv.Serve(context.Background(), Request{Method: "GET", Path: path})
		assert.Equal(t, 500, resp.Status, path)
		assert.NotContains(t, string(resp.Body), "secret detail")
		assert.Equal(t, []string{"r"}, resp.Headers["x-request-id"])
	}

	messages := log.Messages()
	assert.Contains(t, messages, "request failed")
	assert.Contains(t, messages, "handler panicked")
}

func TestServeAPIGatewayV2(t *testing.T) {
	srv := NewConfigServer(staticSource(testConfig(), true), WithIDGenerator(fixedIDs("gen")))

	event := events.APIGatewayV2HTTPRequest{
		RawPath: "/config",
		Headers: map[string]string{"X-Request-ID": "abc"},
	}
	event.RequestContext.HTTP.Method = "GET"

	out := srv.ServeAPIGatewayV2(context.Background(), event)
	assert.Equal(t, 200, out.StatusCode)
	assert.Equal(t, "abc", out.Headers["x-request-id"])
	assert.Equal(t, contentTypeJSON, out.Headers["content-type"])
	assert.Equal(t, "https://api.example.com", decode(t, []byte(out.Body))["baseUrlApi"])

	event = events.APIGatewayV2HTTPRequest{}
	event.RequestContext.HTTP.Method = "GET"
	event.RequestContext.HTTP.Path = "/health"
	out = srv.ServeAPIGatewayV2(context.Background(), event)
	assert.Equal(t, 200, out.StatusCode)
	assert.Equal(t, "gen", out.Headers["x-request-id"])
}
