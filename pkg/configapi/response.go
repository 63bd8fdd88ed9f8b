package configapi

import (
	"encoding/json"
	"strings"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Request is the transport-neutral request seen by handlers. Header names are lower
// case.
type Request struct {
	Method  string
	Path    string
	Headers map[string][]string
}

func (r Request) Header(name string) string {
	values := r.Headers[strings.ToLower(name)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Response is what handlers return and what the adapters translate to events.
type Response struct {
	Status  int
	Headers map[string][]string
	Body    []byte
}

// JSON builds an application/json response.
func JSON(status int, value any) (*Response, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status:  status,
		Headers: map[string][]string{"content-type": {contentTypeJSON}},
		Body:    body,
	}, nil
}

func normalizeResponse(in *Response, requestID string) Response {
	if in == nil {
		return errorResponse(errorCodeInternal, errorMessageInternal, nil, requestID)
	}
	out := *in
	if out.Status == 0 {
		out.Status = 200
	}
	out.Headers = cloneHeaders(out.Headers)
	out.Body = append([]byte(nil), out.Body...)
	return out
}

func cloneHeaders(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in)+2)
	for key, values := range in {
		out[strings.ToLower(strings.TrimSpace(key))] = append([]string(nil), values...)
	}
	return out
}
