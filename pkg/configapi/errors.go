package configapi

import (
	"encoding/json"
	"fmt"
)

const (
	errorCodeNotFound    = "app.not_found"
	errorCodeUnavailable = "app.config_unavailable"
	errorCodeInternal    = "app.internal"
)

const (
	errorMessageNotFound    = "not found"
	errorMessageUnavailable = "configuration not initialized"
	errorMessageInternal    = "internal error"
)

// AppError is a client-safe error with a stable error code.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func statusForErrorCode(code string) int {
	switch code {
	case errorCodeNotFound:
		return 404
	case errorCodeUnavailable:
		return 503
	default:
		return 500
	}
}

func errorResponse(code, message string, headers map[string][]string, requestID string) Response {
	headers = cloneHeaders(headers)
	headers["content-type"] = []string{contentTypeJSON}

	errBody := map[string]any{
		"code":    code,
		"message": message,
	}
	if requestID != "" {
		errBody["request_id"] = requestID
	}
	body, err := json.Marshal(map[string]any{"error": errBody})
	if err != nil {
		body = []byte(`{"error":{"code":"app.internal","message":"internal error"}}`)
	}

	return Response{
		Status:  statusForErrorCode(code),
		Headers: headers,
		Body:    body,
	}
}
