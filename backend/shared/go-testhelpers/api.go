package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/require"
)

// BuildRequest sets the client headers the service keys rate limits on:
// X-Forwarded-For for web, X-Device-ID for mobile platforms.
func (h *TestHelper) BuildRequest(method, reqURL string, body []byte, platform, platformVal string) *http.Request {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(body))
	require.NoError(h.T, err)

	req.Header.Set("X-Platform", platform)
	if platform == "web" {
		req.Header.Set("X-Forwarded-For", platformVal)
	} else {
		req.Header.Set("X-Device-ID", platformVal)
	}

	if (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) && len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// NewHTTPClient returns a plain client; the API is unauthenticated.
func (h *TestHelper) NewHTTPClient() *http.Client {
	return &http.Client{}
}

// DoRequest performs an HTTP request and asserts that no network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request, client *http.Client) *http.Response {
	resp, err := client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads the response body and returns it as a string for logging or inspection.
func (h *TestHelper) ReadBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return "<nil response or body>"
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	// After reading, we need to restore the body so it can be read again if needed.
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	require.NoError(h.T, err, "Failed to read response body")
	return string(bodyBytes)
}

// DecodeJSON reads resp into v and closes the body.
func (h *TestHelper) DecodeJSON(resp *http.Response, v any) {
	defer resp.Body.Close()
	require.NoError(h.T, json.NewDecoder(resp.Body).Decode(v))
}
