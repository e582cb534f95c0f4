package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body []byte) string {
	t.Helper()

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &payload), string(body))
	message, _ := payload["error"].(string)
	return message
}

func newRequest(method string, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
