package httputil_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JerryMichels/bitpay-app/pkg/httputil"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("X-Method", r.Method)
			_, _ = w.Write([]byte(r.Header.Get("X-Test") + ":" + string(body)))
		},
	))
	defer server.Close()

	tests := []struct {
		method   string
		body     string
		expected string
	}{
		{http.MethodGet, "ignored", "value:"},
		{http.MethodDelete, "ignored", "value:"},
		{http.MethodPost, `{"a":1}`, `value:{"a":1}`},
		{http.MethodPut, `{"a":2}`, `value:{"a":2}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			status, resp, err := httputil.NewHTTPRequest(
				tt.method, server.URL, tt.body, map[string]string{"X-Test": "value"},
			)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, tt.expected, resp)
		})
	}

	_, _, err := httputil.NewHTTPRequest("PATCH", server.URL, "", nil)
	require.Error(t, err)
}
