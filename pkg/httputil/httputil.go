package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 30 * time.Second}

var supportedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
}

// NewHTTPRequest function builds http call
// @param method <string>: http method
// @param url <string>: URL http to call
// @param bodyString <string>: request body, ignored for GET and DELETE
// @return <int, string>, error: status code and response body
func NewHTTPRequest(
	method, url, bodyString string, header map[string]string,
) (int, string, error) {
	if _, ok := supportedMethods[method]; !ok {
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}

	var body io.Reader
	if method == http.MethodPost || method == http.MethodPut {
		body = strings.NewReader(bodyString)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, "", err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse response body: %w", err)
	}

	return rs.StatusCode, string(bodyBytes), nil
}
