package pubsub

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

type client struct {
	*http.Client
}

func newHTTPClient(timeout time.Duration) *client {
	return &client{&http.Client{Timeout: timeout}}
}

func (c *client) post(
	url, body string, headers map[string]string,
) (int, string, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		return -1, "", err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.Do(req)
	if err != nil {
		return -1, "", err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return -1, "", err
	}
	return resp.StatusCode, string(buf), nil
}
