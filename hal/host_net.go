//go:build !tinygo

package hal

import (
	"io"
	"net/http"
	"time"
)

const (
	requestTimeout = 5 * time.Second
	maxBodyBytes   = 64 << 10
)

// hostNetClient is the real HTTP client behind NetClient, with the bounded
// timeout the contract requires.
type hostNetClient struct {
	c *http.Client
}

func newHostNetClient() *hostNetClient {
	return &hostNetClient{c: &http.Client{Timeout: requestTimeout}}
}

func (n *hostNetClient) Get(url, bearer string) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := n.c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
