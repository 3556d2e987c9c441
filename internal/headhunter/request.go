package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"

	maxErrorBody = 200
)

func (c *Client) newRequest(ctx context.Context, endpoint string, q url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}
	return req, nil
}

// readBody returns the decoded response body. Accept-Encoding is set by hand,
// so the transport leaves gzip bodies compressed.
func readBody(resp *http.Response) ([]byte, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return io.ReadAll(resp.Body)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip body: %w", err)
	}
	defer gz.Close()
	return io.ReadAll(gz)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, target interface{}) error {
	req, err := c.newRequest(ctx, endpoint, q)
	if err != nil {
		return err
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s: %s", resp.Status, utils.TruncateForLog(string(data), maxErrorBody))
	}

	if target == nil {
		return nil
	}
	return json.Unmarshal(data, target)
}
