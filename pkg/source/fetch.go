package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// fetch 通过 HTTP GET 获取 URL 数据源，非 2xx 响应视为不可用。
func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	resp, err := l.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, rawURL, err)
	}
	if !resp.IsSuccess() {
		body := strings.TrimSpace(resp.String())
		if len(body) > 200 {
			body = body[:200]
		}

		return nil, fmt.Errorf("%w: %s: http %d: %s", ErrSourceUnavailable, rawURL, resp.StatusCode(), body)
	}

	slog.Debug("Fetched source", "url", rawURL, "status", resp.StatusCode(), "bytes", len(resp.Body()))

	return resp.Body(), nil
}
