package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fruitshop/basket/internal/domain"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// FetchRemote downloads a JSON catalog document once at startup
func FetchRemote(ctx context.Context, url string, timeout time.Duration) (*domain.Catalog, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")
	defer client.Close()

	log.Infof("🔄 Fetching catalog from %s", url)

	resp, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("catalog request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error fetching catalog: %d %s", resp.StatusCode(), resp.Status())
	}

	var doc document
	if err := json.Unmarshal([]byte(resp.String()), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return build(doc, url)
}
