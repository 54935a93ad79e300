package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"go.uber.org/zap"
)

// Client fetches quotes from the Steam Community Market priceoverview
// endpoint. One synchronous request per call; the endpoint is slow and
// implicitly rate limited, callers throttle themselves.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

type priceOverviewResponse struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: http, logger: logger}
}

func (c *Client) Quote(ctx context.Context, itemName string, currency string, appID int) (*domain.Quote, error) {
	start := time.Now()
	var payload priceOverviewResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"currency":         strconv.Itoa(CurrencyID(currency)),
			"appid":            strconv.Itoa(appID),
			"market_hash_name": itemName,
		}).
		SetResult(&payload).
		Get("/market/priceoverview/")
	if err != nil {
		c.logger.Error("steam request failed", zap.String("item", itemName), zap.Error(err))
		return nil, err
	}

	c.logger.Debug(
		"steam request complete",
		zap.String("item", itemName),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode() == 404 {
		return nil, domain.ErrItemNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("steam error: status %d", resp.StatusCode())
	}

	quote := &domain.Quote{Success: payload.Success, Currency: strings.ToUpper(currency)}
	if !payload.Success {
		return quote, nil
	}

	if payload.LowestPrice != "" {
		price, err := ParsePrice(payload.LowestPrice)
		if err != nil {
			return nil, fmt.Errorf("parse lowest price %q: %w", payload.LowestPrice, err)
		}
		quote.LowestPrice = price
	} else {
		// The market answered but has no listings right now.
		quote.Success = false
		return quote, nil
	}

	if payload.MedianPrice != "" {
		if median, err := ParsePrice(payload.MedianPrice); err == nil {
			quote.MedianPrice = median
		}
	}
	if payload.Volume != "" {
		if volume, err := parseVolume(payload.Volume); err == nil {
			quote.Volume = volume
		}
	}

	return quote, nil
}

// MarketURL builds the public listing page for an item.
func MarketURL(appID int, itemName string) string {
	return fmt.Sprintf("https://steamcommunity.com/market/listings/%d/%s", appID, url.PathEscape(itemName))
}
