package cardapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// Client implements ports.CardAPI over the operator's HTTP API
type Client struct {
	cfg  Config
	http *resty.Client
}

var _ ports.CardAPI = (*Client)(nil)

// cardEnvelope is the response shape of the fetch endpoint
type cardEnvelope struct {
	Data *cardData `json:"data"`
}

type cardData struct {
	Card           *string  `json:"card"`
	ExpirationTime *string  `json:"expirationTime"`
	Free           *float64 `json:"free"`
	Used           *float64 `json:"used"`
}

// NewClient validates cfg and creates a Client
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{}).
		SetHeaders(map[string]string{
			"Accept":          "*/*",
			"Accept-Language": cfg.AcceptLanguage,
			"Content-Type":    "application/json;charset=UTF-8",
			"Cookie":          cfg.cookie(),
			"Referer":         cfg.Referer,
			"User-Agent":      cfg.UserAgent,
		})

	return &Client{cfg: cfg, http: httpClient}, nil
}

// Refresh implements CardAPI.Refresh. The response body is not interpreted.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.send(ctx, c.cfg.RefreshMethod, c.cfg.RefreshPath)
	if err != nil {
		return err
	}

	logging.Logger.Debug("Refresh request completed", "status", resp.StatusCode(), "duration", resp.Time())
	return nil
}

// Fetch implements CardAPI.Fetch
func (c *Client) Fetch(ctx context.Context) (*domain.CardSnapshot, error) {
	resp, err := c.send(ctx, c.cfg.FetchMethod, c.cfg.FetchPath)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("Fetch request completed", "status", resp.StatusCode(), "duration", resp.Time())

	return decodeSnapshot(resp.Body())
}

func (c *Client) send(ctx context.Context, method, path string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if method == http.MethodPost {
		req.SetBody("{}")
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s %s: unexpected status %d", domain.ErrTransport, method, path, resp.StatusCode())
	}

	return resp, nil
}

// decodeSnapshot parses the fetch envelope; every data field is required
func decodeSnapshot(body []byte) (*domain.CardSnapshot, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: empty response", domain.ErrDecode)
	}

	var envelope cardEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", domain.ErrDecode, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: response has no data", domain.ErrDecode)
	}

	data := envelope.Data
	var missing []string
	if data.Card == nil {
		missing = append(missing, "card")
	}
	if data.Used == nil {
		missing = append(missing, "used")
	}
	if data.Free == nil {
		missing = append(missing, "free")
	}
	if data.ExpirationTime == nil {
		missing = append(missing, "expirationTime")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: data is missing %s", domain.ErrDecode, strings.Join(missing, ", "))
	}

	return &domain.CardSnapshot{
		Card:           *data.Card,
		ExpirationTime: *data.ExpirationTime,
		FreeMB:         *data.Free,
		UsedMB:         *data.Used,
	}, nil
}

// restyLogger routes resty's internal messages to the cardwatch logger
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	logging.Logger.Error(fmt.Sprintf(format, v...))
}

func (restyLogger) Warnf(format string, v ...any) {
	logging.Logger.Warn(fmt.Sprintf(format, v...))
}

func (restyLogger) Debugf(format string, v ...any) {
	logging.Logger.Debug(fmt.Sprintf(format, v...))
}
