// Package langame — клиент публичного API Langame. Используется
// API-вариантом пайплайна: тарифы, зоны, временные окна и привязка ПК
// берутся не из прайс-файла, а из облака клуба.
package langame

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     *slog.Logger
}

func New(baseURL, apiKey string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// list дергает endpoint и разворачивает конверт ответа: API отдаёт либо
// голый массив, либо объект с полем data или items. Любая ошибка — пустой
// список: ретраев нет, пайплайн едет дальше на том, что есть.
func (c *Client) list(ctx context.Context, endpoint string) []map[string]any {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		c.log.Warn("langame: bad request", "endpoint", endpoint, "err", err)
		return nil
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("langame: request failed", "endpoint", endpoint, "err", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("langame: unexpected status", "endpoint", endpoint, "status", resp.Status)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("langame: read body", "endpoint", endpoint, "err", err)
		return nil
	}

	var arr []map[string]any
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.log.Warn("langame: unparseable response", "endpoint", endpoint, "err", err)
		return nil
	}
	for _, key := range []string{"data", "items"} {
		if raw, ok := envelope[key]; ok {
			if err := json.Unmarshal(raw, &arr); err == nil {
				return arr
			}
		}
	}
	return nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// toHour переводит "08:30:00" в дробный час 8.5.
func toHour(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, false
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60.0, true
}
