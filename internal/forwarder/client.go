// Package forwarder — подписанная пересылка заказа во внутренний API.
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/metrics"
)

// HeaderConsumerID — заголовок, которым edge представляется внутреннему API.
const HeaderConsumerID = "x-consumer-id"

// DefaultConsumerID — значение x-consumer-id по умолчанию.
const DefaultConsumerID = "website-bff"

// maxBodyBytes — верхняя граница читаемого тела ответа.
const maxBodyBytes = 1 << 20

var _ ports.OrderForwarder = (*Client)(nil)

// Client — исходящий клиент внутреннего API: одна попытка, без ретраев.
type Client struct {
	target     string
	consumerID string
	signer     ports.RequestSigner
	doer       ports.HTTPDoer
	log        ports.Logger
}

// NewClient — DI-конструктор. baseURL — корень стейджа внутреннего API
// (https://<api>.execute-api.<region>.amazonaws.com/prod/); цель — baseURL + "orders/".
func NewClient(
	baseURL, consumerID string,
	signer ports.RequestSigner,
	doer ports.HTTPDoer,
	log ports.Logger,
) (*Client, error) {
	target, err := TargetURL(baseURL)
	if err != nil {
		return nil, err
	}
	if signer == nil || doer == nil {
		return nil, errors.New("forwarder: signer and http doer are required")
	}
	if consumerID == "" {
		consumerID = DefaultConsumerID
	}
	return &Client{
		target:     target,
		consumerID: consumerID,
		signer:     signer,
		doer:       doer,
		log:        log,
	}, nil
}

// TargetURL — baseURL + "orders/" с сохранением завершающего слэша.
func TargetURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("forwarder: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("forwarder: base url %q must be absolute", baseURL)
	}
	return u.JoinPath("orders/").String(), nil
}

// Target — адрес, на который уходят заказы.
func (c *Client) Target() string { return c.target }

// Forward — сериализует заказ, подписывает и отправляет его ровно один раз.
// Успех — только 2xx с JSON-телом; тело и код возвращаются без изменений.
func (c *Client) Forward(ctx context.Context, order *domain.Order) (*domain.Relay, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodeOrder, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBuildRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderConsumerID, c.consumerID)

	// Неподписанный запрос не уходит в сеть.
	if err := c.signer.Sign(ctx, req, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSignRequest, err)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	metrics.DownstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DownstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDownstreamUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.DownstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrDownstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.log != nil {
			c.log.Warnf(ctx, "downstream status=%d body=%q", resp.StatusCode, truncate(body, 256))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrDownstreamRejected, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: status %d", domain.ErrDownstreamInvalidBody, resp.StatusCode)
	}

	return &domain.Relay{StatusCode: resp.StatusCode, Body: body}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
