//go:build integration

package testutil

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/Gunvolt24/xacc_orders/config"
	"github.com/Gunvolt24/xacc_orders/internal/app"
	"github.com/Gunvolt24/xacc_orders/pkg/logger"
	"go.uber.org/zap"
)

// Аккаунты и API тестовой границы.
const (
	InternalAccount = "222222222222"
	ExternalAccount = "111111111111"
	OtherAccount    = "333333333333"
	RestAPIID       = "dbu2yjalfg"
	Stage           = "prod"
)

// Key — ключ доступа, известный локальной границе.
type Key struct {
	AccessKeyID string
	Secret      string
	Account     string
}

var (
	ExternalKey = Key{AccessKeyID: "AKIDEXTERNAL0001", Secret: "external/secret+key", Account: ExternalAccount}
	OtherKey    = Key{AccessKeyID: "AKIDOTHER0000001", Secret: "other/secret+key", Account: OtherAccount}
)

// Config — конфигурация режима http с включённой границей; ключи обоих аккаунтов в связке.
func Config() (config.Config, error) {
	c, err := config.LoadWithPrefix("ORDERS_IT")
	if err != nil {
		return config.Config{}, err
	}
	c.Runtime.Mode = app.ModeHTTP
	c.HTTP.GinMode = "test"
	c.Metrics.Enabled = true

	c.Boundary.Stage = Stage
	c.Boundary.InternalAccountID = InternalAccount
	c.Boundary.ExternalAccountID = ExternalAccount
	c.Boundary.RestAPIID = RestAPIID
	c.Boundary.Enforce = true
	c.Boundary.Keys = map[string]string{
		ExternalKey.AccessKeyID: ExternalKey.Account + "/" + ExternalKey.Secret,
		OtherKey.AccessKeyID:    OtherKey.Account + "/" + OtherKey.Secret,
	}
	return c, nil
}

// StartDomain — внутренний API за локальной границей.
func StartDomain(ctx context.Context, cfg config.Config) (*httptest.Server, func(), error) {
	a, cleanup, err := app.BootstrapDomain(ctx, &cfg, app.Options{Logger: logger.FromZap(zap.NewNop())})
	if err != nil {
		return nil, func() {}, err
	}
	srv := httptest.NewServer(a.HTTPServer.Handler)
	return srv, func() { srv.Close(); cleanup() }, nil
}

// StartEdge — внешний API, подписывающий вызовы ключом key и пересылающий их на domainURL/<stage>/.
func StartEdge(ctx context.Context, cfg config.Config, domainURL string, key Key) (*httptest.Server, func(), error) {
	cfg.Forwarding.BaseURL = strings.TrimSuffix(domainURL, "/") + "/" + cfg.Boundary.Stage + "/"
	cfg.Forwarding.StaticAccessKeyID = key.AccessKeyID
	cfg.Forwarding.StaticSecretAccessKey = key.Secret

	a, cleanup, err := app.BootstrapEdge(ctx, &cfg, app.Options{Logger: logger.FromZap(zap.NewNop())})
	if err != nil {
		return nil, func() {}, err
	}
	srv := httptest.NewServer(a.HTTPServer.Handler)
	return srv, func() { srv.Close(); cleanup() }, nil
}
