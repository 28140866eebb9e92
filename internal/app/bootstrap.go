package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gunvolt24/xacc_orders/config"
	"github.com/Gunvolt24/xacc_orders/internal/boundary"
	"github.com/Gunvolt24/xacc_orders/internal/forwarder"
	"github.com/Gunvolt24/xacc_orders/internal/idgen"
	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/internal/signing"
	rest "github.com/Gunvolt24/xacc_orders/internal/transport/http"
	lambdatransport "github.com/Gunvolt24/xacc_orders/internal/transport/lambda"
	"github.com/Gunvolt24/xacc_orders/internal/usecase"
	"github.com/Gunvolt24/xacc_orders/pkg/logger"
	"github.com/Gunvolt24/xacc_orders/pkg/metrics"
	"github.com/Gunvolt24/xacc_orders/pkg/telemetry"
	"github.com/Gunvolt24/xacc_orders/pkg/validate"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/gin-gonic/gin"
)

// Options — то, что main может подменить (тесты, локальный запуск).
type Options struct {
	Credentials aws.CredentialsProvider // nil — статические ключи из конфигурации или цепочка по умолчанию
	HTTPDoer    ports.HTTPDoer          // nil — http.Client с Forwarding.Timeout
	Logger      *logger.ZapLogger       // nil — новый zap по Logger.IsProd
	LookupEnv   func(string) (string, bool)
}

// base — общая часть обоих обработчиков: логгер, метрики, трейсинг, режим.
type base struct {
	log     *logger.ZapLogger
	mode    string
	otel    string
	cleanup Cleanup
}

func newBase(ctx context.Context, cfg *config.Config, handler string, opts Options) (*base, error) {
	logg := opts.Logger
	cleanupLogger := func() error { return nil }
	if logg == nil {
		var err error
		logg, cleanupLogger, err = logger.NewZapLogger(cfg.Logger.IsProd)
		if err != nil {
			return nil, err
		}
	}

	// Регистрация метрик (Prometheus).
	if cfg.Metrics.Enabled {
		metrics.MustRegister()
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace, err := telemetry.SetupTracing(ctx, telemetry.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Handler:     handler,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		shutdownTrace = func(context.Context) error { return nil }
	} else if cfg.Tracing.Enabled {
		logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	mode := ResolveMode(cfg.Runtime.Mode, opts.LookupEnv)
	if mode == ModeLambda {
		gin.SetMode(gin.ReleaseMode)
	} else {
		applyGinMode(ctx, cfg.HTTP.GinMode, logg)
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return &base{log: logg, mode: mode, otel: otelServiceName, cleanup: cleanup}, nil
}

func (b *base) app(cfg *config.Config, router *gin.Engine) *App {
	a := &App{
		Logger:          b.log,
		Mode:            b.mode,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
		onShutdown:      b.cleanup,
	}
	if b.mode == ModeLambda {
		a.Lambda = lambdatransport.NewHandler(router)
		return a
	}
	a.HTTPServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	return a
}

// BootstrapEdge — внешний обработчик: id → подпись → пересылка → ретрансляция ответа.
func BootstrapEdge(ctx context.Context, cfg *config.Config, opts Options) (*App, Cleanup, error) {
	if err := cfg.ValidateEdge(); err != nil {
		return nil, func() {}, err
	}

	b, err := newBase(ctx, cfg, rest.EdgeHandlerName, opts)
	if err != nil {
		return nil, func() {}, err
	}

	creds, err := resolveCredentials(ctx, cfg.Forwarding, opts.Credentials)
	if err != nil {
		b.cleanup()
		return nil, func() {}, err
	}
	signer, err := signing.NewSigner(creds, cfg.Forwarding.Region, cfg.Forwarding.Service)
	if err != nil {
		b.cleanup()
		return nil, func() {}, err
	}

	doer := opts.HTTPDoer
	if doer == nil {
		doer = &http.Client{Timeout: cfg.Forwarding.Timeout}
	}

	client, err := forwarder.NewClient(cfg.Forwarding.BaseURL, cfg.Forwarding.ConsumerID, signer, doer, b.log)
	if err != nil {
		b.cleanup()
		return nil, func() {}, err
	}

	ids, err := idgen.New(cfg.IDs.Version)
	if err != nil {
		b.cleanup()
		return nil, func() {}, err
	}

	// Сборка зависимостей.
	service := usecase.NewEdgeOrderService(ids, validate.NewOrderValidator(), client, b.log)
	router := rest.NewEdgeRouter(rest.NewEdgeHandler(service, b.log), rest.RouterOptions{
		OTelServiceName: b.otel,
	})

	b.log.Infof(ctx, "edge handler ready mode=%s target=%s consumer=%s",
		b.mode, client.Target(), cfg.Forwarding.ConsumerID)
	return b.app(cfg, router), b.cleanup, nil
}

// BootstrapDomain — внутренний обработчик. В режиме http при Boundary.Enforce
// перед маршрутами ставится локальная граница; в Lambda её обеспечивает платформа.
func BootstrapDomain(ctx context.Context, cfg *config.Config, opts Options) (*App, Cleanup, error) {
	if err := cfg.ValidateDomain(); err != nil {
		return nil, func() {}, err
	}

	b, err := newBase(ctx, cfg, rest.DomainHandlerName, opts)
	if err != nil {
		return nil, func() {}, err
	}

	ids, err := idgen.New(cfg.IDs.Version)
	if err != nil {
		b.cleanup()
		return nil, func() {}, err
	}

	routerOpts := rest.RouterOptions{OTelServiceName: b.otel}
	if b.mode == ModeHTTP {
		routerOpts.BasePath = "/" + cfg.Boundary.Stage
		if cfg.Boundary.Enforce {
			guard, gErr := newGuard(cfg, b.log)
			if gErr != nil {
				b.cleanup()
				return nil, func() {}, gErr
			}
			routerOpts.Guard = guard.Middleware()
		}
	} else if cfg.Boundary.Enforce {
		b.log.Warnf(ctx, "boundary enforcement ignored in lambda mode: API Gateway authorizes requests")
	}

	service := usecase.NewDomainOrderService(ids, validate.NewOrderValidator(), b.log)
	router := rest.NewDomainRouter(rest.NewDomainHandler(service, b.log), routerOpts)

	b.log.Infof(ctx, "domain handler ready mode=%s base_path=%q guard=%v",
		b.mode, routerOpts.BasePath, routerOpts.Guard != nil)
	return b.app(cfg, router), b.cleanup, nil
}

// BoundaryFromConfig — описание границы из секции Boundary.
func BoundaryFromConfig(c config.Boundary) boundary.Boundary {
	return boundary.Boundary{
		Region:            c.Region,
		InternalAccountID: c.InternalAccountID,
		ExternalAccountID: c.ExternalAccountID,
		RestAPIID:         c.RestAPIID,
		Stage:             c.Stage,
		Method:            c.Method,
		Path:              c.Path,
	}
}

func newGuard(cfg *config.Config, log ports.Logger) (*boundary.Guard, error) {
	bnd := BoundaryFromConfig(cfg.Boundary)
	if err := bnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	ring, err := boundary.ParseKeyRing(cfg.Boundary.Keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	verifier := boundary.NewVerifier(ring, cfg.Boundary.Region, cfg.Forwarding.Service)
	return boundary.NewGuard(bnd, verifier, log), nil
}

// resolveCredentials — явный провайдер, статические ключи из конфигурации
// или цепочка по умолчанию (роль функции в Lambda).
func resolveCredentials(ctx context.Context, f config.Forwarding, explicit aws.CredentialsProvider) (aws.CredentialsProvider, error) {
	if explicit != nil {
		return explicit, nil
	}
	if f.StaticAccessKeyID != "" {
		return credentials.NewStaticCredentialsProvider(f.StaticAccessKeyID, f.StaticSecretAccessKey, f.StaticSessionToken), nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(f.Region))
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", signing.ErrCredentialsUnavailable, err)
	}
	return awsCfg.Credentials, nil
}
