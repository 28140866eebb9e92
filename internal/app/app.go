package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Gunvolt24/xacc_orders/internal/ports"
	lambdatransport "github.com/Gunvolt24/xacc_orders/internal/transport/lambda"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
)

// Режимы запуска.
const (
	ModeAuto   = "auto"
	ModeLambda = "lambda"
	ModeHTTP   = "http"
)

// App — собранный обработчик и его внешний интерфейс (HTTP-сервер или Lambda).
type App struct {
	Logger          ports.Logger            // логгер
	Mode            string                  // lambda | http
	HTTPServer      *http.Server            // HTTP-сервер (режим http)
	Lambda          lambdatransport.Handler // обработчик событий API Gateway (режим lambda)
	gracefulTimeout time.Duration           // время ожидания завершения HTTP-сервера
	onShutdown      func()                  // вызывается при SIGTERM в Lambda
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// ResolveMode — auto превращается в lambda, если процесс запущен средой Lambda.
func ResolveMode(mode string, lookupEnv func(string) (string, bool)) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeLambda:
		return ModeLambda
	case ModeHTTP:
		return ModeHTTP
	default:
		if lookupEnv == nil {
			lookupEnv = os.LookupEnv
		}
		if v, ok := lookupEnv("AWS_LAMBDA_RUNTIME_API"); ok && v != "" {
			return ModeLambda
		}
		return ModeHTTP
	}
}

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Run — в режиме lambda передаёт управление рантайму (не возвращается),
// иначе запускает HTTP-сервер и ждёт отмены контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	if a.Mode == ModeLambda {
		a.Logger.Infof(ctx, "lambda runtime starting")
		var opts []awslambda.Option
		opts = append(opts, awslambda.WithContext(ctx))
		if a.onShutdown != nil {
			opts = append(opts, awslambda.WithEnableSIGTERM(a.onShutdown))
		}
		awslambda.StartWithOptions(a.Lambda, opts...)
		return nil
	}
	return a.runHTTP(ctx)
}

func (a *App) runHTTP(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или ошибки сервера.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
