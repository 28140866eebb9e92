// Package signing — подпись исходящих запросов по схеме AWS SigV4.
//
// Ключи не хранятся в пакете: источник короткоживущих учётных данных
// передаётся явно (в Lambda — роль функции, в тестах — статический/фейковый провайдер).
// Подпись считается заново для каждого запроса: метод, путь, query, заголовки
// (включая host), хеш тела и время меняются от вызова к вызову.
package signing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/metrics"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

// Проверка, что Signer удовлетворяет интерфейсу RequestSigner.
var _ ports.RequestSigner = (*Signer)(nil)

// ErrCredentialsUnavailable — учётных данных нет или получить их не удалось.
var ErrCredentialsUnavailable = errors.New("signing credentials unavailable")

// DefaultService — сервис, от имени которого подписываются вызовы API Gateway.
const DefaultService = "execute-api"

// Signer — SigV4-подписант для одного региона и сервиса.
type Signer struct {
	creds   aws.CredentialsProvider
	signer  *v4.Signer
	region  string
	service string
	now     func() time.Time
}

// Option — настройка Signer.
type Option func(*Signer)

// WithClock — подмена часов (тесты, воспроизводимые подписи).
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner — DI-конструктор; без провайдера учётных данных или региона подписант не создаётся.
func NewSigner(creds aws.CredentialsProvider, region, service string, opts ...Option) (*Signer, error) {
	if creds == nil {
		return nil, fmt.Errorf("%w: credentials provider is nil", ErrCredentialsUnavailable)
	}
	if region == "" {
		return nil, errors.New("signing region is required")
	}
	if service == "" {
		service = DefaultService
	}

	s := &Signer{
		creds:   creds,
		signer:  v4.NewSigner(),
		region:  region,
		service: service,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sign — подписывает req "на месте": выставляет X-Amz-Date, Authorization
// (и X-Amz-Security-Token для временных ключей).
// При отсутствии ключей возвращает ErrCredentialsUnavailable и не трогает запрос.
func (s *Signer) Sign(ctx context.Context, req *http.Request, payload []byte) error {
	creds, err := s.creds.Retrieve(ctx)
	if err != nil {
		metrics.SigningFailures.Inc()
		return fmt.Errorf("%w: %v", ErrCredentialsUnavailable, err)
	}
	if !creds.HasKeys() {
		metrics.SigningFailures.Inc()
		return fmt.Errorf("%w: empty access key or secret", ErrCredentialsUnavailable)
	}

	if err := s.signer.SignHTTP(ctx, creds, req, PayloadHash(payload), s.service, s.region, s.now().UTC()); err != nil {
		metrics.SigningFailures.Inc()
		return fmt.Errorf("sigv4 sign: %w", err)
	}
	return nil
}

// PayloadHash — hex(sha256(payload)); для пустого тела — хеш пустой строки.
func PayloadHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
