package boundary

import (
	"bytes"
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/xacc_orders/internal/signing"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const (
	sigV4Algorithm = "AWS4-HMAC-SHA256"
	amzDateFormat  = "20060102T150405Z"

	// DefaultClockSkew — допустимое расхождение X-Amz-Date и локальных часов.
	DefaultClockSkew = 5 * time.Minute
)

var (
	ErrMissingAuth       = errors.New("missing authentication token")
	ErrMalformedAuth     = errors.New("malformed authorization header")
	ErrUnknownAccessKey  = errors.New("unknown access key")
	ErrScopeMismatch     = errors.New("credential scope mismatch")
	ErrRequestExpired    = errors.New("signature expired")
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// Key — секрет и аккаунт, которому принадлежит ключ доступа.
type Key struct {
	AccountID string
	Secret    string
}

// KeyRing — локальная связка ключей: access key id → Key.
type KeyRing map[string]Key

// ParseKeyRing — разбор значений вида "account/secret" (секрет может содержать '/').
func ParseKeyRing(raw map[string]string) (KeyRing, error) {
	ring := make(KeyRing, len(raw))
	for id, v := range raw {
		account, secret, ok := strings.Cut(v, "/")
		if !ok || secret == "" || !accountRe.MatchString(account) {
			return nil, fmt.Errorf("key %q: want \"<12-digit account>/<secret>\"", id)
		}
		ring[id] = Key{AccountID: account, Secret: secret}
	}
	return ring, nil
}

// Identity — проверенная личность вызывающего.
type Identity struct {
	AccessKeyID string
	AccountID   string
	ARN         string
}

// Verifier — проверка SigV4 по локальной связке ключей.
type Verifier struct {
	keys    KeyRing
	region  string
	service string
	skew    time.Duration
	signer  *v4.Signer
	now     func() time.Time
}

// VerifierOption — настройка Verifier.
type VerifierOption func(*Verifier)

// WithVerifierClock — подмена часов.
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

// WithClockSkew — своё окно допустимого расхождения времени.
func WithClockSkew(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.skew = d }
}

func NewVerifier(keys KeyRing, region, service string, opts ...VerifierOption) *Verifier {
	if service == "" {
		service = signing.DefaultService
	}
	v := &Verifier{
		keys:    keys,
		region:  region,
		service: service,
		skew:    DefaultClockSkew,
		signer:  v4.NewSigner(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type authHeader struct {
	accessKeyID   string
	date          string
	region        string
	service       string
	signedHeaders []string
	signature     string
}

// Verify — пересчитывает подпись по копии запроса, содержащей только подписанные
// заголовки, и сравнивает с присланной. body — прочитанное тело запроса.
func (v *Verifier) Verify(ctx context.Context, r *http.Request, body []byte) (Identity, error) {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return Identity{}, ErrMissingAuth
	}
	ah, err := parseAuthorization(raw)
	if err != nil {
		return Identity{}, err
	}

	key, ok := v.keys[ah.accessKeyID]
	if !ok {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnknownAccessKey, ah.accessKeyID)
	}
	if ah.region != v.region || ah.service != v.service {
		return Identity{}, fmt.Errorf("%w: %s/%s", ErrScopeMismatch, ah.region, ah.service)
	}

	signedAt, err := time.Parse(amzDateFormat, r.Header.Get("X-Amz-Date"))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad X-Amz-Date", ErrMalformedAuth)
	}
	if signedAt.Format("20060102") != ah.date {
		return Identity{}, fmt.Errorf("%w: scope date differs from X-Amz-Date", ErrScopeMismatch)
	}
	if d := v.now().Sub(signedAt); d > v.skew || d < -v.skew {
		return Identity{}, fmt.Errorf("%w: signed at %s", ErrRequestExpired, signedAt.Format(time.RFC3339))
	}

	clone, err := signedCopy(ctx, r, ah.signedHeaders)
	if err != nil {
		return Identity{}, err
	}
	creds := aws.Credentials{
		AccessKeyID:     ah.accessKeyID,
		SecretAccessKey: key.Secret,
		SessionToken:    r.Header.Get("X-Amz-Security-Token"),
	}
	if err := v.signer.SignHTTP(ctx, creds, clone, signing.PayloadHash(body), v.service, v.region, signedAt); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}

	want, err := parseAuthorization(clone.Header.Get("Authorization"))
	if err != nil {
		return Identity{}, err
	}
	if !hmac.Equal([]byte(want.signature), []byte(ah.signature)) {
		return Identity{}, ErrSignatureMismatch
	}

	return Identity{
		AccessKeyID: ah.accessKeyID,
		AccountID:   key.AccountID,
		ARN:         "arn:aws:iam::" + key.AccountID + ":user/" + ah.accessKeyID,
	}, nil
}

// signedCopy — новый запрос с тем же методом, хостом, путём и query,
// но только с заголовками из SignedHeaders.
func signedCopy(ctx context.Context, r *http.Request, signed []string) (*http.Request, error) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
	clone, err := http.NewRequestWithContext(ctx, r.Method, u.String(), bytes.NewReader(nil))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAuth, err)
	}
	clone.Host = r.Host
	clone.ContentLength = 0

	for _, name := range signed {
		switch name {
		case "host":
		case "content-length":
			n, err := strconv.ParseInt(r.Header.Get("Content-Length"), 10, 64)
			if err != nil {
				n = r.ContentLength
			}
			clone.ContentLength = n
		default:
			if vals := r.Header.Values(name); len(vals) > 0 {
				clone.Header[http.CanonicalHeaderKey(name)] = vals
			}
		}
	}
	return clone, nil
}

// parseAuthorization — "AWS4-HMAC-SHA256 Credential=AKID/date/region/service/aws4_request,
// SignedHeaders=a;b, Signature=hex".
func parseAuthorization(raw string) (authHeader, error) {
	algo, rest, ok := strings.Cut(strings.TrimSpace(raw), " ")
	if !ok || algo != sigV4Algorithm {
		return authHeader{}, fmt.Errorf("%w: algorithm", ErrMalformedAuth)
	}

	fields := map[string]string{}
	for _, part := range strings.Split(rest, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return authHeader{}, fmt.Errorf("%w: %q", ErrMalformedAuth, part)
		}
		fields[k] = val
	}

	scope := strings.Split(fields["Credential"], "/")
	if len(scope) != 5 || scope[4] != "aws4_request" || scope[0] == "" {
		return authHeader{}, fmt.Errorf("%w: credential scope", ErrMalformedAuth)
	}
	if fields["SignedHeaders"] == "" || fields["Signature"] == "" {
		return authHeader{}, fmt.Errorf("%w: signed headers or signature missing", ErrMalformedAuth)
	}

	return authHeader{
		accessKeyID:   scope[0],
		date:          scope[1],
		region:        scope[2],
		service:       scope[3],
		signedHeaders: strings.Split(fields["SignedHeaders"], ";"),
		signature:     fields["Signature"],
	}, nil
}
