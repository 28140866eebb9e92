package forwarder_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
	"github.com/Gunvolt24/xacc_orders/internal/forwarder"
	"github.com/Gunvolt24/xacc_orders/internal/ports/mocks"
	"github.com/golang/mock/gomock"
)

const baseURL = "https://abc.execute-api.eu-west-1.amazonaws.com/prod/"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func response(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestTargetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, base, want string
		wantErr          bool
	}{
		{"trailing_slash", baseURL, baseURL + "orders/", false},
		{"no_trailing_slash", "https://abc.execute-api.eu-west-1.amazonaws.com/prod", baseURL + "orders/", false},
		{"relative", "/prod/", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := forwarder.TargetURL(tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestForward_SignsAndRelays2xx(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockRequestSigner(ctrl)
	doer := mocks.NewMockHTTPDoer(ctrl)

	const downstream = `{"id":"abc","status":"OrderSubmitted"}`
	order := domain.NewOrder("o-1", domain.OrderStatusSubmitted)

	gomock.InOrder(
		signer.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *http.Request, payload []byte) error {
				if string(payload) != `{"id":"o-1","status":"OrderSubmitted"}` {
					t.Fatalf("payload: %s", payload)
				}
				req.Header.Set("Authorization", "AWS4-HMAC-SHA256 Credential=AKID/x")
				return nil
			}),
		doer.EXPECT().Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				if req.Method != http.MethodPost || req.URL.String() != baseURL+"orders/" {
					t.Fatalf("unexpected target %s %s", req.Method, req.URL)
				}
				if req.Header.Get("Content-Type") != "application/json" {
					t.Fatalf("content-type: %q", req.Header.Get("Content-Type"))
				}
				if req.Header.Get(forwarder.HeaderConsumerID) != "website-bff" {
					t.Fatalf("x-consumer-id: %q", req.Header.Get(forwarder.HeaderConsumerID))
				}
				if !strings.HasPrefix(req.Header.Get("Authorization"), "AWS4-HMAC-SHA256") {
					t.Fatalf("request was not signed")
				}
				return response(http.StatusCreated, downstream), nil
			}),
	)

	c, err := forwarder.NewClient(baseURL, "", signer, doer, noopLogger{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	relay, err := c.Forward(context.Background(), order)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if relay.StatusCode != http.StatusCreated || string(relay.Body) != downstream {
		t.Fatalf("relay changed: %d %s", relay.StatusCode, relay.Body)
	}
}

func TestForward_SignFailure_NeverSends(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockRequestSigner(ctrl)
	doer := mocks.NewMockHTTPDoer(ctrl) // без ожиданий: любой Do провалит тест

	signer.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("no creds"))

	c, err := forwarder.NewClient(baseURL, "website-bff", signer, doer, noopLogger{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Forward(context.Background(), domain.NewOrder("o-1", domain.OrderStatusSubmitted))
	if !errors.Is(err, domain.ErrSignRequest) {
		t.Fatalf("want ErrSignRequest, got %v", err)
	}
}

func TestForward_Failures(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		doErr   error
		wantErr error
	}{
		{"network", nil, errors.New("dial tcp: i/o timeout"), domain.ErrDownstreamUnavailable},
		{"forbidden", response(http.StatusForbidden, `{"Message":"User: anonymous is not authorized"}`), nil, domain.ErrDownstreamRejected},
		{"server_error", response(http.StatusInternalServerError, "An error occurred"), nil, domain.ErrDownstreamRejected},
		{"not_json", response(http.StatusOK, "<html>oops</html>"), nil, domain.ErrDownstreamInvalidBody},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			signer := mocks.NewMockRequestSigner(ctrl)
			doer := mocks.NewMockHTTPDoer(ctrl)

			signer.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			doer.EXPECT().Do(gomock.Any()).Return(tt.resp, tt.doErr).Times(1)

			c, err := forwarder.NewClient(baseURL, "website-bff", signer, doer, noopLogger{})
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			relay, err := c.Forward(context.Background(), domain.NewOrder("o-1", domain.OrderStatusSubmitted))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if relay != nil {
				t.Fatalf("relay must be nil on failure, got %+v", relay)
			}
		})
	}
}

func TestNewClient_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockRequestSigner(ctrl)
	doer := mocks.NewMockHTTPDoer(ctrl)

	if _, err := forwarder.NewClient("::bad", "", signer, doer, nil); err == nil {
		t.Fatalf("bad url: want error")
	}
	if _, err := forwarder.NewClient(baseURL, "", nil, doer, nil); err == nil {
		t.Fatalf("nil signer: want error")
	}
}
