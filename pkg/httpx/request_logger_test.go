package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/xacc_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, f string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(f, a...))
}

func (l *recordingLogger) Infof(_ context.Context, f string, a ...any)  { l.record("INFO", f, a...) }
func (l *recordingLogger) Warnf(_ context.Context, f string, a ...any)  { l.record("WARN", f, a...) }
func (l *recordingLogger) Errorf(_ context.Context, f string, a ...any) { l.record("ERROR", f, a...) }

func TestRequestLogger_SkipsPingAndLogsOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log := &recordingLogger{}
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/orders/", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/ping", http.NoBody),
		httptest.NewRequest(http.MethodPost, "/orders/", http.NoBody),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(log.lines) != 1 {
		t.Fatalf("want exactly one log line, got %d: %v", len(log.lines), log.lines)
	}
	line := log.lines[0]
	for _, want := range []string{"INFO ", "route=/orders/", "status=201", "caller=-"} {
		if !strings.Contains(line, want) {
			t.Fatalf("want %q in log line %q", want, line)
		}
	}
}

func TestRequestLogger_CallerAndLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const caller = "arn:aws:iam::111111111111:user/AKID"
	authenticate := func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxmeta.WithCaller(c.Request.Context(), caller))
	}

	tests := []struct {
		name   string
		status int
		want   []string
	}{
		{"created", http.StatusCreated, []string{"INFO ", "caller=" + caller}},
		{"denied", http.StatusForbidden, []string{"WARN ", "status=403"}},
		{"failed", http.StatusInternalServerError, []string{"ERROR ", "status=500"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			r := gin.New()
			r.Use(httpx.RequestLogger(log))
			r.POST("/orders/", authenticate, func(c *gin.Context) { c.Status(tt.status) })

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/orders/", http.NoBody))

			if len(log.lines) != 1 {
				t.Fatalf("want one line, got %v", log.lines)
			}
			for _, w := range tt.want {
				if !strings.Contains(log.lines[0], w) {
					t.Fatalf("want %q in %q", w, log.lines[0])
				}
			}
		})
	}
}
