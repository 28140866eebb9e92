package boundary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/xacc_orders/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// maxGuardBody — граница тела, читаемого для проверки подписи.
const maxGuardBody = 1 << 20

// Guard — локальная эмуляция границы API Gateway (режим http):
// подпись → политика → обработчик. Ответы отказа повторяют платформенные.
type Guard struct {
	boundary   Boundary
	verifier   *Verifier
	resource   PolicyDocument
	identities map[string]PolicyDocument // аккаунт → identity-политика его роли
	log        ports.Logger
}

// NewGuard — граница для b: resource-политика внутреннего API и
// identity-политика роли внешнего аккаунта.
func NewGuard(b Boundary, verifier *Verifier, log ports.Logger) *Guard {
	invoker := InvokerPolicy(b)
	return &Guard{
		boundary:   b,
		verifier:   verifier,
		resource:   ResourcePolicy(b),
		identities: map[string]PolicyDocument{b.ExternalAccountID: invoker},
		log:        log,
	}
}

// Check — решение для вызывающего principal на маршрут method+path (путь без стейджа).
func (g *Guard) Check(principal, method, path string) (Decision, string) {
	return g.check(principal, method, g.boundary.Stage, path)
}

func (g *Guard) check(principal, method, stage, path string) (Decision, string) {
	resourceARN := ExecuteAPIARN(g.boundary.Region, g.boundary.InternalAccountID,
		g.boundary.RestAPIID, stage, method, path)
	req := Request{Principal: principal, Action: ActionInvoke, Resource: resourceARN}

	var identity *PolicyDocument
	if account, err := AccountFromARN(principal); err == nil {
		if doc, ok := g.identities[account]; ok {
			identity = &doc
		}
	}
	return Authorize(g.resource, identity, g.boundary.InternalAccountID, req), resourceARN
}

// Middleware — gin-обёртка; при отказе обработчик не вызывается.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxGuardBody))
		if err != nil {
			g.reject(c, "unauthenticated", gin.H{"message": "Missing Authentication Token"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		id, err := g.verifier.Verify(ctx, c.Request, body)
		if err != nil {
			g.log.Warnf(ctx, "boundary: authentication failed err=%v", err)
			g.reject(c, "unauthenticated", gin.H{"message": authMessage(err)})
			return
		}

		stage, path := g.splitStage(c.Request.URL.Path)
		decision, resourceARN := g.check(id.ARN, c.Request.Method, stage, path)
		if decision != Allow {
			g.log.Warnf(ctx, "boundary: %s principal=%s resource=%s", decision, id.ARN, resourceARN)
			g.reject(c, "deny", gin.H{"Message": fmt.Sprintf(
				"User: %s is not authorized to perform: %s on resource: %s",
				id.ARN, ActionInvoke, resourceARN)})
			return
		}

		metrics.BoundaryDecisions.WithLabelValues("allow").Inc()
		c.Request = c.Request.WithContext(ctxmeta.WithCaller(ctx, id.ARN))
		c.Next()
	}
}

// splitStage — первый сегмент URL считается стейджем, остаток маршрутом.
// /orders и /orders/ — один ресурс API, оба сводятся к настроенному пути.
func (g *Guard) splitStage(urlPath string) (string, string) {
	rest := strings.TrimPrefix(urlPath, "/")
	stage, route, _ := strings.Cut(rest, "/")
	route = "/" + route
	if stage == g.boundary.Stage && strings.TrimSuffix(route, "/") == strings.TrimSuffix(g.boundary.Path, "/") {
		route = g.boundary.Path
	}
	return stage, route
}

func (g *Guard) reject(c *gin.Context, decision string, body gin.H) {
	metrics.BoundaryDecisions.WithLabelValues(decision).Inc()
	c.AbortWithStatusJSON(http.StatusForbidden, body)
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingAuth):
		return "Missing Authentication Token"
	case errors.Is(err, ErrUnknownAccessKey):
		return "The security token included in the request is invalid."
	case errors.Is(err, ErrRequestExpired):
		return "Signature expired"
	case errors.Is(err, ErrMalformedAuth), errors.Is(err, ErrScopeMismatch):
		return "Authorization header requires 'Credential', 'Signature' and 'SignedHeaders' parameters for the configured region and service."
	default:
		return "The request signature we calculated does not match the signature you provided."
	}
}
