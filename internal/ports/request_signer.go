package ports

import (
	"context"
	"net/http"
)

// RequestSigner — добавляет к запросу заголовки аутентификации.
// payload — ровно те байты, что уйдут в теле запроса.
type RequestSigner interface {
	Sign(ctx context.Context, req *http.Request, payload []byte) error
}
