package httpx

import (
	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderCorrelationID — заголовок ответа с идентификатором корреляции.
const HeaderCorrelationID = "X-Correlation-ID"

// CorrelationSource — генератор идентификаторов корреляции.
type CorrelationSource func() (string, error)

// NewCorrelationID — UUID v4; ошибка источника случайности возвращается, а не паникует.
func NewCorrelationID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CorrelationMiddleware:
// - на каждый вызов генерирует новый id (входящие идентификаторы не принимаются)
// - кладёт correlation_id и имя обработчика в контекст
// - возвращает id в заголовке X-Correlation-ID
// Если id получить не удалось, вызывается onError и цепочка прерывается.
// source == nil — NewCorrelationID.
func CorrelationMiddleware(handler string, source CorrelationSource, onError func(*gin.Context, error)) gin.HandlerFunc {
	if source == nil {
		source = NewCorrelationID
	}
	return func(c *gin.Context) {
		correlationID, err := source()
		if err != nil {
			c.Request = c.Request.WithContext(ctxmeta.WithHandler(c.Request.Context(), handler))
			onError(c, err)
			c.Abort()
			return
		}
		c.Header(HeaderCorrelationID, correlationID)

		ctx := ctxmeta.WithCorrelationID(c.Request.Context(), correlationID)
		ctx = ctxmeta.WithHandler(ctx, handler)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
