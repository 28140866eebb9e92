package ports

import "context"

// Logger — контракт логгера обработчиков; метаданные вызова берутся из ctx.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
