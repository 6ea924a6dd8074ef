package middlewares

import (
	"context"

	"github.com/dropDatabas3/loginconsent/internal/kratos"
)

type ctxKey string

const (
	ctxRequestIDKey ctxKey = "request_id"
	ctxSessionKey   ctxKey = "kratos_session"
)

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID devuelve "" si WithRequestID no corrió.
func GetRequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxRequestIDKey).(string); ok {
		return s
	}
	return ""
}

// WithSession inyecta la sesión de Kratos en el contexto.
func WithSession(ctx context.Context, s *kratos.Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey, s)
}

// GetSession obtiene la sesión resuelta por RequireSession/OptionalSession.
// Retorna nil si no hay sesión.
func GetSession(ctx context.Context) *kratos.Session {
	if s, ok := ctx.Value(ctxSessionKey).(*kratos.Session); ok {
		return s
	}
	return nil
}
