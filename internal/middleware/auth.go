package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/progress/api/transport"
	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/pkg/httpcontext"
)

// Authenticator resolves a bearer token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*domain.Session, error)
}

// JWTAuth rejects requests without a token that maps to a live session and
// exposes the session owner to downstream handlers.
func JWTAuth(auth Authenticator, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				unauthorized(ctx, "missing bearer token")
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			session, err := auth.Authenticate(stdCtx, tokenString)
			cancel()
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					unauthorized(ctx, "invalid or expired session")
					return
				}
				logger.Error("session lookup failed", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
				return
			}

			ctx.SetUserValue(httpcontext.UserValueUsername, session.Username)
			ctx.SetUserValue(httpcontext.UserValueSessionID, session.ID)
			next(ctx)
		}
	}
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBodyString(transport.NewError(string(domain.ErrCodeUnauthorized), message, nil).String())
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
