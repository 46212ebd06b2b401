package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

func (s *HTTPServer) middlewareStack() []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	})

	timeout := 30 * time.Second
	if s.requestTimeout > 0 {
		timeout = s.requestTimeout
	}

	return []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					s.logger.Warn(r.Context(), "secure headers blocked request", "error", err)
					writeServerError(w)
					return
				}
				next.ServeHTTP(w, r)
			})
		},
	}
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// authLimiter throttles credential endpoints; a non-positive limit disables it.
func (s *HTTPServer) authLimiter() func(http.Handler) http.Handler {
	if s.authRateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(s.authRateLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeMsg(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
	)
}

// requireAuth admits a request only with a valid x-auth-token and attaches
// the caller's identity to its context.
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := s.verifier.Verify(r.Header)

		switch out.Status {
		case auth.StatusValid:
			ctx := auth.WithIdentity(r.Context(), auth.Identity{UserID: out.UserID})
			next.ServeHTTP(w, r.WithContext(ctx))
		case auth.StatusMissing:
			writeMsg(w, http.StatusUnauthorized, msgNoToken)
		case auth.StatusInvalid:
			s.logger.Debug(r.Context(), "token rejected", "reason", out.Err)
			writeMsg(w, http.StatusUnauthorized, msgInvalidToken)
		default:
			s.logger.Error(r.Context(), "token verification failed", "error", out.Err)
			writeServerError(w)
		}
	})
}

func identity(r *http.Request) (auth.Identity, bool) {
	return auth.IdentityFromContext(r.Context())
}
