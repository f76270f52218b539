package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const headerRequestID = "X-Request-ID"

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (s *Server) HTMLMiddleWare(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.WWWRedirectMiddleware,
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.FrameSecurityMiddleware,
	}
	chainedMiddleWare = append(chainedMiddleWare, mw...)
	return chainedMiddleWare
}

func (s *Server) APIMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.CorsMiddleware,
	}
	chainedMiddleWare = append(chainedMiddleWare, mw...)
	return chainedMiddleWare
}

func (s *Server) StaticMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.RecoverMiddleware,
		s.CacheControlMiddleware,
	}
}

func (s *Server) WWWRedirectMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		// If host starts with www., redirect to non-www
		if strings.HasPrefix(host, "www.") {
			nonWWWHost := strings.TrimPrefix(host, "www.")
			newURL := fmt.Sprintf("https://%s%s", nonWWWHost, r.RequestURI)
			http.Redirect(w, r, newURL, http.StatusMovedPermanently)
			return
		}
		next(w, r)
	}
}

// RequestIDMiddleware tags the request with an id, reusing one set by a proxy,
// and puts a logger carrying it in the request context
func (s *Server) RequestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		logger := log.With().Str("request_id", id).Logger()
		next(w, r.WithContext(logger.WithContext(r.Context())))
	}
}

// statusRecorder remembers the status written so it can be logged
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach Flush on the underlying writer
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		logger := requestLogger(r)
		if s.env == "DEV" {
			logger.Info().Msgf("[%-19s] %s %s%d%s %s", colourMethod(r.Method), r.URL.Path,
				statusColour(rec.status), rec.status, ResetColor, time.Since(start).Round(time.Millisecond))
			return
		}
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) FrameSecurityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Prevent embedding on other sites
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'self'")
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				requestLogger(r).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("recovered from panic")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// CorsMiddleware answers preflights and sets the CORS headers for the JSON endpoints.
// Credentials are only allowed for listed origins, never for "*".
func (s *Server) CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	origins := s.config.GetAllowedOrigins()
	handler := cors.Handler(cors.Options{
		AllowedOrigins:   origins.List(),
		AllowedMethods:   s.config.GetAllowedMethods(),
		AllowedHeaders:   s.config.GetAllowedHeaders(),
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: !origins.IsAllowedOrigin("*"),
		MaxAge:           86400,
	})
	return handler(next).ServeHTTP
}

func (s *Server) CacheControlMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env == "DEV" {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=300, must-revalidate")
		}
		next(w, r)
	}
}

// requestLogger is the logger RequestIDMiddleware stored, or the global one
func requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
