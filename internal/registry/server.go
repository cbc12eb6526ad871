package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"peerid/internal/crypto"
	"peerid/internal/domain"
	"peerid/internal/util/logx"
)

const maxBodyBytes = 64 << 10

// Server serves the identity registry.
type Server struct {
	cfg     *Config
	table   *memoryTable
	limiter *IPRateLimiter
	now     func() time.Time
}

// NewServer returns a registry with an empty in-memory table.
func NewServer(cfg *Config) *Server {
	return &Server{
		cfg:     cfg,
		table:   newMemoryTable(),
		limiter: NewIPRateLimiter(rate.Limit(cfg.AnnounceRate), cfg.AnnounceBurst),
		now:     time.Now,
	}
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.limiter.Close()
}

// Routes builds the HTTP handler with the middleware stack applied.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	r.Use(corsHandler.Handler)

	r.Get("/health", s.handleHealth)

	r.Get("/identities/{key}", s.handleGet)

	writes := r.With(s.limiter.Middleware, s.requireToken)
	writes.Put("/identities/{key}", s.handlePut)
	writes.Post("/identities/{key}", s.handlePost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]any{"status": "ok", "identities": s.table.count()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.table.get(chi.URLParam(r, "key"))
	if !ok {
		respondError(w, NewError(ErrIdentityNotFound))
		return
	}
	respondSuccess(w, e.Info)
}

// handlePut updates an existing entry; unknown keys get 404 so the client
// falls back to POST.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	info, cerr := decodeInfo(r, key)
	if cerr != nil {
		respondError(w, cerr)
		return
	}

	e, ok := s.table.update(key, info, s.now())
	if !ok {
		respondError(w, NewError(ErrIdentityNotFound))
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("public_key", key).Msg("Identity updated")
	respondSuccess(w, e.Info)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	info, cerr := decodeInfo(r, key)
	if cerr != nil {
		respondError(w, cerr)
		return
	}

	e, ok := s.table.create(key, info, s.now())
	if !ok {
		respondError(w, NewError(ErrIdentityExists))
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("public_key", key).Msg("Identity registered")
	respondSuccess(w, e.Info)
}

// requireToken rejects writes whose token was not signed by the route's key
// for this exact method, path and body. The body is buffered for the handler.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Token ")
		if !ok || token == "" {
			respondError(w, NewError(ErrUnauthorized))
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil || len(body) > maxBodyBytes {
			respondError(w, NewError(ErrInvalidParams))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		req := crypto.TokenRequest{Method: r.Method, Path: r.URL.EscapedPath(), Body: body}
		if err := crypto.VerifyToken(key, token, req, s.now(), s.cfg.TokenMaxSkew); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("public_key", key).Msg("Rejected identity token")
			respondError(w, NewError(ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decodeInfo reads the request body and pins its id to key. A body naming a
// different id is rejected.
func decodeInfo(r *http.Request, key string) (domain.Info, *CustomError) {
	var info domain.Info
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Info{}, NewError(ErrInvalidParams)
		}
		return domain.Info{}, NewError(ErrInvalidJSONFormat)
	}
	if id := info.ID(); id != "" && id != key {
		return domain.Info{}, NewError(ErrInvalidParams)
	}
	return domain.NewAssertion(key, info.Profile), nil
}
