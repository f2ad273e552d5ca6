// Package scoreapi serves a shared high-score table over HTTP.
package scoreapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/KaiqueGovani/microtetris/internal/scores"
	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

const (
	defaultLimit = scores.MaxEntries
	maxLimit     = 100
	maxNameRunes = 32
)

type Server struct {
	r      *chi.Mux
	store  scores.Store
	apiKey string
	log    zerolog.Logger
	now    func() time.Time
}

// New builds the router. When apiKey is not empty every /scores request
// must carry it in X-Api-Key.
func New(store scores.Store, apiKey string, log zerolog.Logger) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  store,
		apiKey: apiKey,
		log:    log,
		now:    time.Now,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Route("/scores", func(r chi.Router) {
		r.Use(s.requireKey)
		r.Get("/", s.handleTop)
		r.Post("/", s.handleRecord)
	})
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Api-Key")), []byte(s.apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxLimit)
	}
	top, err := s.store.Top(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("list scores")
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if top == nil {
		top = []scores.Entry{}
	}
	_ = json.NewEncoder(w).Encode(top)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	var e scores.Entry
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := validate(&e); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if e.When == "" {
		e.When = s.now().UTC().Format(time.RFC3339)
	}
	if err := s.store.Record(r.Context(), e); err != nil {
		s.log.Error().Err(err).Msg("record score")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.log.Info().Str("name", e.Name).Int64("score", e.Score).Msg("score recorded")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e)
}

func validate(e *scores.Entry) error {
	e.Name = strings.TrimSpace(e.Name)
	switch {
	case e.Name == "":
		return errors.New("name_required")
	case utf8.RuneCountInString(e.Name) > maxNameRunes:
		return errors.New("name_too_long")
	case e.Points < 0 || e.Score < 0:
		return errors.New("negative_score")
	case e.Level < 1:
		return errors.New("bad_level")
	case e.Score != (tetris.Score{Points: e.Points, Level: e.Level}).Total():
		return errors.New("score_mismatch")
	}
	if e.When != "" {
		if _, err := time.Parse(time.RFC3339, e.When); err != nil {
			return errors.New("bad_time")
		}
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
