// Package web serves the game API over net/http with per-visitor sessions.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/text/language"

	"minigames/internal/api"
	"minigames/internal/narrate"
	"minigames/internal/telemetry"
)

type Server struct {
	Service *api.Service
	// Lang is the narration language when a request names none.
	Lang language.Tag
}

const (
	cookieName     = "minigames_sid"
	caveCookieName = "minigames_cave"
)

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/rpg/create_character", s.handleCreateCharacter)
	mux.HandleFunc("GET /api/rpg/characters", s.handleListCharacters)
	mux.HandleFunc("DELETE /api/rpg/characters/{name}", s.handleDeleteCharacter)
	mux.HandleFunc("GET /api/rpg/characters/{name}/sheet.pdf", s.handleSheet)
	mux.HandleFunc("POST /api/rpg/battle", s.handleBattle)
	mux.HandleFunc("POST /api/rpg/duel", s.handleDuel)

	mux.HandleFunc("POST /api/cave/init", s.handleCaveInit)
	mux.HandleFunc("GET /api/cave/{id}", s.handleCaveGet)
	mux.HandleFunc("POST /api/cave/make_choice", s.handleCaveChoice)

	mux.HandleFunc("OPTIONS /", s.handlePreflight)
	return logRequests(withCORS(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// session returns the visitor's scope, issuing a cookie on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if id := s.sessionID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) lang(r *http.Request) language.Tag {
	q, accept := r.URL.Query().Get(narrate.LangParam), r.Header.Get("Accept-Language")
	if q == "" && accept == "" && s.Lang != language.Und {
		return s.Lang
	}
	return narrate.ResolveTag(q, accept)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := api.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, api.ErrorBody(err))
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range api.CORSHeaders {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// logRequests traces every request and logs one line per response.
func logRequests(next http.Handler) http.Handler {
	tracer := telemetry.Tracer("web")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

// ListenAndServe serves Routes on addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on http://localhost%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
