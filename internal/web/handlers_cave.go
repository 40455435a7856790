package web

import (
	"errors"
	"log"
	"net/http"

	"minigames/internal/api"
)

// POST /api/cave/init
func (s *Server) handleCaveInit(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	// Only the latest game of a visitor is remembered, so drop the old one.
	if c, err := r.Cookie(caveCookieName); err == nil && c.Value != "" {
		if err := s.Service.EndCave(r.Context(), scope, c.Value); err != nil && !errors.Is(err, api.ErrNotFound) {
			log.Printf("%s %s: end previous game: %v", r.Method, r.URL.Path, err)
		}
	}
	view, err := s.Service.InitCave(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     caveCookieName,
		Value:    view.GameID,
		Path:     "/api/cave",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, view)
}

// GET /api/cave/{id}
func (s *Server) handleCaveGet(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	view, err := s.Service.GetCave(r.Context(), scope, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/cave/make_choice; the game id falls back to the cave cookie.
func (s *Server) handleCaveChoice(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	var req api.ChoiceRequest
	if err := api.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.GameID == "" {
		if c, err := r.Cookie(caveCookieName); err == nil {
			req.GameID = c.Value
		}
	}
	view, err := s.Service.MakeChoice(r.Context(), scope, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
