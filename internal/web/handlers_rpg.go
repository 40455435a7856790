package web

import (
	"fmt"
	"net/http"
	"net/url"

	"minigames/internal/api"
	"minigames/internal/printout"
)

// POST /api/rpg/create_character
func (s *Server) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	var req api.CreateCharacterRequest
	if err := api.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.Service.CreateCharacter(r.Context(), scope, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GET /api/rpg/characters
func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	views, err := s.Service.ListCharacters(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// DELETE /api/rpg/characters/{name}
func (s *Server) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	if err := s.Service.DeleteCharacter(r.Context(), scope, r.PathValue("name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/rpg/characters/{name}/sheet.pdf
func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	name := r.PathValue("name")
	c, err := s.Service.GetCharacter(r.Context(), scope, name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pdf, err := printout.CharacterSheet(c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, url.PathEscape(c.Name)))
	_, _ = w.Write(pdf)
}

// POST /api/rpg/battle
func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	var req api.BattleRequest
	if err := api.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.Service.Battle(r.Context(), scope, req, s.lang(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/rpg/duel; ?format=pdf returns the printable record.
func (s *Server) handleDuel(w http.ResponseWriter, r *http.Request) {
	scope := s.session(w, r)
	var req api.BattleRequest
	if err := api.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.Service.Duel(r.Context(), scope, req, s.lang(r), 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") != "pdf" {
		writeJSON(w, http.StatusOK, view)
		return
	}
	pdf, err := view.PDF("")
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="duel.pdf"`)
	_, _ = w.Write(pdf)
}
