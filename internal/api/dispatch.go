package api

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/text/language"
)

// CORSHeaders are attached to every JSON response by the adapters.
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// Call is a transport-neutral request for adapters without their own router.
type Call struct {
	Method string
	Path   string
	Scope  string
	Lang   language.Tag
	Body   io.Reader
}

// Reply is the status and JSON body answering a Call. Body is nil for
// preflight replies.
type Reply struct {
	Status int
	Body   any
}

// Dispatch routes a Call to the matching service operation.
func (s *Service) Dispatch(ctx context.Context, c Call) Reply {
	if c.Method == http.MethodOptions {
		return Reply{Status: http.StatusOK}
	}
	if c.Body == nil {
		c.Body = http.NoBody
	}

	route, ok := routes[c.Path]
	if !ok {
		return Reply{Status: http.StatusNotFound, Body: ErrorView{Error: "Not found"}}
	}
	if route.method != c.Method {
		return Reply{Status: http.StatusMethodNotAllowed, Body: ErrorView{Error: "method not allowed"}}
	}
	body, err := route.call(ctx, s, c)
	if err != nil {
		return Reply{Status: StatusCode(err), Body: ErrorBody(err)}
	}
	return Reply{Status: http.StatusOK, Body: body}
}

type route struct {
	method string
	call   func(ctx context.Context, s *Service, c Call) (any, error)
}

var routes = map[string]route{
	"/healthz": {http.MethodGet, func(context.Context, *Service, Call) (any, error) {
		return map[string]string{"status": "ok"}, nil
	}},
	"/api/rpg/create_character": {http.MethodPost, func(ctx context.Context, s *Service, c Call) (any, error) {
		var req CreateCharacterRequest
		if err := Decode(c.Body, &req); err != nil {
			return nil, err
		}
		return s.CreateCharacter(ctx, c.Scope, req)
	}},
	"/api/rpg/characters": {http.MethodGet, func(ctx context.Context, s *Service, c Call) (any, error) {
		return s.ListCharacters(ctx, c.Scope)
	}},
	"/api/rpg/battle": {http.MethodPost, func(ctx context.Context, s *Service, c Call) (any, error) {
		var req BattleRequest
		if err := Decode(c.Body, &req); err != nil {
			return nil, err
		}
		return s.Battle(ctx, c.Scope, req, c.Lang)
	}},
	"/api/rpg/duel": {http.MethodPost, func(ctx context.Context, s *Service, c Call) (any, error) {
		var req BattleRequest
		if err := Decode(c.Body, &req); err != nil {
			return nil, err
		}
		return s.Duel(ctx, c.Scope, req, c.Lang, 0)
	}},
	"/api/cave/init": {http.MethodPost, func(ctx context.Context, s *Service, c Call) (any, error) {
		return s.InitCave(ctx, c.Scope)
	}},
	"/api/cave/make_choice": {http.MethodPost, func(ctx context.Context, s *Service, c Call) (any, error) {
		var req ChoiceRequest
		if err := Decode(c.Body, &req); err != nil {
			return nil, err
		}
		return s.MakeChoice(ctx, c.Scope, req)
	}},
}
