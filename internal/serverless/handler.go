// Package serverless adapts the game API to a function-as-a-service event:
// one request in, one response out, no listener.
package serverless

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"minigames/internal/api"
	"minigames/internal/narrate"
	"minigames/internal/telemetry"
)

// Request is the platform-neutral invocation event.
type Request struct {
	Method          string            `json:"method"`
	Path            string            `json:"path"`
	Headers         map[string]string `json:"headers,omitempty"`
	Body            string            `json:"body,omitempty"`
	IsBase64Encoded bool              `json:"isBase64Encoded,omitempty"`
}

// Response is returned to the platform.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Handler answers events against the shared scope.
type Handler struct {
	Service *api.Service
	// Lang is the narration language when an event names none.
	Lang language.Tag
}

// Handle serves one event.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	ctx, span := telemetry.Tracer("serverless").Start(ctx, req.Method+" "+req.Path)
	defer span.End()

	u, err := url.Parse(req.Path)
	if err != nil {
		return respond(http.StatusBadRequest, api.ErrorView{Error: "malformed path"})
	}
	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return respond(http.StatusBadRequest, api.ErrorView{Error: "malformed body encoding"})
		}
		body = string(raw)
	}

	reply := h.Service.Dispatch(ctx, api.Call{
		Method: strings.ToUpper(req.Method),
		Path:   u.Path,
		Scope:  api.SharedScope,
		Lang:   h.lang(u.Query().Get(narrate.LangParam), header(req.Headers, "Accept-Language")),
		Body:   strings.NewReader(body),
	})
	return respond(reply.Status, reply.Body)
}

func (h *Handler) lang(q, accept string) language.Tag {
	if q == "" && accept == "" && h.Lang != language.Und {
		return h.Lang
	}
	return narrate.ResolveTag(q, accept)
}

// header looks a header up case-insensitively; event sources disagree on casing.
func header(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func respond(status int, v any) Response {
	headers := make(map[string]string, len(api.CORSHeaders)+1)
	for k, val := range api.CORSHeaders {
		headers[k] = val
	}
	if v == nil {
		return Response{StatusCode: status, Headers: headers}
	}
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"internal error"}`)
	}
	headers["Content-Type"] = "application/json"
	return Response{StatusCode: status, Headers: headers, Body: string(b)}
}
