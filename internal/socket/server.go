// Package socket serves the game API on a bare TCP listener, parsing
// HTTP/1.1 requests and writing responses by hand.
package socket

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/text/language"

	"minigames/internal/api"
	"minigames/internal/narrate"
	"minigames/internal/telemetry"
)

const (
	defaultReadTimeout = 10 * time.Second
	maxHeaderBytes     = 16 << 10
)

// Server answers one request per connection and closes it.
type Server struct {
	Service *api.Service
	// Lang is the narration language when a request names none.
	Lang        language.Tag
	ReadTimeout time.Duration
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	log.Printf("listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then waits for
// in-flight connections to finish. It returns nil on cancellation.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	timeout := s.ReadTimeout
	if timeout <= 0 {
		timeout = defaultReadTimeout
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))

	req, err := http.ReadRequest(bufio.NewReader(io.LimitReader(conn, maxHeaderBytes+api.MaxBodyBytes)))
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Printf("%s: read request: %v", conn.RemoteAddr(), err)
			writeJSON(conn, http.StatusBadRequest, api.ErrorView{Error: "malformed HTTP request"})
		}
		return
	}
	defer req.Body.Close()

	start := time.Now()
	reply := s.serve(ctx, req)
	if reply.Body == nil {
		writeResponse(conn, reply.Status, "", nil)
	} else {
		writeJSON(conn, reply.Status, reply.Body)
	}
	log.Printf("%s %s %d %s", req.Method, req.URL.Path, reply.Status, time.Since(start).Round(time.Microsecond))
}

func (s *Server) serve(ctx context.Context, req *http.Request) api.Reply {
	ctx, span := telemetry.Tracer("socket").Start(ctx, req.Method+" "+req.URL.Path)
	defer span.End()

	lang := s.Lang
	q, accept := req.URL.Query().Get(narrate.LangParam), req.Header.Get("Accept-Language")
	if q != "" || accept != "" || lang == language.Und {
		lang = narrate.ResolveTag(q, accept)
	}
	return s.Service.Dispatch(ctx, api.Call{
		Method: req.Method,
		Path:   req.URL.Path,
		Scope:  api.SharedScope,
		Lang:   lang,
		Body:   req.Body,
	})
}

func writeJSON(w io.Writer, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	writeResponse(w, status, "application/json", body)
}

// writeResponse writes a complete HTTP/1.1 response with CORS headers.
func writeResponse(w io.Writer, status int, contentType string, body []byte) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", status, http.StatusText(status))
	headers := map[string]string{
		"Content-Length": fmt.Sprint(len(body)),
		"Connection":     "close",
	}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	for k, v := range api.CORSHeaders {
		headers[k] = v
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, headers[k])
	}
	buf.WriteString("\r\n")
	buf.Write(body)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("write response: %v", err)
	}
}
