// Package server implements the snippet generation HTTP API.
//
// Routes:
//
//	GET  /targets                    List every target
//	GET  /targets/{target}/options   The option schema of a target
//	POST /targets/{target}/snippet   Generate a snippet for the posted request
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/spec"
)

// maxBodySize is the largest snippet request body accepted, in bytes.
const maxBodySize = 1 << 20

// Server is the HTTP API surface for snippet generation.
type Server struct {
	registry *codegen.Registry
	logger   *log.Logger
	router   chi.Router
}

// SnippetRequest is the body of a snippet generation request.
type SnippetRequest struct {
	// Raw option values, normalised against the target's schema
	Options map[string]any `json:"options,omitempty"`

	// The request to generate a snippet for
	Request spec.Request `json:"request"`
}

// SnippetResponse is the JSON form of a generated snippet, returned when the
// client accepts application/json.
type SnippetResponse struct {
	Target  string `json:"target"`
	Snippet string `json:"snippet"`
}

// New returns a new [Server] generating snippets with the renderers in registry.
func New(registry *codegen.Registry, logger *log.Logger) *Server {
	s := &Server{
		registry: registry,
		logger:   logger,
		router:   chi.NewRouter(),
	}

	s.routes()

	return s
}

// ServeHTTP implements [http.Handler] for [Server].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.router.ServeHTTP(w, r)

	s.logger.Debug(
		"Handled request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Duration("took", time.Since(start)),
	)
}

func (s *Server) routes() {
	r := s.router

	r.Get("/targets", s.handleTargets)
	r.Get("/targets/{target}/options", s.handleOptions)
	r.Post("/targets/{target}/snippet", s.handleSnippet)
}

func (s *Server) handleTargets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Targets())
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	schema, err := s.registry.Options(chi.URLParam(r, "target"))
	if err != nil {
		writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleSnippet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "target")

	renderer, err := s.registry.Lookup(id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	var body SnippetRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snippet request: "+err.Error())
		return
	}

	snippet, err := codegen.Generate(renderer, &body.Request, body.Options)
	if err != nil {
		s.logger.Error("Snippet generation failed", slog.String("target", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	s.logger.Debug(
		"Generated snippet",
		slog.String("target", renderer.Target().ID),
		slog.String("request", body.Request.String()),
		slog.Int("bytes", len(snippet)),
	)

	if acceptsJSON(r) {
		writeJSON(w, http.StatusOK, SnippetResponse{Target: renderer.Target().ID, Snippet: snippet})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, snippet)
}

// acceptsJSON reports whether any media range in the request's Accept headers
// names application/json with a non zero quality.
//
// Wildcards don't count, plain text is the default.
func acceptsJSON(r *http.Request) bool {
	for _, header := range r.Header.Values("Accept") {
		for mediaRange := range strings.SplitSeq(header, ",") {
			mediaType, params, err := mime.ParseMediaType(mediaRange)
			if err != nil || mediaType != "application/json" {
				continue
			}

			quality, ok := params["q"]
			if !ok {
				return true
			}

			if q, err := strconv.ParseFloat(quality, 64); err == nil && q > 0 {
				return true
			}
		}
	}

	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLookupError maps a registry lookup error onto a response.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, codegen.ErrUnknownTarget) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}
