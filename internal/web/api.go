package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/style"
)

// maxBodyBytes caps API request bodies.
const maxBodyBytes = 1 << 20

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type paletteResponse struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

type createPosterRequest struct {
	Palette string `json:"palette"`
	Style   string `json:"style"`
	Seed    uint64 `json:"seed"`
	Width   int    `json:"width"`
}

type createPosterResponse struct {
	ID            string          `json:"id"`
	Seed          uint64          `json:"seed"`
	StyleFallback bool            `json:"style_fallback"`
	Poster        json.RawMessage `json:"poster"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handlePalettes(w http.ResponseWriter, _ *http.Request) {
	all := palette.All()
	out := make([]paletteResponse, len(all))
	for i, p := range all {
		out[i] = paletteResponse{Name: p.Name, Colors: p.Hex()}
	}
	writeJSON(w, http.StatusOK, out)
}

func handleStyles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, style.All())
}

func (s *Server) handleCreatePoster(w http.ResponseWriter, r *http.Request) {
	var req createPosterRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := s.defaults
	if req.Palette != "" {
		opts.Palette = req.Palette
	}
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.Width != 0 {
		opts.Width = req.Width
	}
	opts.Seed = req.Seed
	opts.Formats = []string{pipeline.FormatJSON}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createPosterResponse{
		ID:            res.ID,
		Seed:          res.Seed,
		StyleFallback: res.StyleFallback,
		Poster:        res.Artifacts[pipeline.FormatJSON],
	})
}

// handlePoster renders a poster image in format from query parameters.
func (s *Server) handlePoster(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.optionsFromQuery(r.URL.Query())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		res, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		h := w.Header()
		h.Set("Content-Type", pipeline.ContentTypes[format])
		h.Set("Cache-Control", "no-store")
		h.Set("X-Poster-Id", res.ID)
		h.Set("X-Poster-Seed", strconv.FormatUint(res.Seed, 10))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
	}
}

// optionsFromQuery overlays query parameters on the server defaults.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	if v := q.Get("palette"); v != "" {
		opts.Palette = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidSeed, err, "invalid seed %q", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid width %q", v)
		}
		opts.Width = width
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	writeAPIError(w, status, string(code), errors.UserMessage(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
