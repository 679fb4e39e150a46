package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/style"
)

// Placeholder is shown until a poster has been generated.
const Placeholder = "Choose style options and click Generate Poster!"

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Palettes    []string
	Styles      []string
	Palette     string
	Style       string
	ImageURL    string
	Seed        uint64
	Error       string
	Placeholder string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r.URL.Query())
	data := indexData{
		Palettes:    palette.Names(),
		Styles:      style.Names(),
		Palette:     opts.Palette,
		Style:       opts.Style,
		Placeholder: Placeholder,
	}
	if data.Palette == "" {
		data.Palette = pipeline.DefaultPalette
	}
	if data.Style == "" {
		data.Style = pipeline.DefaultStyle
	}

	status := http.StatusOK
	if r.URL.Query().Get("generate") != "" {
		if err == nil {
			err = pipeline.ValidatePalette(data.Palette)
		}
		if err != nil {
			status = errors.HTTPStatus(err)
			data.Error = errors.UserMessage(err)
		} else {
			data.Seed = opts.Seed
			if data.Seed == 0 {
				data.Seed = pipeline.NewSeed()
			}
			data.ImageURL = "/poster.png?" + url.Values{
				"palette": {data.Palette},
				"style":   {data.Style},
				"seed":    {strconv.FormatUint(data.Seed, 10)},
			}.Encode()
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
