package handler

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dskvich/assistant-chat/pkg/domain"
	"github.com/dskvich/assistant-chat/pkg/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type PageConfig struct {
	Title        string
	Caption      string
	SidebarTitle string
	SidebarText  string
}

type page struct {
	cfg        PageConfig
	keys       KeyChecker
	extensions []string
}

func NewPage(cfg PageConfig, keys KeyChecker, extensions []string) *page {
	return &page{
		cfg:        cfg,
		keys:       keys,
		extensions: extensions,
	}
}

type pageData struct {
	PageConfig
	KeyConfigured     bool
	HasKey            bool
	MissingKeyMessage string
	Accept            string
	Placeholder       string
}

func (p *page) Index(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	data := pageData{
		PageConfig:        p.cfg,
		KeyConfigured:     p.keys.KeyConfigured(),
		HasKey:            p.keys.HasKey(sess),
		MissingKeyMessage: domain.MissingAPIKeyMessage,
		Accept:            strings.Join(p.extensions, ","),
		Placeholder:       "Enter a job description here",
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		slog.ErrorContext(r.Context(), "Rendering index page", logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
