// Package web renders the server-side HTML shell of CoverageGuide.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Disclaimer is shown under every page.
const Disclaimer = "AI Advisor responses are generated automatically for educational purposes and may be inaccurate. They are not insurance advice; please consult a licensed insurance broker about your policy."

var titles = map[models.Variant]string{
	models.VariantConsumer: "Ontario Auto Insurance: Accident Benefit Changes",
	models.VariantEmployee: "SABS Reform Training Guide",
}

// FilterLink is one entry of the coverage filter bar.
type FilterLink struct {
	Filter models.CoverageFilter
	Label  string
	Active bool
}

// page is the data handed to the shell template.
type page struct {
	Title      string
	Variant    models.Variant
	SessionID  string
	Tabs       []flow.TabView
	ActiveTab  models.Tab
	Filters    []FilterLink
	Timeline   []models.TimelineStep
	Coverages  []models.CoverageItem
	Groups     []models.CoverageGroup
	Chat       *flow.ChatView
	Quiz       *flow.QuizView
	Scenario   *flow.ScenarioView
	Disclaimer string
}

// Handler serves the HTML shell.
type Handler struct {
	mgr  *flow.Manager
	tmpl *template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(mgr *flow.Manager) (*Handler, error) {
	tmpl, err := template.New("shell.html").Funcs(template.FuncMap{
		"categoryLabel": content.CategoryLabel,
		"safeURL":       func(s string) template.URL { return template.URL(s) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{mgr: mgr, tmpl: tmpl}, nil
}

// ServeHTTP renders the shell. The session query parameter restores a session's tab and filter;
// tab and filter parameters override them for this render only.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	v := h.mgr.Variant()
	p := page{Title: titles[v], Variant: v, Disclaimer: Disclaimer}

	tab, filter := models.Tab(""), models.CoverageFilter("")
	if id := q.Get("session"); id != "" {
		rec, err := h.mgr.Get(ctx, id)
		switch {
		case err == nil:
			p.SessionID = rec.ID
			tab, filter = rec.Tab, rec.CoverageFilter
		case errors.Is(err, store.ErrNotFound):
			slog.Debug("web.Handler: unknown session, rendering defaults", "sessionID", id)
		default:
			slog.Error("web.Handler: failed to load session", "sessionID", id, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}
	if t := q.Get("tab"); t != "" {
		tab = models.Tab(t)
	}
	if f := q.Get("filter"); f != "" {
		filter = models.CoverageFilter(f)
	}
	shell := flow.NewShell(v, tab, filter)
	p.Tabs = shell.Tabs()
	p.ActiveTab = shell.Tab()

	if err := h.fill(r, &p, shell.Filter()); err != nil {
		slog.Error("web.Handler: failed to build page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, p); err != nil {
		slog.Error("web.Handler: template execution failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("web.Handler: failed to write page", "error", err)
	}
}

func (h *Handler) fill(r *http.Request, p *page, filter models.CoverageFilter) error {
	cs := h.mgr.Content()
	ctx := r.Context()
	switch p.ActiveTab {
	case models.TabOverview, models.TabSummary:
		p.Timeline = cs.ListTimeline()
	case models.TabExplorer:
		items, err := cs.ListCoverages(filter)
		if err != nil {
			return err
		}
		p.Coverages = items
		for _, f := range []models.CoverageFilter{models.FilterAll, models.CoverageFilter(models.CategoryMandatory), models.CoverageFilter(models.CategoryOptional)} {
			p.Filters = append(p.Filters, FilterLink{Filter: f, Label: content.FilterLabel(f), Active: f == filter})
		}
	case models.TabReference:
		p.Groups = cs.GroupedCoverages()
	case models.TabAdvisor:
		if p.SessionID != "" {
			chat, err := h.mgr.Chat(ctx, p.SessionID)
			if err != nil {
				return err
			}
			p.Chat = &chat
		}
	case models.TabQuiz:
		if p.SessionID != "" {
			quiz, err := h.mgr.Quiz(ctx, p.SessionID)
			if err != nil {
				return err
			}
			p.Quiz = &quiz
		}
	case models.TabScenarios:
		if p.SessionID != "" {
			sc, err := h.mgr.Scenario(ctx, p.SessionID)
			if err != nil {
				return err
			}
			p.Scenario = &sc
		}
	}
	return nil
}
