package flow

import (
	"sync"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// TabView is one entry of the navigation bar.
type TabView struct {
	Tab    models.Tab `json:"tab"`
	Label  string     `json:"label"`
	Active bool       `json:"active"`
}

// Shell tracks which panel is showing and how the coverage list is filtered.
type Shell struct {
	mu      sync.Mutex
	variant models.Variant
	tab     models.Tab
	filter  models.CoverageFilter
}

// DefaultTab is the first tab of a variant.
func DefaultTab(v models.Variant) models.Tab {
	return models.TabsFor(v)[0]
}

// NewShell restores a shell. Unknown or empty values fall back to the defaults.
func NewShell(v models.Variant, tab models.Tab, filter models.CoverageFilter) *Shell {
	s := &Shell{variant: v, tab: DefaultTab(v), filter: models.FilterAll}
	if hasTab(v, tab) {
		s.tab = tab
	}
	if f, err := content.ParseFilter(string(filter)); err == nil {
		s.filter = f
	}
	return s
}

func hasTab(v models.Variant, tab models.Tab) bool {
	for _, t := range models.TabsFor(v) {
		if t == tab {
			return true
		}
	}
	return false
}

// SelectTab makes tab the active panel.
func (s *Shell) SelectTab(tab models.Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !hasTab(s.variant, tab) {
		return ErrUnknownTab
	}
	s.tab = tab
	return nil
}

// SetFilter changes the coverage filter.
func (s *Shell) SetFilter(raw string) error {
	f, err := content.ParseFilter(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return nil
}

// Tab returns the active tab.
func (s *Shell) Tab() models.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// Filter returns the coverage filter.
func (s *Shell) Filter() models.CoverageFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tabs lists the navigation bar with exactly one active entry.
func (s *Shell) Tabs() []TabView {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabs := models.TabsFor(s.variant)
	out := make([]TabView, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, TabView{Tab: t, Label: models.TabLabel(t), Active: t == s.tab})
	}
	return out
}
