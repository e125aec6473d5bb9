// Package content provides the immutable Content Store for CoverageGuide.
//
// Coverage, timeline, quiz and scenario tables are compiled into the binary, validated once when a
// Store is built, and only ever handed out as copies.
package content

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RequiredScenarioCoverages is the number of coverages every scenario expects the learner to pick.
const RequiredScenarioCoverages = 3

// MissingSummary is returned by CoverageSummary when no coverage has the given title.
const MissingSummary = "Benefit explanation currently unavailable."

// ErrUnknownFilter is returned when a coverage filter is neither "all" nor a known category.
var ErrUnknownFilter = errors.New("unknown coverage filter")

var titleCaser = cases.Title(language.English)

// Store serves the static content of one variant.
type Store struct {
	variant   models.Variant
	coverages []models.CoverageItem
	groups    []string
	timeline  []models.TimelineStep
	questions []models.QuizQuestion
	scenarios []models.Scenario
}

// New returns the Content Store for a variant. The quiz and scenario tables are only part of the
// employee variant.
func New(variant models.Variant) (*Store, error) {
	slog.Debug("content.New: building content store", "variant", variant)
	var s *Store
	switch variant {
	case models.VariantConsumer:
		s = &Store{variant: variant, coverages: consumerCoverages, groups: benefitGroups, timeline: consumerTimeline}
	case models.VariantEmployee:
		s = &Store{variant: variant, coverages: employeeCoverages, groups: benefitGroups, timeline: employeeTimeline, questions: quizQuestions, scenarios: scenarios}
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	if err := s.Validate(); err != nil {
		slog.Error("content.New: content tables failed validation", "variant", variant, "error", err)
		return nil, err
	}
	slog.Debug("content.New: content store ready", "variant", variant, "coverages", len(s.coverages), "questions", len(s.questions), "scenarios", len(s.scenarios))
	return s, nil
}

// MustNew is like New but panics on invalid tables.
func MustNew(variant models.Variant) *Store {
	s, err := New(variant)
	if err != nil {
		panic(fmt.Sprintf("content: %v", err))
	}
	return s
}

// Variant returns the variant the store serves.
func (s *Store) Variant() models.Variant {
	return s.variant
}

// ParseFilter validates a filter value. An empty value means FilterAll.
func ParseFilter(raw string) (models.CoverageFilter, error) {
	switch f := models.CoverageFilter(raw); f {
	case "", models.FilterAll:
		return models.FilterAll, nil
	case models.CoverageFilter(models.CategoryMandatory), models.CoverageFilter(models.CategoryOptional):
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
	}
}

// ListCoverages returns coverages matching filter in declaration order.
func (s *Store) ListCoverages(filter models.CoverageFilter) ([]models.CoverageItem, error) {
	f, err := ParseFilter(string(filter))
	if err != nil {
		return nil, err
	}
	out := make([]models.CoverageItem, 0, len(s.coverages))
	for _, c := range s.coverages {
		if f == models.FilterAll || models.CoverageFilter(c.Category) == f {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListTimeline returns the timeline in presentation order.
func (s *Store) ListTimeline() []models.TimelineStep {
	return append([]models.TimelineStep(nil), s.timeline...)
}

// GroupedCoverages buckets coverages by group, keeping the declared group order and the
// declaration order inside each group. Empty groups are omitted.
func (s *Store) GroupedCoverages() []models.CoverageGroup {
	byGroup := make(map[string][]models.CoverageItem, len(s.groups))
	for _, c := range s.coverages {
		byGroup[c.Group] = append(byGroup[c.Group], c)
	}
	out := make([]models.CoverageGroup, 0, len(s.groups))
	for _, g := range s.groups {
		if items := byGroup[g]; len(items) > 0 {
			out = append(out, models.CoverageGroup{Name: g, Items: items})
		}
	}
	return out
}

// Questions returns the quiz in order.
func (s *Store) Questions() []models.QuizQuestion {
	return append([]models.QuizQuestion(nil), s.questions...)
}

// Scenarios returns the role-play scenarios in order.
func (s *Store) Scenarios() []models.Scenario {
	return append([]models.Scenario(nil), s.scenarios...)
}

// CoverageSummary returns the summary of the coverage with the given title.
func (s *Store) CoverageSummary(title string) string {
	for _, c := range s.coverages {
		if c.Title == title {
			return c.Summary
		}
	}
	return MissingSummary
}

// CategoryLabel returns the display label of a category, e.g. "Mandatory".
func CategoryLabel(c models.CoverageCategory) string {
	return titleCaser.String(string(c))
}

// FilterLabel returns the display label of a filter.
func FilterLabel(f models.CoverageFilter) string {
	if f == models.FilterAll || f == "" {
		return "All Coverages"
	}
	return CategoryLabel(models.CoverageCategory(f))
}
