package flow

import (
	"errors"
	"testing"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/models"
)

func TestShell_SelectTab(t *testing.T) {
	sh := NewShell(models.VariantConsumer, "", "")
	if sh.Tab() != models.TabOverview || sh.Filter() != models.FilterAll {
		t.Fatalf("unexpected defaults: %s %s", sh.Tab(), sh.Filter())
	}
	if err := sh.SelectTab(models.TabQuiz); !errors.Is(err, ErrUnknownTab) {
		t.Errorf("expected ErrUnknownTab for quiz in consumer variant, got %v", err)
	}
	if err := sh.SelectTab(models.TabAdvisor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active := 0
	for _, tv := range sh.Tabs() {
		if tv.Active {
			active++
			if tv.Tab != models.TabAdvisor {
				t.Errorf("wrong active tab %s", tv.Tab)
			}
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active tab, got %d", active)
	}
}

func TestShell_SetFilter(t *testing.T) {
	sh := NewShell(models.VariantEmployee, models.TabReference, "")
	if err := sh.SetFilter("optional"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sh.Filter() != models.CoverageFilter(models.CategoryOptional) {
		t.Errorf("unexpected filter %s", sh.Filter())
	}
	if err := sh.SetFilter("cheap"); !errors.Is(err, content.ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestNewShell_IgnoresForeignTab(t *testing.T) {
	sh := NewShell(models.VariantEmployee, models.TabExplorer, "bogus")
	if sh.Tab() != models.TabSummary || sh.Filter() != models.FilterAll {
		t.Errorf("expected defaults, got %s %s", sh.Tab(), sh.Filter())
	}
}
