package content

import (
	"errors"
	"testing"

	"github.com/BTreeMap/CoverageGuide/internal/models"
)

func TestNew_BothVariantsValidate(t *testing.T) {
	for _, v := range []models.Variant{models.VariantConsumer, models.VariantEmployee} {
		if _, err := New(v); err != nil {
			t.Errorf("variant %s: unexpected error: %v", v, err)
		}
	}
	if _, err := New("broker"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestListCoverages_Mandatory(t *testing.T) {
	s := MustNew(models.VariantConsumer)
	got, err := s.ListCoverages(models.CoverageFilter(models.CategoryMandatory))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"med-rehab-attendant", "income-replacement", "death-funeral"}
	if len(got) != len(want) {
		t.Fatalf("expected %d mandatory coverages, got %d", len(want), len(got))
	}
	for i, c := range got {
		if c.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], c.ID)
		}
		if c.Category != models.CategoryMandatory {
			t.Errorf("coverage %s is not mandatory", c.ID)
		}
	}
}

func TestListCoverages_AllPreservesOrder(t *testing.T) {
	s := MustNew(models.VariantEmployee)
	got, err := s.ListCoverages(models.FilterAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(employeeCoverages) {
		t.Fatalf("expected %d coverages, got %d", len(employeeCoverages), len(got))
	}
	for i := range got {
		if got[i].ID != employeeCoverages[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, employeeCoverages[i].ID, got[i].ID)
		}
	}
}

func TestListCoverages_EmptyFilterMeansAll(t *testing.T) {
	s := MustNew(models.VariantConsumer)
	got, err := s.ListCoverages("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(consumerCoverages) {
		t.Errorf("expected %d coverages, got %d", len(consumerCoverages), len(got))
	}
}

func TestListCoverages_UnknownFilter(t *testing.T) {
	s := MustNew(models.VariantConsumer)
	if _, err := s.ListCoverages("cheap"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestListCoverages_ReturnsCopy(t *testing.T) {
	s := MustNew(models.VariantConsumer)
	got, _ := s.ListCoverages(models.FilterAll)
	got[0].Title = "changed"
	again, _ := s.ListCoverages(models.FilterAll)
	if again[0].Title == "changed" {
		t.Error("mutating the result changed the store")
	}
}

func TestGroupedCoverages_DeclaredOrder(t *testing.T) {
	s := MustNew(models.VariantEmployee)
	groups := s.GroupedCoverages()
	wantOrder := []string{GroupHealth, GroupIncome, GroupFamily, GroupExpenses}
	if len(groups) != len(wantOrder) {
		t.Fatalf("expected %d groups, got %d", len(wantOrder), len(groups))
	}
	total := 0
	for i, g := range groups {
		if g.Name != wantOrder[i] {
			t.Errorf("group %d: expected %s, got %s", i, wantOrder[i], g.Name)
		}
		for _, item := range g.Items {
			if item.Group != g.Name {
				t.Errorf("item %s filed under %s", item.ID, g.Name)
			}
		}
		total += len(g.Items)
	}
	if total != len(employeeCoverages) {
		t.Errorf("expected %d grouped items, got %d", len(employeeCoverages), total)
	}
	// Declaration order inside a group.
	health := groups[0].Items
	if health[0].ID != "medical-rehab" || health[1].ID != "attendant-care" {
		t.Errorf("unexpected order in %s: %s, %s", GroupHealth, health[0].ID, health[1].ID)
	}
}

func TestListTimeline(t *testing.T) {
	s := MustNew(models.VariantConsumer)
	tl := s.ListTimeline()
	if len(tl) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(tl))
	}
	if tl[0].Status != models.TimelineCompleted || tl[1].Status != models.TimelineCurrent || tl[2].Status != models.TimelineUpcoming {
		t.Errorf("unexpected statuses: %v %v %v", tl[0].Status, tl[1].Status, tl[2].Status)
	}
}

func TestVariantTables(t *testing.T) {
	consumer := MustNew(models.VariantConsumer)
	if len(consumer.Questions()) != 0 || len(consumer.Scenarios()) != 0 {
		t.Error("consumer variant should not carry quiz or scenarios")
	}
	employee := MustNew(models.VariantEmployee)
	if len(employee.Questions()) != 10 {
		t.Errorf("expected 10 quiz questions, got %d", len(employee.Questions()))
	}
	if len(employee.Scenarios()) != 4 {
		t.Errorf("expected 4 scenarios, got %d", len(employee.Scenarios()))
	}
}

func TestScenarioOptionsHaveSummaries(t *testing.T) {
	s := MustNew(models.VariantEmployee)
	for _, sc := range s.Scenarios() {
		for _, opt := range sc.Options {
			if s.CoverageSummary(opt) == MissingSummary {
				t.Errorf("scenario %d option %q has no coverage summary", sc.ID, opt)
			}
		}
	}
	if s.CoverageSummary("Rental Car") != MissingSummary {
		t.Error("expected fallback summary for unknown title")
	}
}

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name string
		qs   []models.QuizQuestion
		want error
	}{
		{"sparse ids", []models.QuizQuestion{{ID: 2, Options: []string{"a"}, CorrectAnswer: "a"}}, ErrQuestionID},
		{"answer missing", []models.QuizQuestion{{ID: 1, Options: []string{"a", "b"}, CorrectAnswer: "c"}}, ErrAnswerNotInOptions},
		{"duplicate option", []models.QuizQuestion{{ID: 1, Options: []string{"a", "a"}, CorrectAnswer: "a"}}, ErrDuplicateOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateQuestions(tt.qs); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateScenarios(t *testing.T) {
	two := models.Scenario{ID: 1, Options: []string{"a", "b", "c"}, CorrectCoverages: []string{"a", "b"}}
	if err := ValidateScenarios([]models.Scenario{two}); !errors.Is(err, ErrCorrectCoverageSize) {
		t.Errorf("expected ErrCorrectCoverageSize, got %v", err)
	}
	outside := models.Scenario{ID: 1, Options: []string{"a", "b", "c"}, CorrectCoverages: []string{"a", "b", "z"}}
	if err := ValidateScenarios([]models.Scenario{outside}); !errors.Is(err, ErrCoverageNotInOption) {
		t.Errorf("expected ErrCoverageNotInOption, got %v", err)
	}
}

func TestLabels(t *testing.T) {
	if got := CategoryLabel(models.CategoryMandatory); got != "Mandatory" {
		t.Errorf("expected Mandatory, got %q", got)
	}
	if got := FilterLabel(models.FilterAll); got != "All Coverages" {
		t.Errorf("expected All Coverages, got %q", got)
	}
	if got := FilterLabel(models.CoverageFilter(models.CategoryOptional)); got != "Optional" {
		t.Errorf("expected Optional, got %q", got)
	}
}
