package content

import (
	"errors"
	"fmt"

	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// Error variables for table validation
var (
	ErrDuplicateCoverage   = errors.New("duplicate coverage id")
	ErrUnknownGroup        = errors.New("coverage references undeclared group")
	ErrInvalidCategory     = errors.New("invalid coverage category")
	ErrInvalidTimeline     = errors.New("invalid timeline status")
	ErrQuestionID          = errors.New("quiz question ids must be dense and 1-based")
	ErrDuplicateOption     = errors.New("duplicate option")
	ErrAnswerNotInOptions  = errors.New("correct answer is not one of the options")
	ErrCorrectCoverageSize = errors.New("scenario must expect exactly three coverages")
	ErrCoverageNotInOption = errors.New("scenario correct coverage is not one of its options")
)

// Validate checks every invariant of the store's tables.
func (s *Store) Validate() error {
	if err := validateCoverages(s.coverages, s.groups); err != nil {
		return err
	}
	for _, step := range s.timeline {
		switch step.Status {
		case models.TimelineCompleted, models.TimelineCurrent, models.TimelineUpcoming:
		default:
			return fmt.Errorf("%w: %q on %q", ErrInvalidTimeline, step.Status, step.Title)
		}
	}
	if err := ValidateQuestions(s.questions); err != nil {
		return err
	}
	return ValidateScenarios(s.scenarios)
}

func validateCoverages(items []models.CoverageItem, groups []string) error {
	declared := make(map[string]bool, len(groups))
	for _, g := range groups {
		declared[g] = true
	}
	seen := make(map[string]bool, len(items))
	for _, c := range items {
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateCoverage, c.ID)
		}
		seen[c.ID] = true
		if c.Category != models.CategoryMandatory && c.Category != models.CategoryOptional {
			return fmt.Errorf("%w: %q on %s", ErrInvalidCategory, c.Category, c.ID)
		}
		if !declared[c.Group] {
			return fmt.Errorf("%w: %q on %s", ErrUnknownGroup, c.Group, c.ID)
		}
	}
	return nil
}

// ValidateQuestions checks ids, option uniqueness and that each correct answer is an option.
func ValidateQuestions(questions []models.QuizQuestion) error {
	for i, q := range questions {
		if q.ID != i+1 {
			return fmt.Errorf("%w: position %d has id %d", ErrQuestionID, i+1, q.ID)
		}
		if err := uniqueOptions(q.Options); err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
		if !q.HasOption(q.CorrectAnswer) {
			return fmt.Errorf("question %d: %w", q.ID, ErrAnswerNotInOptions)
		}
	}
	return nil
}

// ValidateScenarios checks that each scenario expects exactly three of its own options.
func ValidateScenarios(list []models.Scenario) error {
	for _, sc := range list {
		if err := uniqueOptions(sc.Options); err != nil {
			return fmt.Errorf("scenario %d: %w", sc.ID, err)
		}
		if err := uniqueOptions(sc.CorrectCoverages); err != nil {
			return fmt.Errorf("scenario %d: %w", sc.ID, err)
		}
		if len(sc.CorrectCoverages) != RequiredScenarioCoverages {
			return fmt.Errorf("scenario %d: %w", sc.ID, ErrCorrectCoverageSize)
		}
		for _, c := range sc.CorrectCoverages {
			if !sc.HasOption(c) {
				return fmt.Errorf("scenario %d: %w: %q", sc.ID, ErrCoverageNotInOption, c)
			}
		}
	}
	return nil
}

func uniqueOptions(opts []string) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if seen[o] {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, o)
		}
		seen[o] = true
	}
	return nil
}
