package flow

import (
	"log/slog"
	"sync"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// RequiredSelections is the number of coverages a learner picks per scenario.
const RequiredSelections = 3

// CoverageSummarizer looks up the summary of a coverage by title.
type CoverageSummarizer interface {
	CoverageSummary(title string) string
}

// CoverageReviewItem is one coverage on the results step.
type CoverageReviewItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Selected bool   `json:"selected"`
}

// ScenarioReview compares the learner's picks with the expected coverages.
type ScenarioReview struct {
	IsExactMatch bool                 `json:"is_exact_match"`
	Recommended  []CoverageReviewItem `json:"recommended"`
	Others       []CoverageReviewItem `json:"others"`
	Explanation  string               `json:"explanation"`
}

// ComplianceFeedback is the verdict on the chosen dialogue.
type ComplianceFeedback struct {
	Choice    models.DialogueChoice `json:"choice"`
	Compliant bool                  `json:"compliant"`
	Verdict   string                `json:"verdict"`
	Message   string                `json:"message"`
}

var complianceFeedback = map[models.DialogueChoice]ComplianceFeedback{
	models.DialogueExplanation: {
		Choice:    models.DialogueExplanation,
		Compliant: true,
		Verdict:   "Match Successful",
		Message:   "Excellent choice. You provided a clear explanation of the benefits available to them while explicitly stating that you cannot advise on the final selection. This protects both the customer's autonomy and the company's regulatory standing.",
	},
	models.DialogueRecommendation: {
		Choice:    models.DialogueRecommendation,
		Compliant: false,
		Verdict:   "Compliance Failure",
		Message:   "Caution: In your response, you recommended specific coverages. Our role is strictly limited to explaining coverage definitions and levels. Recommending products is a regulated activity that must be handled by licensed advisors.",
	},
}

// ScenarioView is everything needed to render the current scenario.
type ScenarioView struct {
	Index           int                  `json:"index"`
	Total           int                  `json:"total"`
	Scenario        models.Scenario      `json:"scenario"`
	Step            models.ScenarioStep  `json:"step"`
	SelectedOptions []string             `json:"selected_options"`
	SelectionLabel  string               `json:"selection_label"`
	Review          *ScenarioReview      `json:"review,omitempty"`
	Feedback        *ComplianceFeedback  `json:"feedback,omitempty"`
	ActionLabel     string               `json:"action_label"`
	Portrait        PortraitView         `json:"portrait"`
}

// ScenarioSession walks a learner through the role-play scenarios.
type ScenarioSession struct {
	mu        sync.Mutex
	scenarios []models.Scenario
	summaries CoverageSummarizer
	progress  models.ScenarioProgress
	image     string
}

// NewScenarioProgress returns the state of the first scenario before any selection.
func NewScenarioProgress() models.ScenarioProgress {
	return models.ScenarioProgress{Step: models.StepSelection, Portrait: models.PortraitState{Status: models.PortraitIdle}}
}

// NewScenarioSession resumes the scenarios from saved progress.
func NewScenarioSession(scenarios []models.Scenario, summaries CoverageSummarizer, progress models.ScenarioProgress) *ScenarioSession {
	if progress.Step == "" {
		progress.Step = models.StepSelection
	}
	if progress.Portrait.Status == "" {
		progress.Portrait.Status = models.PortraitIdle
	}
	progress.SelectedOptions = append([]string(nil), progress.SelectedOptions...)
	return &ScenarioSession{scenarios: scenarios, summaries: summaries, progress: progress}
}

func (s *ScenarioSession) current() models.Scenario {
	return s.scenarios[s.progress.CurrentIndex]
}

func (s *ScenarioSession) reject(action string) error {
	return transitionError("scenario", string(s.progress.Step), action)
}

func (s *ScenarioSession) isSelected(opt string) bool {
	for _, o := range s.progress.SelectedOptions {
		if o == opt {
			return true
		}
	}
	return false
}

// ToggleOption adds or removes a coverage from the selection.
func (s *ScenarioSession) ToggleOption(opt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepSelection {
		return s.reject("toggle an option")
	}
	if !s.current().HasOption(opt) {
		return ErrUnknownOption
	}
	for i, o := range s.progress.SelectedOptions {
		if o == opt {
			s.progress.SelectedOptions = append(s.progress.SelectedOptions[:i], s.progress.SelectedOptions[i+1:]...)
			return nil
		}
	}
	s.progress.SelectedOptions = append(s.progress.SelectedOptions, opt)
	return nil
}

// ProceedToResults moves to the results step once exactly three coverages are selected.
func (s *ScenarioSession) ProceedToResults() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepSelection {
		return s.reject("show results")
	}
	if len(s.progress.SelectedOptions) != RequiredSelections {
		return ErrSelectionIncomplete
	}
	s.progress.Step = models.StepCoverageResults
	return nil
}

// Review compares the selection with the scenario's expected coverages.
func (s *ScenarioSession) Review() (ScenarioReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepCoverageResults {
		return ScenarioReview{}, s.reject("review")
	}
	return s.review(), nil
}

func (s *ScenarioSession) review() ScenarioReview {
	sc := s.current()
	r := ScenarioReview{Explanation: sc.Explanation, IsExactMatch: len(s.progress.SelectedOptions) == len(sc.CorrectCoverages)}
	for _, o := range s.progress.SelectedOptions {
		if !sc.IsCorrectCoverage(o) {
			r.IsExactMatch = false
		}
	}
	for _, opt := range sc.Options {
		item := CoverageReviewItem{Title: opt, Summary: s.summary(opt), Selected: s.isSelected(opt)}
		if sc.IsCorrectCoverage(opt) {
			r.Recommended = append(r.Recommended, item)
		} else {
			r.Others = append(r.Others, item)
		}
	}
	return r
}

func (s *ScenarioSession) summary(title string) string {
	if s.summaries == nil {
		return content.MissingSummary
	}
	return s.summaries.CoverageSummary(title)
}

// ProceedToDialogue moves from the results to the dialogue choice.
func (s *ScenarioSession) ProceedToDialogue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepCoverageResults {
		return s.reject("open the dialogue")
	}
	s.progress.Step = models.StepDialogue
	return nil
}

// ChooseDialogue records how the learner answers the customer.
func (s *ScenarioSession) ChooseDialogue(choice models.DialogueChoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepDialogue {
		return s.reject("choose a dialogue")
	}
	if _, ok := complianceFeedback[choice]; !ok {
		return ErrUnknownChoice
	}
	s.progress.DialogueChoice = choice
	s.progress.Step = models.StepFeedback
	slog.Debug("ScenarioSession.ChooseDialogue: dialogue chosen", "scenario", s.current().ID, "choice", choice)
	return nil
}

// Feedback returns the compliance verdict. It depends only on the dialogue choice.
func (s *ScenarioSession) Feedback() (ComplianceFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepFeedback {
		return ComplianceFeedback{}, s.reject("show feedback")
	}
	return complianceFeedback[s.progress.DialogueChoice], nil
}

// Advance moves to the next scenario, wrapping to the first after the last.
func (s *ScenarioSession) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 || s.progress.Step != models.StepFeedback {
		return s.reject("advance")
	}
	s.progress.CurrentIndex = (s.progress.CurrentIndex + 1) % len(s.scenarios)
	s.progress.SelectedOptions = nil
	s.progress.DialogueChoice = ""
	s.progress.Step = models.StepSelection
	return nil
}

// Progress returns the session state for saving.
func (s *ScenarioSession) Progress() models.ScenarioProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.progress
	p.SelectedOptions = append([]string(nil), s.progress.SelectedOptions...)
	return p
}

// View renders the current step.
func (s *ScenarioSession) View() ScenarioView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := ScenarioView{
		Index:           s.progress.CurrentIndex,
		Total:           len(s.scenarios),
		Step:            s.progress.Step,
		SelectedOptions: append([]string{}, s.progress.SelectedOptions...),
		Portrait:        PortraitView{PortraitState: s.progress.Portrait, Image: s.image},
	}
	if len(s.scenarios) == 0 {
		return v
	}
	v.Scenario = s.current()
	v.SelectionLabel = printer.Sprintf("Selected %d of %d", len(s.progress.SelectedOptions), RequiredSelections)
	v.ActionLabel = "Next Scenario"
	if s.progress.CurrentIndex == len(s.scenarios)-1 {
		v.ActionLabel = "Review Complete"
	}
	switch s.progress.Step {
	case models.StepCoverageResults:
		r := s.review()
		v.Review = &r
	case models.StepFeedback:
		f := complianceFeedback[s.progress.DialogueChoice]
		v.Feedback = &f
	}
	return v
}
