// Package models defines the static content types served by the Content Store.
package models

// CoverageCategory classifies a coverage as mandatory or optional under the reformed SABS.
type CoverageCategory string

const (
	// CategoryMandatory marks coverages every policy must include.
	CategoryMandatory CoverageCategory = "mandatory"
	// CategoryOptional marks coverages the customer may add.
	CategoryOptional CoverageCategory = "optional"
)

// CoverageFilter restricts a coverage listing. It is either FilterAll or a CoverageCategory value.
type CoverageFilter string

// FilterAll lists every coverage.
const FilterAll CoverageFilter = "all"

// CoverageItem describes one accident benefit.
type CoverageItem struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Summary        string           `json:"summary"`
	Description    string           `json:"description"`
	Category       CoverageCategory `json:"category"`
	Group          string           `json:"group"`
	MandatoryLimit string           `json:"mandatory_limit"`
	IncreasedLimit string           `json:"increased_limit,omitempty"`
	Tip            string           `json:"tip"`
	Icon           string           `json:"icon"`
}

// CoverageGroup is a named, ordered bucket of coverages.
type CoverageGroup struct {
	Name  string         `json:"name"`
	Items []CoverageItem `json:"items"`
}

// TimelineStatus is the progress of a timeline milestone.
type TimelineStatus string

const (
	TimelineCompleted TimelineStatus = "completed"
	TimelineCurrent   TimelineStatus = "current"
	TimelineUpcoming  TimelineStatus = "upcoming"
)

// TimelineStep is one milestone of the reform timeline.
type TimelineStep struct {
	Date        string         `json:"date"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      TimelineStatus `json:"status"`
}

// QuizQuestion is one knowledge-check question. ID is 1-based and matches its position.
type QuizQuestion struct {
	ID                int      `json:"id"`
	Prompt            string   `json:"prompt"`
	Options           []string `json:"options"`
	CorrectAnswer     string   `json:"-"`
	FeedbackCorrect   string   `json:"-"`
	FeedbackIncorrect string   `json:"-"`
}

// HasOption reports whether opt is one of the question's options.
func (q QuizQuestion) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// DialogueChoice is the communication style picked in a scenario.
type DialogueChoice string

const (
	// DialogueExplanation explains the benefits without advising.
	DialogueExplanation DialogueChoice = "explanation"
	// DialogueRecommendation recommends specific coverages.
	DialogueRecommendation DialogueChoice = "recommendation"
)

// Scenario is one role-play customer exercise.
type Scenario struct {
	ID                   int      `json:"id"`
	Title                string   `json:"title"`
	Icon                 string   `json:"icon"`
	CustomerProfile      string   `json:"customer_profile"`
	Options              []string `json:"options"`
	CorrectCoverages     []string `json:"-"`
	Explanation          string   `json:"-"`
	ExplanationOption    string   `json:"explanation_option"`
	RecommendationOption string   `json:"recommendation_option"`
}

// HasOption reports whether opt is one of the scenario's candidate coverages.
func (s Scenario) HasOption(opt string) bool {
	for _, o := range s.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// IsCorrectCoverage reports whether opt is one of the coverages the scenario expects.
func (s Scenario) IsCorrectCoverage(opt string) bool {
	for _, o := range s.CorrectCoverages {
		if o == opt {
			return true
		}
	}
	return false
}

// Tab names a panel of the display shell.
type Tab string

const (
	TabOverview  Tab = "overview"
	TabExplorer  Tab = "explorer"
	TabAdvisor   Tab = "advisor"
	TabSummary   Tab = "summary"
	TabReference Tab = "reference"
	TabQuiz      Tab = "quiz"
	TabScenarios Tab = "scenarios"
)

// TabsFor returns the tabs a variant shows, in navigation order.
func TabsFor(v Variant) []Tab {
	switch v {
	case VariantEmployee:
		return []Tab{TabSummary, TabReference, TabQuiz, TabScenarios, TabAdvisor}
	default:
		return []Tab{TabOverview, TabExplorer, TabAdvisor}
	}
}

// TabLabel returns the navigation label of a tab.
func TabLabel(t Tab) string {
	switch t {
	case TabOverview:
		return "The Why & When"
	case TabExplorer:
		return "Coverage Explorer"
	case TabAdvisor:
		return "AI Advisor"
	case TabSummary:
		return "Change Summary"
	case TabReference:
		return "Coverage Reference"
	case TabQuiz:
		return "Knowledge Check"
	case TabScenarios:
		return "Customer Scenarios"
	default:
		return string(t)
	}
}
