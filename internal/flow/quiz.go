package flow

import (
	"log/slog"
	"sync"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OptionMark is the presentation state of one quiz option.
type OptionMark string

const (
	MarkSelected          OptionMark = "selected"
	MarkUnselected        OptionMark = "unselected"
	MarkSelectedCorrect   OptionMark = "selected_correct"
	MarkSelectedWrong     OptionMark = "selected_wrong"
	MarkUnselectedCorrect OptionMark = "unselected_correct"
	MarkUnselectedOther   OptionMark = "unselected_other"
)

// ScoreTier bands the final quiz score.
type ScoreTier string

const (
	TierHigh   ScoreTier = "high"
	TierMedium ScoreTier = "medium"
	TierLow    ScoreTier = "low"
)

var tierAssessments = map[ScoreTier]string{
	TierHigh:   "Excellent work! You have a strong grasp of the upcoming reforms and are well-prepared to guide customers through their options.",
	TierMedium: "Good job. You understand the basics, but you might want to review the Coverage Reference section to solidify your knowledge on specific optional benefits.",
	TierLow:    "This is a complex transition. We recommend reviewing the Change Summary and Coverage Reference sections before attempting the quiz again.",
}

// TierFor bands a score: 8 and above is high, 5 and above is medium.
func TierFor(score int) ScoreTier {
	switch {
	case score >= 8:
		return TierHigh
	case score >= 5:
		return TierMedium
	default:
		return TierLow
	}
}

var printer = message.NewPrinter(language.English)

// QuizOptionView is one rendered option.
type QuizOptionView struct {
	Text string     `json:"text"`
	Mark OptionMark `json:"mark"`
}

// QuizResult is the summary shown when the quiz is finished.
type QuizResult struct {
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Tier       ScoreTier `json:"tier"`
	Assessment string    `json:"assessment"`
}

// QuizView is everything needed to render the quiz.
type QuizView struct {
	State       models.QuizState `json:"state"`
	Progress    string           `json:"progress,omitempty"`
	QuestionID  int              `json:"question_id,omitempty"`
	Prompt      string           `json:"prompt,omitempty"`
	Options     []QuizOptionView `json:"options,omitempty"`
	Correct     *bool            `json:"correct,omitempty"`
	Feedback    string           `json:"feedback,omitempty"`
	ActionLabel string           `json:"action_label,omitempty"`
	Score       int              `json:"score"`
	Result      *QuizResult      `json:"result,omitempty"`
}

// QuizSession walks a learner through the knowledge check.
type QuizSession struct {
	mu        sync.Mutex
	questions []models.QuizQuestion
	progress  models.QuizProgress
}

// NewQuizProgress returns the state of an unstarted quiz.
func NewQuizProgress() models.QuizProgress {
	return models.QuizProgress{State: models.QuizAnswering}
}

// NewQuizSession resumes a quiz over questions from saved progress.
func NewQuizSession(questions []models.QuizQuestion, progress models.QuizProgress) *QuizSession {
	if progress.State == "" {
		progress.State = models.QuizAnswering
	}
	return &QuizSession{questions: questions, progress: progress}
}

func (q *QuizSession) current() models.QuizQuestion {
	return q.questions[q.progress.CurrentIndex]
}

// SelectOption picks an answer for the current question.
func (q *QuizSession) SelectOption(opt string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.progress.State != models.QuizAnswering || len(q.questions) == 0 {
		return transitionError("quiz", string(q.progress.State), "select an option")
	}
	if !q.current().HasOption(opt) {
		return ErrUnknownOption
	}
	q.progress.SelectedOption = opt
	return nil
}

// Submit locks in the selection and scores it.
func (q *QuizSession) Submit() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.progress.State != models.QuizAnswering || len(q.questions) == 0 {
		return transitionError("quiz", string(q.progress.State), "submit")
	}
	if q.progress.SelectedOption == "" {
		return ErrNoSelection
	}
	q.progress.State = models.QuizSubmitted
	if q.progress.SelectedOption == q.current().CorrectAnswer {
		q.progress.Score++
	}
	slog.Debug("QuizSession.Submit: answer scored", "question", q.current().ID, "score", q.progress.Score)
	return nil
}

// Next moves past a submitted question, finishing the quiz after the last one.
func (q *QuizSession) Next() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.progress.State != models.QuizSubmitted {
		return transitionError("quiz", string(q.progress.State), "advance")
	}
	q.progress.SelectedOption = ""
	if q.progress.CurrentIndex >= len(q.questions)-1 {
		q.progress.State = models.QuizFinished
		return nil
	}
	q.progress.CurrentIndex++
	q.progress.State = models.QuizAnswering
	return nil
}

// Restart returns to the first question with a zero score.
func (q *QuizSession) Restart() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.progress = NewQuizProgress()
}

// Progress returns the session state for saving.
func (q *QuizSession) Progress() models.QuizProgress {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.progress
}

// View renders the current question or the final result.
func (q *QuizSession) View() QuizView {
	q.mu.Lock()
	defer q.mu.Unlock()
	total := len(q.questions)
	v := QuizView{State: q.progress.State, Score: q.progress.Score}
	if q.progress.State == models.QuizFinished || total == 0 {
		tier := TierFor(q.progress.Score)
		v.Result = &QuizResult{Score: q.progress.Score, Total: total, Tier: tier, Assessment: tierAssessments[tier]}
		return v
	}

	cur := q.current()
	submitted := q.progress.State == models.QuizSubmitted
	v.QuestionID = cur.ID
	v.Prompt = cur.Prompt
	v.Progress = printer.Sprintf("Question %d of %d", cur.ID, total)
	v.Options = make([]QuizOptionView, 0, len(cur.Options))
	for _, opt := range cur.Options {
		v.Options = append(v.Options, QuizOptionView{Text: opt, Mark: markOption(opt, q.progress.SelectedOption, cur.CorrectAnswer, submitted)})
	}
	if submitted {
		correct := q.progress.SelectedOption == cur.CorrectAnswer
		v.Correct = &correct
		if correct {
			v.Feedback = cur.FeedbackCorrect
		} else {
			v.Feedback = cur.FeedbackIncorrect
		}
		v.ActionLabel = "Next Question"
		if q.progress.CurrentIndex == total-1 {
			v.ActionLabel = "Finish Quiz"
		}
	}
	return v
}

func markOption(opt, selected, correct string, submitted bool) OptionMark {
	isSelected := opt == selected
	if !submitted {
		if isSelected {
			return MarkSelected
		}
		return MarkUnselected
	}
	switch {
	case isSelected && opt == correct:
		return MarkSelectedCorrect
	case isSelected:
		return MarkSelectedWrong
	case opt == correct:
		return MarkUnselectedCorrect
	default:
		return MarkUnselectedOther
	}
}
