package domain

import (
	"fmt"
	"slices"
	"strconv"
)

// Step is the wizard position. Steps 1..3 ask questions; StepResults shows the recommendation.
type Step int

const (
	Step1 Step = iota + 1
	Step2
	Step3
	StepResults
)

// QuestionCount is the number of question steps.
const QuestionCount = 3

func (s Step) String() string {
	if s == StepResults {
		return "results"
	}
	return fmt.Sprintf("step-%d", int(s))
}

// ElementID returns the id of the panel that renders the step.
func (s Step) ElementID() string {
	if s == StepResults {
		return ElementQuizResults
	}
	return ElementQuizStepPrefix + strconv.Itoa(int(s))
}

// OptionElementID returns the id of the clickable option carrying value at step.
func (s Step) OptionElementID(value string) string {
	return s.ElementID() + "-" + value
}

// IsQuestion reports whether the step asks a question.
func (s Step) IsQuestion() bool {
	return s >= Step1 && s <= Step3
}

// Next returns the step that follows s. StepResults has no successor.
func (s Step) Next() Step {
	if s >= StepResults {
		return StepResults
	}
	return s + 1
}

// Answer keys recorded per step.
const (
	AnswerGoal     = "goal"
	AnswerActivity = "activity"
	AnswerTime     = "time"
)

// Goal answers (step 1).
const (
	GoalWeightLoss = "weight-loss"
	GoalMuscle     = "muscle"
	GoalToning     = "toning"
	GoalEnergy     = "energy"
)

// Activity answers (step 2).
const (
	ActivityBeginner   = "beginner"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very-active"
)

// Time answers (step 3).
const (
	TimeShort    = "short"
	TimeModerate = "moderate"
	TimeLong     = "long"
)

// Question describes one wizard step.
type Question struct {
	Step    Step     `json:"step"`
	Key     string   `json:"key"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Questions is the fixed three-step questionnaire.
var Questions = []Question{
	{
		Step:   Step1,
		Key:    AnswerGoal,
		Prompt: "What is your primary fitness goal?",
		Options: []Option{
			{Value: GoalWeightLoss, Label: "Lose weight"},
			{Value: GoalMuscle, Label: "Build muscle"},
			{Value: GoalToning, Label: "Tone up"},
			{Value: GoalEnergy, Label: "Boost energy"},
		},
	},
	{
		Step:   Step2,
		Key:    AnswerActivity,
		Prompt: "How active are you right now?",
		Options: []Option{
			{Value: ActivityBeginner, Label: "Just getting started"},
			{Value: ActivityModerate, Label: "Moderately active"},
			{Value: ActivityActive, Label: "Active"},
			{Value: ActivityVeryActive, Label: "Very active"},
		},
	},
	{
		Step:   Step3,
		Key:    AnswerTime,
		Prompt: "How much time can you commit per session?",
		Options: []Option{
			{Value: TimeShort, Label: "20-30 minutes"},
			{Value: TimeModerate, Label: "45 minutes"},
			{Value: TimeLong, Label: "60+ minutes"},
		},
	},
}

// QuestionFor returns the question asked at step.
func QuestionFor(step Step) (Question, bool) {
	if !step.IsQuestion() {
		return Question{}, false
	}
	return Questions[int(step)-1], true
}

// Accepts reports whether value is one of the question's options.
func (q Question) Accepts(value string) bool {
	return slices.ContainsFunc(q.Options, func(o Option) bool { return o.Value == value })
}

// QuizAnswers accumulates one answer per completed step. Empty means unset.
type QuizAnswers struct {
	Goal     string `json:"goal,omitempty"`
	Activity string `json:"activity,omitempty"`
	Time     string `json:"time,omitempty"`
}

// Set records value under the key of step, overwriting any previous answer.
func (a *QuizAnswers) Set(step Step, value string) {
	switch step {
	case Step1:
		a.Goal = value
	case Step2:
		a.Activity = value
	case Step3:
		a.Time = value
	}
}

// Get returns the answer recorded for step.
func (a QuizAnswers) Get(step Step) string {
	switch step {
	case Step1:
		return a.Goal
	case Step2:
		return a.Activity
	case Step3:
		return a.Time
	}
	return ""
}

// Complete reports whether every step has an answer.
func (a QuizAnswers) Complete() bool {
	return a.Goal != "" && a.Activity != "" && a.Time != ""
}
