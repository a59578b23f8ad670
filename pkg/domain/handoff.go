package domain

// goalToFormOption maps a quiz goal to the contact form's goals option.
var goalToFormOption = map[string]string{
	GoalWeightLoss: "weight-loss",
	GoalMuscle:     "muscle-gain",
	GoalToning:     "toning",
	GoalEnergy:     "endurance",
}

// activityToFormOption maps a quiz activity level to the contact form's experience option.
var activityToFormOption = map[string]string{
	ActivityBeginner:   "beginner",
	ActivityModerate:   "beginner",
	ActivityActive:     "intermediate",
	ActivityVeryActive: "advanced",
}

// Prefill is the one-way write the wizard performs into the contact form.
type Prefill struct {
	FieldID string
	Value   string
}

// HandOff returns the form values implied by the answers, in a fixed order
// (goals first, then experience). Unset or unmapped answers are skipped.
func HandOff(a QuizAnswers) []Prefill {
	var out []Prefill
	if v, ok := goalToFormOption[a.Goal]; ok {
		out = append(out, Prefill{FieldID: FieldGoals, Value: v})
	}
	if v, ok := activityToFormOption[a.Activity]; ok {
		out = append(out, Prefill{FieldID: FieldExperience, Value: v})
	}
	return out
}
