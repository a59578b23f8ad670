package domain

import "strings"

// Program names produced by the decision table.
const (
	ProgramBeginnerFatLoss = "Beginner Fat Loss"
	ProgramAdvancedFatBurn = "Advanced Fat Burn"
	ProgramMuscleBuilding  = "Muscle Building Focus"
	ProgramBodySculpting   = "Body Sculpting"
	ProgramEndurance       = "Endurance Builder"
)

var programDescriptions = map[string]string{
	ProgramBeginnerFatLoss: "A gentle, progressive plan that pairs low-impact cardio with foundational strength work so you burn fat while building habits that last.",
	ProgramAdvancedFatBurn: "High-intensity intervals and metabolic conditioning circuits that push an already active body to burn more calories in less time.",
	ProgramMuscleBuilding:  "Structured progressive-overload strength training with nutrition coaching to add lean muscle week after week.",
	ProgramBodySculpting:   "A blend of resistance training and targeted conditioning that tones and defines every major muscle group.",
	ProgramEndurance:       "Cardio and circuit sessions that raise your everyday energy levels and build stamina you can feel.",
}

// Time notes appended to the description.
const (
	NoteShortTime = "This program fits a busy schedule with efficient, focused sessions."
	NoteLongTime  = "You have time for comprehensive workouts that cover strength, conditioning and mobility."
)

// Recommendation is the decision-table output.
type Recommendation struct {
	Program     string `json:"program"`
	Description string `json:"description"`
	TimeNote    string `json:"time_note,omitempty"`
}

// Text renders the description followed by the optional time note.
func (r Recommendation) Text() string {
	if r.TimeNote == "" {
		return r.Description
	}
	return strings.TrimSpace(r.Description + " " + r.TimeNote)
}

// Recommend maps answers to a program. It is deterministic and total:
// an unmatched goal falls through to the endurance program.
func Recommend(a QuizAnswers) Recommendation {
	var program string
	switch a.Goal {
	case GoalWeightLoss:
		if a.Activity == ActivityBeginner {
			program = ProgramBeginnerFatLoss
		} else {
			program = ProgramAdvancedFatBurn
		}
	case GoalMuscle:
		program = ProgramMuscleBuilding
	case GoalToning:
		program = ProgramBodySculpting
	default:
		program = ProgramEndurance
	}

	rec := Recommendation{
		Program:     program,
		Description: programDescriptions[program],
	}
	switch a.Time {
	case TimeShort:
		rec.TimeNote = NoteShortTime
	case TimeLong:
		rec.TimeNote = NoteLongTime
	}
	return rec
}
