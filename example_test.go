package fitlanding_test

import (
	"context"
	"fmt"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/config"
	"github.com/aretw0/fitlanding/pkg/domain"
)

// ExampleService_Answer walks a stateless quiz session to its recommendation.
func ExampleService_Answer() {
	ctx := context.Background()
	svc := fitlanding.NewService(config.DefaultForm())

	qs, err := svc.StartQuiz(ctx)
	if err != nil {
		panic(err)
	}
	for step, value := range []string{domain.GoalEnergy, domain.ActivityModerate, domain.TimeModerate} {
		qs, err = svc.Answer(ctx, qs.SessionID, domain.Step(step+1), value)
		if err != nil {
			panic(err)
		}
	}

	fmt.Println(qs.Step, qs.Recommendation.Program)
	// Output: results Endurance Builder
}

// ExampleService_ValidateContact reports per-field messages without submitting.
func ExampleService_ValidateContact() {
	svc := fitlanding.NewService(config.DefaultForm())

	res, err := svc.ValidateContact(context.Background(), map[string]string{
		domain.FieldName:  "J",
		domain.FieldEmail: "jane@example.com",
	})
	if err != nil {
		panic(err)
	}
	for _, f := range res.Fields {
		if f.Message != "" {
			fmt.Printf("%s: %s\n", f.ID, f.Message)
		}
	}
	// Output:
	// name: Name must be at least 2 characters
	// goals: Fitness Goals is required
	// experience: Experience Level is required
}
