package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/presentation/tui"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("stdin is not a terminal, pass the choices with --answers")

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the fitness quiz in the terminal",
	Long: `Walks through the three quiz steps and prints the recommended program.
Progress is stored in the configured session store, so --session resumes an
earlier quiz. --answers takes the choices as option values or numbers, e.g.
--answers energy,active,long.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sessionID, _ := cmd.Flags().GetString("session")
		answers, _ := cmd.Flags().GetStringSlice("answers")
		accept, _ := cmd.Flags().GetBool("accept")
		visitor, _ := cmd.Flags().GetString("visitor")

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if len(answers) == 0 && !interactive {
			return errNoTerminal
		}

		b, err := openBackend(cfg, logger, visitor)
		if err != nil {
			return err
		}
		defer b.close()
		svc := newService(cfg, logger, b, nil)

		runner := &quizRunner{
			svc:         svc,
			in:          bufio.NewReader(cmd.InOrStdin()),
			out:         cmd.OutOrStdout(),
			render:      tui.NewRenderer(svc.Preferences(cmd.Context()).Theme),
			scripted:    answers,
			interactive: interactive && len(answers) == 0,
		}
		if interactive {
			tui.PrintBanner(runner.out)
		}
		return runner.run(cmd.Context(), sessionID, accept)
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.Flags().StringP("session", "s", "", "Resume the quiz session with this id")
	quizCmd.Flags().StringSlice("answers", nil, "Choices for the remaining steps (values or numbers)")
	quizCmd.Flags().Bool("accept", false, "Prefill the contact form with the recommendation")
	quizCmd.Flags().String("visitor", defaultVisitor, "Visitor id for stored preferences")
}

type quizRunner struct {
	svc         *fitlanding.Service
	in          *bufio.Reader
	out         io.Writer
	render      tui.Renderer
	scripted    []string
	interactive bool
}

func (r *quizRunner) run(ctx context.Context, sessionID string, accept bool) error {
	var (
		qs  *domain.QuizSession
		err error
	)
	if sessionID != "" {
		qs, err = r.svc.Quiz(ctx, sessionID)
	} else {
		qs, err = r.svc.StartQuiz(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, tui.Faint("session "+qs.SessionID))

	for !qs.Completed {
		q, ok := domain.QuestionFor(qs.Step)
		if !ok {
			return fmt.Errorf("session %s is at %s without a recommendation", qs.SessionID, qs.Step)
		}
		r.print(tui.QuestionMarkdown(q))

		value, err := r.choose(q)
		if err != nil {
			return err
		}
		if qs, err = r.svc.Answer(ctx, qs.SessionID, q.Step, value); err != nil {
			return err
		}
	}

	if qs.Recommendation != nil {
		r.print(tui.RecommendationMarkdown(*qs.Recommendation))
	}

	if !accept && r.interactive {
		accept = r.confirm("Prefill the contact form with this program? [y/N] ")
	}
	if !accept {
		return nil
	}

	res, err := r.svc.AcceptQuiz(ctx, qs.SessionID)
	if err != nil {
		return err
	}
	for _, p := range res.Prefills {
		fmt.Fprintf(r.out, "%-12s %s\n", p.FieldID, tui.Success(p.Value))
	}
	return nil
}

// choose reads the answer for q. Scripted answers are consumed in order;
// an invalid scripted answer is an error, an invalid typed one is asked again.
func (r *quizRunner) choose(q domain.Question) (string, error) {
	if !r.interactive {
		if len(r.scripted) == 0 {
			return "", fmt.Errorf("no answer for step %d", int(q.Step))
		}
		raw := r.scripted[0]
		r.scripted = r.scripted[1:]
		value, ok := parseChoice(q, raw)
		if !ok {
			return "", fmt.Errorf("step %d: %w: %q", int(q.Step), domain.ErrUnknownOption, raw)
		}
		return value, nil
	}

	for {
		fmt.Fprint(r.out, "> ")
		line, err := r.in.ReadString('\n')
		if value, ok := parseChoice(q, line); ok {
			return value, nil
		}
		if err != nil {
			return "", err
		}
		fmt.Fprintln(r.out, tui.Failure(fmt.Sprintf("choose 1-%d or one of the listed values", len(q.Options))))
	}
}

func (r *quizRunner) confirm(prompt string) bool {
	fmt.Fprint(r.out, prompt)
	line, _ := r.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (r *quizRunner) print(markdown string) {
	out, err := r.render(markdown)
	if err != nil {
		out = markdown
	}
	fmt.Fprint(r.out, out)
}

// parseChoice accepts a 1-based option number or an option value.
func parseChoice(q domain.Question, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > len(q.Options) {
			return "", false
		}
		return q.Options[n-1].Value, true
	}
	if q.Accepts(raw) {
		return raw, true
	}
	return "", false
}
