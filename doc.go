/*
Package fitlanding implements the interactive parts of a fitness studio landing page:
a validated contact form that submits to an external collection endpoint, and a
three-step quiz that recommends a training program and prefills the form.

# Concept

The page is headless. Components never touch markup directly; they mutate the
element set they own through view ports (see pkg/ports) and react to events the
host dispatches. The same components therefore run behind a live page model, an
HTTP API or an MCP server.

  - Form Engine (internal/form): per-field rules, a submission state machine
    (idle, submitting, succeeded, failed) and field interaction handlers.
  - Quiz Wizard (internal/quiz): a forward-only step machine with a fixed
    decision table and a one-way hand-off into the form.
  - Site: binds both to one page; parts missing from the page disable only
    their feature.
  - Service: drives the components for stateless hosts, keeping quiz progress
    in a session store (memory, file or redis).

# Usage

	spec := config.DefaultForm()
	pg := page.Landing(spec)

	site := fitlanding.New(ctx, pg, spec,
		fitlanding.WithSubmitter(formspree.New()),
		fitlanding.WithLogger(logger),
	)
	defer site.Close()

	site.OpenQuiz(ctx)
	pg.Dispatch(ports.Event{Type: ports.EventClick, Target: page.OptionID(domain.Step1, domain.GoalMuscle)})
*/
package fitlanding
