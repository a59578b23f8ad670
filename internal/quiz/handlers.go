package quiz

import (
	"context"
	"errors"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

// Attach wires the dialog controls of src to the wizard and returns a func
// that removes every handler.
func (w *Wizard) Attach(src ports.EventSource) ports.DetachFunc {
	ctx := context.Background()
	var detach []ports.DetachFunc
	on := func(target string, h ports.Handler) {
		detach = append(detach, src.On(target, ports.EventClick, h))
	}

	on(domain.ElementQuizOpen, func(ports.Event) { w.Open(ctx) })
	on(domain.ElementQuizClose, func(ports.Event) { w.Close(ctx) })
	on(domain.ElementQuizRestart, func(ports.Event) { w.Restart(ctx) })
	on(domain.ElementQuizAccept, func(ports.Event) {
		if err := w.Accept(ctx); err != nil {
			w.logger.Debug("quiz accept ignored", "err", err)
		}
	})
	for _, q := range domain.Questions {
		for _, opt := range q.Options {
			step, value := q.Step, opt.Value
			on(step.OptionElementID(value), func(ports.Event) {
				err := w.Select(ctx, step, value)
				if err != nil && !errors.Is(err, domain.ErrStepMismatch) {
					w.logger.Warn("quiz selection rejected", "step", step, "value", value, "err", err)
				}
			})
		}
	}

	return func() {
		for _, d := range detach {
			d()
		}
	}
}
