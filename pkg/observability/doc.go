/*
Package observability turns component lifecycle hooks into logs and metrics.

Both the Form Engine and the Quiz Wizard accept domain.LifecycleHooks; this
package provides ready-made hook sets: structured slog audit lines and
Prometheus counters/histograms. Merge them to get both.
*/
package observability
