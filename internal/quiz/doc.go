// Package quiz implements the three-step fitness quiz wizard.
//
// The wizard moves step-1 -> step-2 -> step-3 -> results. Each selection
// records one answer and, after a short delay, reveals the next panel. The
// delay runs on a ports.Scheduler so hosts decide how time passes: browsers
// and the CLI use real timers, stateless hosts advance immediately and tests
// drive a manual clock.
//
// Once results are shown, Accept hands the answers to the contact form
// through a ports.Prefiller.
package quiz
