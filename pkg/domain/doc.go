/*
Package domain contains the core models of the landing-page form and quiz subsystem.

It defines the explicit state machines (form submission lifecycle and quiz steps),
the validation vocabulary and the fixed quiz decision table. This package is kept
pure and free of I/O, following Hexagonal Architecture principles: the page, the
network and persistence are reached only through the interfaces in package ports.

# Key Entities

  - FormField: One input/select/textarea under validation and its validity.
  - SubmissionState: The form submission lifecycle (idle, submitting, succeeded, failed).
  - QuizAnswers: The three recorded wizard responses.
  - QuizSession: The wizard's step tracker, persistable between requests.
  - Recommendation: The decision-table output for a completed quiz.
*/
package domain
