/*
Package ports defines the driven ports (interfaces) of the landing-page components.

The Form Engine and the Quiz Wizard never touch the page, the network or storage
directly. They own references to views and collaborators expressed here, which
keeps their state machines testable without a live page.

# Key Interfaces

  - FormView / QuizView: The element set each component mutates.
  - EventSource: Handler registration with explicit detach.
  - Submitter: The external form-collection endpoint.
  - Scheduler: Timer-deferred continuations (animation staging).
  - Prefiller: The one-way hand-off from the quiz into the form.
  - StateStore / PreferenceStore: Persistence of quiz sessions and boot flags.
  - DistributedLocker: Cross-replica locking for quiz sessions.
*/
package ports
