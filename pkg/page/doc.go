/*
Package page is a headless model of the landing page.

It holds the elements the Form Engine and the Quiz Wizard mutate (classes,
values, visibility, annotations) and dispatches user events to registered
handlers. It implements ports.FormView, ports.QuizView and ports.EventSource,
so the components run unchanged against it in tests, in the CLI and behind the
HTTP adapter, where its Snapshot is shipped to a thin browser client.
*/
package page
