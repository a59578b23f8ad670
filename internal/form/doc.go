// Package form implements the contact Form Engine: per-field validation,
// whole-form validation and the submission lifecycle
// (idle -> submitting -> succeeded | failed -> idle).
package form
