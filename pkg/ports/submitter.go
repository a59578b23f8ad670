package ports

import (
	"context"
	"net/url"
)

// Submission is the payload the Form Engine hands to the network.
type Submission struct {
	Action string
	Method string
	Values url.Values
}

// Submitter delivers a submission to the external form-collection endpoint.
// A nil error means the endpoint reported success.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}
