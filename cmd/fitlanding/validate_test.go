package main

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/config"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]string {
	return map[string]string{
		domain.FieldName:       "Jane Doe",
		domain.FieldEmail:      "jane@example.com",
		domain.FieldGoals:      "toning",
		domain.FieldExperience: "beginner",
	}
}

func TestRunValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid", func(t *testing.T) {
		svc := fitlanding.NewService(config.DefaultForm())
		var out bytes.Buffer

		err := runValidate(ctx, svc, map[string]string{domain.FieldName: "J"}, false, &out)
		assert.ErrorIs(t, err, errInvalidContact)
		assert.Contains(t, out.String(), "Name must be at least 2 characters")
		assert.Contains(t, out.String(), "Email Address is required")
		assert.Contains(t, out.String(), "first invalid field: name")
	})

	t.Run("valid without submit", func(t *testing.T) {
		var calls atomic.Int32
		svc := fitlanding.NewService(config.DefaultForm(), fitlanding.WithSubmitter(ports.SubmitterFunc(
			func(context.Context, ports.Submission) error { calls.Add(1); return nil },
		)))
		var out bytes.Buffer

		require.NoError(t, runValidate(ctx, svc, validValues(), false, &out))
		assert.Contains(t, out.String(), "ok")
		assert.Zero(t, calls.Load())
	})

	t.Run("submit", func(t *testing.T) {
		var got ports.Submission
		svc := fitlanding.NewService(config.DefaultForm(), fitlanding.WithSubmitter(ports.SubmitterFunc(
			func(_ context.Context, s ports.Submission) error { got = s; return nil },
		)))
		var out bytes.Buffer

		require.NoError(t, runValidate(ctx, svc, validValues(), true, &out))
		assert.Contains(t, out.String(), "submitted to "+config.DefaultForm().Action)
		assert.Equal(t, "jane@example.com", got.Values.Get(domain.FieldEmail))
	})

	t.Run("endpoint failure", func(t *testing.T) {
		svc := fitlanding.NewService(config.DefaultForm(), fitlanding.WithSubmitter(ports.SubmitterFunc(
			func(context.Context, ports.Submission) error { return errors.New("connection refused") },
		)))
		var out bytes.Buffer

		err := runValidate(ctx, svc, validValues(), true, &out)
		assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
		assert.Contains(t, out.String(), domain.SubmissionBannerText)
		assert.NotContains(t, out.String(), "connection refused")
	})
}
