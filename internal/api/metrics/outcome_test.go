package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":                  nil,
		"forbidden":           domain.ErrForbidden,
		"unauthenticated":     domain.ErrTokenRevoked,
		"invalid_credentials": domain.ErrPasswordMismatch,
		"conflict":            domain.ErrDuplicateTitle,
		"not_found":           fmt.Errorf("wrapped: %w", domain.ErrPostNotFound),
		"invalid":             fmt.Errorf("%w: title is required", domain.ErrValidation),
		"error":               errors.New("disk full"),
	}
	for want, err := range cases {
		if got := Outcome(err); got != want {
			t.Fatalf("Outcome(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestCountersAreRegistered(t *testing.T) {
	before := testutil.ToFloat64(PostMutationsTotal.WithLabelValues("create", "ok"))
	PostMutationsTotal.WithLabelValues("create", "ok").Inc()
	if got := testutil.ToFloat64(PostMutationsTotal.WithLabelValues("create", "ok")); got != before+1 {
		t.Fatalf("expected counter to advance, got %v", got)
	}
}
