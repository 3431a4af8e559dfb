package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorCollectsFields(t *testing.T) {
	verr := NewValidationError()
	require.NoError(t, verr.OrNil())

	verr.Add("name", "is required")
	verr.Add("age_group", "must be one of U6..U18, Adult")
	verr.Add("name", "already exists in this season")

	err := verr.OrNil()
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "validation failed: age_group: must be one of U6..U18, Adult; name: is required, already exists in this season", err.Error())
}

func TestValidationErrorMerge(t *testing.T) {
	a := NewValidationError()
	a.Add("division", "bad")
	b := NewValidationError()
	b.Add("division", "worse")
	b.Add("season_id", "is required")

	a.Merge(b)
	a.Merge(nil)
	assert.Equal(t, []string{"bad", "worse"}, a.Fields["division"])
	assert.Len(t, a.Fields, 2)
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"conflict", NewConflict(ErrDuplicateMembership), KindConflict},
		{"wrapped conflict", fmt.Errorf("add player: %w", NewConflict(ErrJerseyConflict, "Jersey #9")), KindConflict},
		{"guard", &GuardViolation{TeamID: 3, Conditions: []GuardCondition{GuardActiveMembers}}, KindGuard},
		{"not found", fmt.Errorf("team 4: %w", ErrNotFound), KindNotFound},
		{"transaction", NewTransactionFailure("update positions", errors.New("deadlock")), KindTransaction},
		{"unknown", errors.New("boom"), KindTransaction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestTransactionFailureHidesCause(t *testing.T) {
	cause := errors.New("pq: could not serialize access")
	err := NewTransactionFailure("bulk action", cause)

	assert.Equal(t, "bulk action failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsDomain(err))
}

func TestConflictUnwrapsSentinel(t *testing.T) {
	err := NewConflict(ErrCoachUnavailable, "coach 7 already coaches team 2")
	assert.ErrorIs(t, err, ErrCoachUnavailable)
	assert.True(t, IsDomain(err))
	assert.Equal(t, "conflict: coach 7 already coaches team 2", err.Error())
}

func TestGuardViolationHas(t *testing.T) {
	err := &GuardViolation{TeamID: 5, Conditions: []GuardCondition{GuardActiveMembers, GuardFutureEvents}}
	assert.True(t, err.Has(GuardFutureEvents))
	assert.Equal(t, "team 5 cannot be archived: active_members, future_events", err.Error())
}
