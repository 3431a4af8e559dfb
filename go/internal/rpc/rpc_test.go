package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorResolver(t *testing.T) {
	r := ActorResolver{Default: 1}

	cases := map[string]struct {
		header string
		want   int64
	}{
		"missing":   {"", 1},
		"valid":     {"42", 42},
		"padded":    {" 7 ", 7},
		"malformed": {"abc", 1},
		"negative":  {"-3", 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set(ActorHeader, tc.header)
			}
			assert.Equal(t, tc.want, r.Resolve(h))
		})
	}
}

func TestErrorMapping(t *testing.T) {
	verr := apperr.NewValidationError()
	verr.Add("name", "is required")

	cases := []struct {
		name string
		err  error
		code connect.Code
	}{
		{"validation", verr, connect.CodeInvalidArgument},
		{"conflict", apperr.NewConflict(apperr.ErrDuplicateMembership), connect.CodeAlreadyExists},
		{"guard", &apperr.GuardViolation{TeamID: 1, Conditions: []apperr.GuardCondition{apperr.GuardFutureEvents}}, connect.CodeFailedPrecondition},
		{"not found", fmt.Errorf("team 9: %w", apperr.ErrNotFound), connect.CodeNotFound},
		{"transaction", apperr.NewTransactionFailure("bulk action", errors.New("deadlock detected")), connect.CodeInternal},
		{"unknown", errors.New("pq: connection reset"), connect.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, Error(tc.err).Code())
		})
	}
}

func TestErrorHidesTransactionCause(t *testing.T) {
	ce := Error(apperr.NewTransactionFailure("add player", errors.New("pq: deadlock detected")))
	assert.Equal(t, "add player failed", ce.Message())

	ce = Error(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal error", ce.Message())
}

func TestValidationMetadata(t *testing.T) {
	verr := apperr.NewValidationError()
	verr.Add("division", "must be one of Recreational, Competitive, Elite")

	ce := Error(fmt.Errorf("create team: %w", verr))
	require.Equal(t, connect.CodeInvalidArgument, ce.Code())

	var fields map[string][]string
	require.NoError(t, json.Unmarshal([]byte(ce.Meta().Get(ValidationHeader)), &fields))
	assert.Equal(t, []string{"must be one of Recreational, Competitive, Elite"}, fields["division"])
}

func TestJSONCodec(t *testing.T) {
	type body struct {
		TeamID int64 `json:"team_id"`
	}
	c := JSONCodec{}
	assert.Equal(t, "json", c.Name())

	var b body
	require.NoError(t, c.Unmarshal([]byte(`{"team_id": 4}`), &b))
	assert.Equal(t, int64(4), b.TeamID)

	require.NoError(t, c.Unmarshal(nil, &b))
	assert.Error(t, c.Unmarshal([]byte(`{"team": 4}`), &b))

	data, err := c.Marshal(body{TeamID: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"team_id":5}`, string(data))
}
