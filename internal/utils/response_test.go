package utils

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewApiResponse_SuccessDerivation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status  int
		success bool
	}{
		{200, true},
		{201, true},
		{299, true},
		{199, false},
		{300, false},
		{400, false},
		{500, false},
	}
	for _, tc := range cases {
		r := NewApiResponse(tc.status, nil, "m")
		require.Equal(t, tc.success, r.Success, "status %d", tc.status)
	}
}

func TestApiError_EnvelopeShape(t *testing.T) {
	t.Parallel()

	ae := NewApiError(http.StatusBadRequest, "All fields are required")
	b, err := json.Marshal(ae)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, float64(400), m["statusCode"])
	require.Equal(t, "All fields are required", m["message"])
	require.Equal(t, []interface{}{}, m["errors"]) // empty array, not null
	require.Equal(t, false, m["success"])

	// The stack and cause stay on the logging channel.
	require.NotContains(t, m, "stack")
	require.NotContains(t, m, "cause")
	require.NotContains(t, string(b), "goroutine")
}

func TestApiError_CauseNeverInMessage(t *testing.T) {
	t.Parallel()

	cause := json.Unmarshal([]byte("{"), &struct{}{})
	ae := ErrInternal("Internal server error").WithCause(cause)

	require.Equal(t, cause, ae.Cause())
	require.ErrorIs(t, ae, cause)
	require.NotContains(t, ae.Message, cause.Error())
	require.NotEmpty(t, ae.Stack())
	require.Equal(t, "500: Internal server error", ae.Error())
}

func TestErrorConstructors_StatusCodes(t *testing.T) {
	t.Parallel()

	require.Equal(t, 400, ErrValidation("v").StatusCode)
	require.Equal(t, 400, ErrConflict("c").StatusCode) // duplicates map to 400
	require.Equal(t, 404, ErrNotFound("n").StatusCode)
	require.Equal(t, 401, ErrUnauthorized("u").StatusCode)
	require.Equal(t, 500, ErrInternal("i").StatusCode)
}
