package result_test

import (
	"errors"
	"testing"

	"github.com/randalmurphal/eventq/pkg/eventq/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuccess verifies the success arm carries its value.
func TestSuccess(t *testing.T) {
	r := result.Success(100)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Equal(t, 100, r.Value())
}

// TestFailure verifies the failure arm carries its error.
func TestFailure(t *testing.T) {
	r := result.Failure[int](result.NewError("000", "test error", ""))

	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsFailure())
	assert.Equal(t, "000", r.Err().Code)
	assert.Equal(t, "test error", r.Err().Message)
	assert.Empty(t, r.Err().Details)
}

// TestFailuref verifies message-only failures leave code and details empty.
func TestFailuref(t *testing.T) {
	r := result.Failuref[int]("error")

	require.True(t, r.IsFailure())
	assert.Equal(t, "error", r.Err().Message)
	assert.Empty(t, r.Err().Code)
	assert.Empty(t, r.Err().Details)

	formatted := result.Failuref[string]("bad value %d", 42)
	assert.Equal(t, "bad value 42", formatted.Err().Message)
}

// TestValueOnFailurePanics verifies misuse fails loudly instead of
// returning a zero value.
func TestValueOnFailurePanics(t *testing.T) {
	r := result.Failuref[int]("boom")

	assert.Panics(t, func() {
		_ = r.Value()
	})
}

// TestErrOnSuccessPanics verifies the symmetric misuse also panics.
func TestErrOnSuccessPanics(t *testing.T) {
	r := result.Success("ok")

	assert.Panics(t, func() {
		_ = r.Err()
	})
}

// TestZeroValueIsFailure verifies the zero Result is not silently successful.
func TestZeroValueIsFailure(t *testing.T) {
	var r result.Result[int]

	assert.True(t, r.IsFailure())
}

// TestFrom verifies bridging from conventional (value, error) returns.
func TestFrom(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantSuccess bool
		wantMessage string
		wantCode    string
	}{
		{"nil error", nil, true, "", ""},
		{"plain error", errors.New("disk full"), false, "disk full", ""},
		{"result error", result.NewError("409", "conflict", "retry later"), false, "conflict", "409"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := result.From(7, tt.err)
			assert.Equal(t, tt.wantSuccess, r.IsSuccess())
			if tt.wantSuccess {
				assert.Equal(t, 7, r.Value())
				return
			}
			assert.Equal(t, tt.wantMessage, r.Err().Message)
			assert.Equal(t, tt.wantCode, r.Err().Code)
		})
	}
}

// TestGet verifies non-panicking access to both arms.
func TestGet(t *testing.T) {
	v, ok := result.Success(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = result.Failuref[int]("nope").Get()
	assert.False(t, ok)
	assert.Zero(t, v)
}

// TestErrorFormatting verifies the error interface output.
func TestErrorFormatting(t *testing.T) {
	withCode := result.NewError("503", "unavailable", "")
	assert.Equal(t, "[503] unavailable", withCode.Error())

	noCode := result.NewError("", "plain message", "")
	assert.Equal(t, "plain message", noCode.Error())
}

// TestErrorValueEquality verifies errors are identity-free values.
func TestErrorValueEquality(t *testing.T) {
	a := result.NewError("000", "same", "details")
	b := result.NewError("000", "same", "details")
	assert.Equal(t, a, b)
}

// TestString verifies Stringer output for both arms.
func TestString(t *testing.T) {
	assert.Equal(t, "Success(5)", result.Success(5).String())
	assert.Equal(t, "Failure(bad)", result.Failuref[int]("bad").String())
}
