package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

func TestWrapPreservesCodeAndMeta(t *testing.T) {
	base := apperr.NotFoundf("character %s not found", "c1").WithMeta("character_id", "c1")

	wrapped := apperr.Wrapf(base, "failed to roll stat")

	assert.True(t, apperr.IsNotFound(wrapped))
	assert.Equal(t, "c1", apperr.GetMeta(wrapped)["character_id"])
	assert.Contains(t, wrapped.Error(), "failed to roll stat")
	assert.Contains(t, wrapped.Error(), "character c1 not found")
}

func TestWrapForeignError(t *testing.T) {
	wrapped := apperr.Wrap(fmt.Errorf("boom"), "redis write")

	assert.Equal(t, apperr.CodeUnknown, apperr.GetCode(wrapped))
	assert.Nil(t, apperr.Wrap(nil, "nothing"))
}

func TestValidationsCarriesEveryMessage(t *testing.T) {
	err := apperr.Validations("must select 1 expert skill", "skill Zoology is locked")
	wrapped := apperr.Wrap(err, "finalize")

	require.True(t, apperr.IsValidation(wrapped))
	assert.Equal(t, []string{"must select 1 expert skill", "skill Zoology is locked"},
		apperr.ValidationMessages(wrapped))
}

func TestValidationMessagesIgnoresOtherCodes(t *testing.T) {
	assert.Nil(t, apperr.ValidationMessages(apperr.Internal("nope")))
	assert.Equal(t, []string{"strength already rolled"},
		apperr.ValidationMessages(apperr.Validation("strength already rolled")))
}

func TestWrapWithCode(t *testing.T) {
	err := apperr.WrapWithCode(fmt.Errorf("dial tcp"), apperr.CodeUnavailable, "redis down")
	assert.Equal(t, apperr.CodeUnavailable, apperr.GetCode(err))
}

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		err  error
		code apperr.Code
		is   func(error) bool
	}{
		{apperr.AlreadyExists("draft exists"), apperr.CodeAlreadyExists, apperr.IsAlreadyExists},
		{apperr.Internalf("lost %d writes", 2), apperr.CodeInternal, apperr.IsInternal},
		{apperr.PermissionDenied("not yours"), apperr.CodePermissionDenied, apperr.IsPermissionDenied},
		{apperr.Conflictf("version %d changed", 3), apperr.CodeConflict, apperr.IsConflict},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			wrapped := apperr.Wrap(tt.err, "outer")
			assert.True(t, tt.is(wrapped))
			assert.Equal(t, tt.code, apperr.GetCode(wrapped))
		})
	}
}
