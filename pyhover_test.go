package pyhover_test

import (
	"testing"

	"github.com/KiidxAtlas/pyhover"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pyhover.Errorf(pyhover.ENOTFOUND, "symbol %q not found", "upper")

	assert.Equal(t, pyhover.ENOTFOUND, pyhover.ErrorCode(err))
	assert.Equal(t, "symbol \"upper\" not found", pyhover.ErrorMessage(err))
}

func TestWrapErrorf(t *testing.T) {
	t.Parallel()

	cause := pyhover.Errorf(pyhover.EINVALID, "bad key")
	err := pyhover.WrapErrorf(cause, pyhover.EINTERNAL, "cache failure")

	assert.Equal(t, pyhover.EINTERNAL, pyhover.ErrorCode(err))
	assert.ErrorIs(t, err, cause)
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pyhover.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pyhover.ErrorMessage(nil))
}
