package libdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", "react")

	assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
	assert.Equal(t, "library \"react\" not found", libdoc.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("read document: %w", libdoc.Errorf(libdoc.EINVALID, "bad range"))

	assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))
	assert.Equal(t, "bad range", libdoc.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, libdoc.EINTERNAL, libdoc.ErrorCode(err))
	assert.Equal(t, "Internal error.", libdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, libdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, libdoc.ErrorMessage(nil))
}
