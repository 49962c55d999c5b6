package core

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	for code, kind := range map[int]error{
		EMISSING: ErrFontNotFound,
		EFORMAT:  ErrFontParse,
		EANCHOR:  ErrUnknownAnchor,
		EINVALID: ErrInvalidOption,
	} {
		err := Error(code, "code %d", code)
		assert.True(t, errors.Is(err, kind), "expected code %d to match %v", code, kind)
		assert.Equal(t, code, Code(err))
	}
	err := Error(EMISSING, "font %s", "x.ttf")
	assert.False(t, errors.Is(err, ErrFontParse))
}

func TestWrappedErrorKeepsCause(t *testing.T) {
	cause := os.ErrNotExist
	err := WrapError(cause, EMISSING, "font not found: %s", "Roboto")
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, errors.Is(err, ErrFontNotFound))
	assert.Equal(t, "font not found: Roboto", UserMessage(err))
	//
	outer := fmt.Errorf("request failed: %w", err)
	assert.Equal(t, EMISSING, Code(outer))
	assert.True(t, errors.Is(outer, ErrFontNotFound))
}

func TestPlainErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	plain := errors.New("boom")
	assert.Equal(t, EINTERNAL, Code(plain))
	assert.Equal(t, "internal error", UserMessage(plain))
}
