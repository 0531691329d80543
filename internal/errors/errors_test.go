package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"scadaval/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeAndChain(t *testing.T) {
	base := InvalidInput("column A is empty")
	wrapped := Wrap(base, "comparison failed")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "comparison failed: column A is empty", wrapped.Error())
	assert.True(t, IsAppError(wrapped))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCode_MapsDomainSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.NewColumnNotFoundError("kWh"), CodeNotFound},
		{core.NewLengthMismatchError(3, 4), CodeLengthMismatch},
		{core.NewNonNumericError("kWh", 5, "abc"), CodeInvalidInput},
		{core.ErrSameColumn, CodeInvalidInput},
		{fmt.Errorf("read: %w", core.ErrEmptyDataset), CodeEmptyDataset},
		{core.ErrUnsupportedFile, CodeUnsupportedFile},
		{stderrors.New("disk on fire"), CodeInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetCode(tt.err), tt.err.Error())
		assert.Equal(t, tt.want, GetCode(Wrap(tt.err, "context")), tt.err.Error())
	}
}

func TestCoded_MessageAndUnwrap(t *testing.T) {
	err := Coded(CodeLengthMismatch, core.NewLengthMismatchError(2, 3))

	assert.Equal(t, "column lengths differ: 2 vs 3 rows", err.Error())
	assert.True(t, stderrors.Is(err, core.ErrLengthMismatch))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(core.NewLengthMismatchError(1, 2)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(core.NewColumnNotFoundError("x")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(New(CodeTooLarge, "big")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("x")))
}
