package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidArgumentError("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundError("missing")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(InternalError("boom")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("wrap: %w", ErrInvalidInput)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewAppError("CARD", "no card", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestCodeAndMessage(t *testing.T) {
	err := InvalidArgumentErrorf("field %s too long", "name")
	assert.Equal(t, codes.InvalidArgument, Code(err))
	assert.Equal(t, "field name too long", Message(err))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestAppError(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	assert.Equal(t, "CONFIG_ERROR: DB_URL is required: invalid input", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, WrapError(nil, "ignored"))
	assert.ErrorIs(t, WrapError(ErrDatabase, "insert"), ErrDatabase)
}
