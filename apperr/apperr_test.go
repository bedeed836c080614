package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthenticated.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusConflict, KindConflict.Status())
	assert.Equal(t, http.StatusGatewayTimeout, KindTimeout.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading document: %w", NotFound("Document does not exist."))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindForbidden))
	assert.Equal(t, "Document does not exist.", Message(err))
}

func TestUnclassifiedIsInternal(t *testing.T) {
	err := errors.New("disk on fire")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, MsgInternal, Message(err))
	assert.False(t, Is(nil, KindInternal))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"users\" does not exist")
	err := Internal(cause)
	assert.Equal(t, MsgInternal, Message(err))
	assert.ErrorIs(t, err, cause)

	timeout := Timeout(context.DeadlineExceeded)
	assert.Equal(t, MsgTimeout, Message(timeout))
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)
}
