package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{404, KindNotFound},
		{400, KindConflict},
		{409, KindConflict},
		{422, KindConflict},
		{500, KindTransport},
		{502, KindTransport},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.kind, kindForStatus(tt.status))
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	conflict := &Error{Kind: KindConflict, Op: "book_ticket", StatusCode: 409, Message: "seat already taken"}

	assert.True(t, IsConflict(conflict))
	assert.False(t, IsAuth(conflict))
	assert.False(t, IsNotFound(conflict))
	assert.False(t, IsTransport(conflict))

	// Helpers must see through wrapping.
	wrapped := fmt.Errorf("booking failed: %w", conflict)
	assert.True(t, IsConflict(wrapped))

	assert.False(t, IsConflict(errors.New("plain")))
	assert.False(t, IsConflict(nil))
}

func TestError_Message(t *testing.T) {
	withMessage := &Error{Kind: KindConflict, Op: "book_ticket", StatusCode: 409, Message: "seat already taken"}
	assert.Contains(t, withMessage.Error(), "seat already taken")
	assert.Contains(t, withMessage.Error(), "book_ticket")

	cause := errors.New("connection refused")
	withCause := &Error{Kind: KindTransport, Op: "list_tickets", cause: cause}
	assert.Contains(t, withCause.Error(), "connection refused")
	assert.ErrorIs(t, withCause, cause)

	bare := &Error{Kind: KindNotFound, Op: "get_ticket"}
	assert.Contains(t, bare.Error(), "not_found")
}
