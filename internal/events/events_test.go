package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageJSON(t *testing.T) {
	msg := NewMessage(ExpenseCreated, "exp-1", "user-1")

	body, err := msg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"type":"expense.created"`)
	assert.Contains(t, string(body), `"expense_id":"exp-1"`)

	decoded, err := MessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, msg.Type, decoded.Type)
	assert.Equal(t, msg.UserID, decoded.UserID)
	assert.True(t, msg.Timestamp.Equal(decoded.Timestamp))
}

func TestMessageFromJSON_Invalid(t *testing.T) {
	_, err := MessageFromJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	ctx := context.Background()

	require.NoError(t, rec.Publish(ctx, NewMessage(ExpenseCreated, "a", "u")))
	require.NoError(t, rec.Publish(ctx, NewMessage(ExpenseDeleted, "a", "u")))

	got := rec.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, ExpenseDeleted, got[1].Type)

	rec.Err = errors.New("broker down")
	assert.Error(t, rec.Publish(ctx, NewMessage(ExpenseCreated, "b", "u")))
	assert.Len(t, rec.Messages(), 2)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), NewMessage(ExpenseCreated, "a", "u")))
	assert.NoError(t, p.Close())
}
