package ws

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newQueuedConnection builds a connection with no socket; only the send queue is exercised.
func newQueuedConnection(buffer int) *Connection {
	return &Connection{sendCh: make(chan Message, buffer), logger: zerolog.Nop()}
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a, b := newQueuedConnection(1), newQueuedConnection(1)
	hub.Register(uuid.New(), a)
	hub.Register(uuid.New(), b)
	require.Equal(t, 2, hub.Count())

	msg, err := NewMessage(TypeCatalogUpdate, CatalogUpdatePayload{Event: "question_created", QuestionID: 1})
	require.NoError(t, err)
	require.NoError(t, hub.BroadcastAll(msg))

	assert.Equal(t, TypeCatalogUpdate, (<-a.sendCh).Type)
	assert.Equal(t, TypeCatalogUpdate, (<-b.sendCh).Type)
}

func TestHubBroadcastReportsFullQueue(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Register(uuid.New(), newQueuedConnection(0))

	err := hub.BroadcastAll(Message{Type: TypeCatalogUpdate})
	assert.ErrorIs(t, err, ErrSendQueueFull)
}

func TestHubRegisterReplacesAndUnregisterCloses(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	id := uuid.New()
	first, second := newQueuedConnection(1), newQueuedConnection(1)

	hub.Register(id, first)
	hub.Register(id, second)
	assert.Equal(t, 1, hub.Count())
	assert.ErrorIs(t, first.Send(Message{Type: TypePong}), ErrConnectionClosed)

	hub.Unregister(id)
	assert.Equal(t, 0, hub.Count())
	assert.ErrorIs(t, hub.Send(id, Message{Type: TypePong}), ErrConnectionNotFound)
	assert.ErrorIs(t, second.Send(Message{Type: TypePong}), ErrConnectionClosed)
}

func TestHubCloseAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := newQueuedConnection(1)
	hub.Register(uuid.New(), conn)

	hub.CloseAll()
	assert.Equal(t, 0, hub.Count())
	assert.ErrorIs(t, conn.Send(Message{}), ErrConnectionClosed)
}

func TestNewMessageWithoutPayload(t *testing.T) {
	msg, err := NewMessage(TypePong, nil)
	require.NoError(t, err)
	assert.Equal(t, TypePong, msg.Type)
	assert.Nil(t, msg.Payload)
}
