package pusher

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestChannel(t *testing.T) {
	assert.Equal(t, "request-1", RequestChannel(1))
	assert.Equal(t, "request-9000", RequestChannel(9000))
}

func TestUserChannel(t *testing.T) {
	assert.Equal(t, "user-1", UserChannel(1))
	assert.Equal(t, "user-9000", UserChannel(9000))
}

func TestEvent_Envelope(t *testing.T) {
	body, err := json.Marshal(Event{
		Event: EventStatusUpdate,
		Data:  map[string]interface{}{"status": "IN_PROGRESS"},
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "status-update", decoded["event"])
	data, ok := decoded["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "IN_PROGRESS", data["status"])
}
