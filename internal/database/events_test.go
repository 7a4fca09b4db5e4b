package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventJournal(t *testing.T) {
	userID := createTestUser(t, "events@example.com")
	otherID := createTestUser(t, "events_other@example.com")

	require.NoError(t, testStore.LogEvent(context.Background(), userID, "file_uploaded", map[string]string{"id": "f1"}))
	require.NoError(t, testStore.LogEvent(context.Background(), userID, "file_deleted", map[string]string{"id": "f1"}))
	require.NoError(t, testStore.LogEvent(context.Background(), otherID, "folder_created", map[string]string{"id": "g1"}))

	events, err := testStore.GetEventsSince(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "file_uploaded", events[0].EventType)
	require.Equal(t, "file_deleted", events[1].EventType)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	require.Equal(t, "f1", payload["id"])

	// Kursor "since" odcina już odebrane zdarzenia
	newer, err := testStore.GetEventsSince(context.Background(), userID, events[0].ID)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	require.Equal(t, "file_deleted", newer[0].EventType)
}
