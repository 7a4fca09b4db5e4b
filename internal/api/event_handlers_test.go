package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dysk-plikow/internal/database"

	"github.com/stretchr/testify/require"
)

func TestAPI_GetEvents(t *testing.T) {
	claims := seedUserForTest(t, "events_api@example.com")

	testServer.publishChange(context.Background(), claims.UserID, "folder_created", map[string]string{"id": "f1"})
	testServer.publishChange(context.Background(), claims.UserID, "file_uploaded", map[string]string{"id": "p1"})

	req := httptest.NewRequest("GET", "/api/v1/events", nil)
	rr := serveAuthed(testServer.GetEventsHandler, req, claims, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var events []database.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	require.Equal(t, "folder_created", events[0].EventType)
	require.Equal(t, "file_uploaded", events[1].EventType)

	// Kursor odcina już znane zdarzenia
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/v1/events?since=%d", events[0].ID), nil)
	rr = serveAuthed(testServer.GetEventsHandler, req, claims, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var newer []database.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &newer))
	require.Len(t, newer, 1)
	require.Equal(t, "file_uploaded", newer[0].EventType)
}

func TestAPI_GetEvents_BadCursor(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/events?since=abc", nil)
	rr := serveAuthed(testServer.GetEventsHandler, req, testUserClaims, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
