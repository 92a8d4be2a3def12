package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojusave/rtms-perplexity/types"
)

func TestFeed_RequiresWebSocketUpgrade(t *testing.T) {
	app := fiber.New()
	NewHub().Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestFeed_BroadcastWithoutClients(t *testing.T) {
	h := NewHub()
	// no clients connected, both publishes are no-ops
	h.PublishActionItem("m", types.ActionItem{Description: "d"})
	h.PublishSearchResult("m", types.SearchResult{Query: "q"})
	assert.Equal(t, 0, h.Clients())
}

func TestFeed_EventJSONShape(t *testing.T) {
	item := types.ActionItem{Description: "send the report", Assignee: "Alice", Due: "Friday"}
	data, err := json.Marshal(Event{Type: "action_item", MeetingUUID: "m-1", ActionItem: &item})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "action_item",
		"meeting_uuid": "m-1",
		"action_item": {"description": "send the report", "assignee": "Alice", "due": "Friday"}
	}`, string(data))

	result := types.SearchResult{Query: "q", Snippet: "s", Source: "sonar-pro"}
	data, err = json.Marshal(Event{Type: "search_result", MeetingUUID: "m-1", SearchResult: &result})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "search_result",
		"meeting_uuid": "m-1",
		"search_result": {"query": "q", "snippet": "s", "source": "sonar-pro"}
	}`, string(data))
}
