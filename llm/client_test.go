package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptyTranscriptSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL, "test-model")
	a, err := c.Analyze(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, a.ActionItems)
	assert.False(t, called)
}

func TestAnalyze_ParsesModelResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Action Items:\n- send the report | assignee: Alice | due: Friday\n\nInformation Needs:\n- last quarter's revenue"}}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL, "test-model")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	a, err := c.Analyze(ctx, "Alice will send the report by Friday")
	require.NoError(t, err)
	require.Len(t, a.ActionItems, 1)
	assert.Equal(t, "send the report", a.ActionItems[0].Description)
	assert.Equal(t, []string{"last quarter's revenue"}, a.InfoNeeds)
}

func TestAnalyze_HTTPFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status_non_2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"message": "oops"}}`))
		}},
		{"empty_choices", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": []}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient("key", srv.URL, "test-model")
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := c.Analyze(ctx, "some transcript")
			assert.Error(t, err)
		})
	}
}
