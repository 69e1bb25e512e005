package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	})
	return string(body)
}

// newTestClient points the client at a stub completion endpoint
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(Config{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		TextModel:     "gpt-4o",
		FallbackModel: "gpt-4o-mini",
	})
}

func TestCleanTranscriptReturnsCompletion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "um hello there", req.Messages[1].Content)

		fmt.Fprint(w, chatReply("  Hello there.  "))
	})

	got, err := client.CleanTranscript(context.Background(), "um hello there")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", got)
}

func TestQuotesCapsAtFive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"quotes":["a","b","c","d","e","f","g"]}`))
	})

	quotes, err := client.Quotes(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, quotes)
}

func TestSentenceCertaintyClampsScores(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"sentences":[`+
			`{"sentence":"keep this","certainty_score":-0.3},`+
			`{"sentence":"um yeah","certainty_score":1.7},`+
			`{"sentence":"maybe","certainty_score":0.5}]}`))
	})

	scores, err := client.SentenceCertainty(context.Background(), "transcript")
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 0.0, scores[0].Score)
	assert.Equal(t, 1.0, scores[1].Score)
	assert.Equal(t, 0.5, scores[2].Score)
}

func TestSfxPlanFallsBackToSecondModel(t *testing.T) {
	var models []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		models = append(models, req.Model)

		if req.Model == "gpt-4o" {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, chatReply(`{"effects":[{"description":"door creak","start":1.0,"end":3.5}]}`))
	})

	plan, err := client.SfxPlan(context.Background(), "transcript", 5)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "door creak", plan[0].Description)
	// The SDK may retry the failing model before we switch
	require.NotEmpty(t, models)
	assert.Equal(t, "gpt-4o", models[0])
	assert.Equal(t, "gpt-4o-mini", models[len(models)-1])
}

func TestSfxPlanCapsEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"effects":[`+
			`{"description":"a","start":0,"end":1},`+
			`{"description":"b","start":1,"end":2},`+
			`{"description":"c","start":2,"end":3}]}`))
	})

	plan, err := client.SfxPlan(context.Background(), "transcript", 2)
	require.NoError(t, err)
	assert.Len(t, plan, 2)
}

func TestMalformedJSONIsProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("not json at all"))
	})

	_, err := client.Quotes(context.Background(), "transcript")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProvider))
}

func TestSentimentIsLowercased(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("Positive\n"))
	})

	sentiment, err := client.Sentiment(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, "positive", sentiment)
}
