package service

import (
	"encoding/json"
	"feelio_backend/internal/config"
	"feelio_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, reply string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := new(atomic.Int32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Contains(t, req.Messages[1].Content, "Emosi yang diharapkan muncul dari cerita ini: happy, envy.")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  " + reply + "\n"}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestFeedbackService_Generate(t *testing.T) {
	srv, calls := newChatServer(t, "Bagus sekali!")
	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "gpt-4o", TimeoutSec: 5})
	feedback := NewFeedbackService(ai)

	req := FeedbackRequest{
		Answer:           "Dia senang tapi juga iri",
		ExpectedEmotions: []string{"happy", "envy"},
		IsCorrect:        true,
		Narrative:        "Rina mendapat sepeda baru.",
		Segment:          "7-9",
	}

	got, err := feedback.Generate(t.Context(), req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bagus sekali!", *got)
	assert.EqualValues(t, 1, calls.Load())

	// 10-12 岁组不追问时不调用模型
	req.Segment = "10-12"
	got, err = feedback.Generate(t.Context(), req)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.EqualValues(t, 1, calls.Load())

	req.FollowUp = true
	got, err = feedback.Generate(t.Context(), req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFeedbackService_DisabledWithoutKey(t *testing.T) {
	feedback := NewFeedbackService(NewAIService(config.AIConfig{BaseURL: "http://localhost"}))
	_, err := feedback.Generate(t.Context(), FeedbackRequest{Segment: "7-9"})
	assert.ErrorIs(t, err, util.ErrFeedbackDisabled)
}

func TestBuildFeedbackPrompt(t *testing.T) {
	prompt := buildFeedbackPrompt(FeedbackRequest{
		Answer:           "sedih",
		ExpectedEmotions: []string{"sad"},
		IsCorrect:        false,
		Narrative:        "Budi kehilangan kucingnya.",
	})
	assert.Contains(t, prompt, "Jawaban ini dianggap belum tepat")
	assert.Contains(t, prompt, `"Budi kehilangan kucingnya."`)
	assert.Contains(t, prompt, "2-3 kalimat")
}
