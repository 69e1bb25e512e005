package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "episode.mp3")
	require.NoError(t, os.WriteFile(path, []byte("fake audio"), 0644))
	return path
}

func TestTranscribeParsesVerboseResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"text": "Hello world.",
			"language": "english",
			"duration": 1.5,
			"words": [
				{"word": "Hello", "start": 0.0, "end": 0.6},
				{"word": "world.", "start": 0.7, "end": 1.5}
			]
		}`)
	}))
	defer server.Close()

	tr := NewOpenAITranscriber(Config{APIKey: "test-key", BaseURL: server.URL, Model: "whisper-1"})

	result, err := tr.Transcribe(context.Background(), writeTestAudio(t), "en")
	require.NoError(t, err)

	assert.Equal(t, "Hello world.", result.Text)
	assert.Equal(t, "english", result.Language)
	assert.Equal(t, 1.5, result.Duration)
	require.Len(t, result.Words, 2)
	assert.Equal(t, "Hello", result.Words[0].Text)
	assert.Equal(t, 0.7, result.Words[1].Start)
	assert.Equal(t, 1.5, result.Words[1].End)
}

func TestTranscribeMissingFileIsProviderError(t *testing.T) {
	tr := NewOpenAITranscriber(Config{APIKey: "test-key", Model: "whisper-1"})

	_, err := tr.Transcribe(context.Background(), "/nonexistent/audio.mp3", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProvider))
}

func TestTranscribeDefaultsModel(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text": "hi", "language": "english", "duration": 0.5, "words": []}`)
	}))
	defer server.Close()

	tr := NewOpenAITranscriber(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := tr.Transcribe(context.Background(), writeTestAudio(t), "")
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", gotModel)
}
