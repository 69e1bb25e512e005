package edits

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authorityshow/editor-api/api/types"
	"github.com/authorityshow/editor-api/internal/models"
)

type stubEditLog struct {
	gotLimit int
	records  []models.EditRecord
}

func (s *stubEditLog) Append(ctx context.Context, record *models.EditRecord) error { return nil }
func (s *stubEditLog) History(ctx context.Context, userID string, limit int) ([]models.EditRecord, error) {
	s.gotLimit = limit
	return s.records, nil
}

func setupRouter(log *stubEditLog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/edits"), &types.Dependencies{Edits: log})
	return router
}

func TestGetHistory(t *testing.T) {
	log := &stubEditLog{records: []models.EditRecord{
		{EpisodeID: "ep-2", UserID: "user-1", EditType: "pipeline"},
		{EpisodeID: "ep-1", UserID: "user-1", EditType: "pipeline"},
	}}
	router := setupRouter(log)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/edits?limit=10", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, log.gotLimit)

	var resp types.EditHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "ep-2", resp.Edits[0].EpisodeID)
}

func TestGetHistoryRejectsBadLimit(t *testing.T) {
	router := setupRouter(&stubEditLog{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/edits?limit=lots", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistoryRequiresUserHeader(t *testing.T) {
	router := setupRouter(&stubEditLog{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/edits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
