package pipeline

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/authorityshow/editor-api/api/types"
	pipelinesvc "github.com/authorityshow/editor-api/internal/pipeline"
	"github.com/authorityshow/editor-api/internal/services/segments"
)

// Post handles pipeline execution requests
// @Summary      Run an editing pipeline
// @Description  Executes the requested steps against the uploaded audio in canonical order
// @Tags         pipeline
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-User-ID       header  string  true   "Caller identity"
// @Param        audio           formData  file    true   "Audio asset"
// @Param        steps           formData  string  true   "JSON array of step identifiers"
// @Param        episodeId       formData  string  true   "Episode reference"
// @Param        cuts            formData  string  false  "JSON array of {start,end} keep intervals"
// @Param        targetLanguage  formData  string  false  "Translation target (default English)"
// @Param        voiceId         formData  string  false  "Voice reference for synthesis"
// @Param        editId          formData  string  false  "Client edit correlation id"
// @Success      200  {object}  pipelinesvc.Report
// @Failure      400  {object}  types.ErrorResponse
// @Failure      403  {object}  pipelinesvc.Report
// @Failure      500  {object}  pipelinesvc.Report
// @Router       /api/v1/pipeline [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := types.UserID(c)
		if !ok {
			return
		}

		req, ok := parseRequest(c, userID)
		if !ok {
			return
		}

		report, status := deps.Pipeline.Run(c.Request.Context(), req)
		c.JSON(status, report)
	}
}

// parseRequest decodes the multipart form into a pipeline request. Malformed
// JSON form fields are rejected here; semantic validation happens in the
// orchestrator.
func parseRequest(c *gin.Context, userID string) (*pipelinesvc.Request, bool) {
	file, err := c.FormFile("audio")
	if err != nil {
		types.SendBadRequest(c, "audio file is required")
		return nil, false
	}

	src, err := file.Open()
	if err != nil {
		types.SendInternalError(c, "failed to read audio upload")
		return nil, false
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		types.SendInternalError(c, "failed to read audio upload")
		return nil, false
	}

	var steps []string
	if raw := c.PostForm("steps"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &steps); err != nil {
			types.SendBadRequest(c, "steps must be a JSON array of step identifiers")
			return nil, false
		}
	}

	var cuts []segments.Interval
	if raw := c.PostForm("cuts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cuts); err != nil {
			types.SendBadRequest(c, "cuts must be a JSON array of {start,end} objects")
			return nil, false
		}
	}

	return &pipelinesvc.Request{
		UserID:         userID,
		EpisodeID:      c.PostForm("episodeId"),
		Audio:          audio,
		Steps:          steps,
		Cuts:           cuts,
		TargetLanguage: c.DefaultPostForm("targetLanguage", "English"),
		VoiceID:        c.PostForm("voiceId"),
		EditID:         c.PostForm("editId"),
	}, true
}
