package server

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/thinkscotty/trendstory/internal/models"
	"github.com/thinkscotty/trendstory/internal/story"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		generateError(w, story.KindInvalidArgument, "invalid request body")
		return
	}

	var image []byte
	if req.ImageB64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageB64)
		if err != nil {
			generateError(w, story.KindInvalidArgument, "image is not valid base64")
			return
		}
		image = decoded
	}

	start := time.Now()
	result, err := s.story.Generate(r.Context(), story.Request{
		Source: req.Source,
		Theme:  req.Theme,
		Limit:  req.Limit,
		Image:  image,
	})
	if err != nil {
		kind := story.KindOf(err)
		slog.Warn("Generation failed", "kind", kind.String(), "error", err)
		generateError(w, kind, err.Error())
		return
	}

	jsonResponse(w, models.GenerateResponse{
		Story:        result.Story,
		StatusCode:   0,
		TopicsUsed:   result.TopicsUsed,
		DetectedMood: result.Mood,
		Metadata: models.StoryMetadata{
			GenerationTime: time.Since(start).Round(time.Millisecond).String(),
			ModelName:      result.ModelName,
			Source:         result.Source,
			Theme:          result.Theme,
			Mood:           result.Mood,
		},
	})
}

// generateError writes the error shape of the generate contract: a non-zero
// status_code plus a message, under the matching HTTP status.
func generateError(w http.ResponseWriter, kind story.Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(kind.HTTPStatus())
	json.NewEncoder(w).Encode(models.GenerateResponse{
		StatusCode:   int(kind),
		ErrorMessage: message,
	})
}
