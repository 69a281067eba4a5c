package mood

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/thinkscotty/trendstory/internal/models"
)

// FaceAPIClient talks to a face-analysis inference service over HTTP.
// Inference can be CPU-heavy on the far side, so concurrent calls are
// capped with a semaphore instead of queueing unbounded work.
type FaceAPIClient struct {
	baseURL    string
	httpClient *http.Client
	threshold  float64
	sem        *semaphore.Weighted
}

// detectedFace mirrors one face in the service response. Bounding box
// coordinates are normalized to [0, 1].
type detectedFace struct {
	BboxX      float64 `json:"bbox_x"`
	BboxY      float64 `json:"bbox_y"`
	BboxWidth  float64 `json:"bbox_width"`
	BboxHeight float64 `json:"bbox_height"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

type analyzeRequest struct {
	ImageB64 string `json:"image_b64"`
}

type analyzeResponse struct {
	Success bool           `json:"success"`
	Faces   []detectedFace `json:"faces"`
	Error   string         `json:"error,omitempty"`
}

// NewFaceAPIClient creates a recognizer backed by the inference service at
// baseURL. Confidence below threshold degrades to the unknown mood.
func NewFaceAPIClient(baseURL string, threshold float64, timeout time.Duration, maxConcurrent int) *FaceAPIClient {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &FaceAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		threshold:  threshold,
		sem:        semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Detect returns the dominant emotion for the primary face in the image.
// With multiple faces, the one with the largest bounding-box area is
// assumed to be the subject. A well-formed image never produces an error
// from the detection policy itself: no face or low confidence yields the
// unknown result. Undecodable bytes fail with ErrBadImage.
func (c *FaceAPIClient) Detect(ctx context.Context, image []byte) (models.MoodResult, error) {
	if err := validateImage(image); err != nil {
		return Unknown(), err
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return Unknown(), err
	}
	defer c.sem.Release(1)

	reqBody, err := json.Marshal(analyzeRequest{ImageB64: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return Unknown(), fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewReader(reqBody))
	if err != nil {
		return Unknown(), fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unknown(), fmt.Errorf("call face API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unknown(), fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Unknown(), fmt.Errorf("face API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Unknown(), fmt.Errorf("parse face API response: %w", err)
	}
	if !parsed.Success {
		return Unknown(), fmt.Errorf("face API error: %s", parsed.Error)
	}

	face, ok := primaryFace(parsed.Faces)
	if !ok || face.Confidence < c.threshold {
		return Unknown(), nil
	}
	return models.MoodResult{Label: face.Emotion, Confidence: face.Confidence}, nil
}

// primaryFace picks the face with the largest bounding-box area.
func primaryFace(faces []detectedFace) (detectedFace, bool) {
	if len(faces) == 0 {
		return detectedFace{}, false
	}
	best := faces[0]
	bestArea := best.BboxWidth * best.BboxHeight
	for _, f := range faces[1:] {
		if area := f.BboxWidth * f.BboxHeight; area > bestArea {
			best, bestArea = f, area
		}
	}
	return best, true
}
