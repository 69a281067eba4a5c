// Package mood derives a facial emotion label from an image by calling an
// external face-analysis service. Results are computed per request and
// never cached; callers treat detection failures as a degraded "unknown"
// mood rather than a request failure.
package mood

import (
	"context"
	"errors"

	"github.com/thinkscotty/trendstory/internal/models"
)

// LabelUnknown is reported when no face is found or confidence is too low.
const LabelUnknown = "unknown"

// ErrBadImage indicates the supplied bytes are not a decodable image.
var ErrBadImage = errors.New("image bytes are not a decodable image")

// Recognizer detects the dominant facial emotion in an image.
type Recognizer interface {
	Detect(ctx context.Context, image []byte) (models.MoodResult, error)
}

// Unknown is the degraded result used when detection fails or is skipped.
func Unknown() models.MoodResult {
	return models.MoodResult{Label: LabelUnknown, Confidence: 0}
}
