package mood

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// validateImage checks that the bytes decode as a supported image format
// without decoding the full pixel data.
func validateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrBadImage)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return nil
}
