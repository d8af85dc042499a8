package sprite

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
)

// ProbeSheet reads only the header of the image at path and returns how
// many frames of frameWidth it holds.
func ProbeSheet(path string, frameWidth int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("decode sheet %s: %w", path, err)
	}
	return FrameCount(cfg.Width, frameWidth), nil
}

// PlaceholderFrames is the frame count of a generated stand-in sheet.
const PlaceholderFrames = 4
