package gfx

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/capypet/config"
	"github.com/plus3/capypet/sprite"
	"go.uber.org/zap"
)

// Sheet is one loaded sprite sheet.
type Sheet struct {
	Image       *ebiten.Image
	Frames      int
	Path        string
	Placeholder bool
}

// Sheets holds one sheet per clip.
type Sheets [sprite.NumClips]Sheet

// FrameCounts returns the frame count of every sheet.
func (s *Sheets) FrameCounts() [sprite.NumClips]int {
	var counts [sprite.NumClips]int
	for i, sheet := range s {
		counts[i] = sheet.Frames
	}
	return counts
}

// LoadSheets loads the sheet of every clip named in cfg. A sheet that is
// missing or cannot be decoded is replaced by a generated placeholder so
// the pets still show up.
func LoadSheets(cfg *config.Config, logger *zap.Logger) Sheets {
	var sheets Sheets
	frameWidth := cfg.Sprites.FrameWidth

	for clip := sprite.Clip(0); clip < sprite.NumClips; clip++ {
		path := cfg.SheetPath(clip)
		if path != "" {
			img, _, err := ebitenutil.NewImageFromFile(path)
			if err == nil {
				sheets[clip] = Sheet{
					Image:  img,
					Frames: sprite.FrameCount(img.Bounds().Dx(), frameWidth),
					Path:   path,
				}
				logger.Debug("sprite sheet loaded",
					zap.Stringer("clip", clip),
					zap.String("path", path),
					zap.Int("frames", sheets[clip].Frames))
				continue
			}
			logger.Warn("sprite sheet unavailable, using placeholder",
				zap.Stringer("clip", clip),
				zap.String("path", path),
				zap.Error(err))
		} else {
			logger.Warn("no sprite sheet configured, using placeholder", zap.Stringer("clip", clip))
		}

		sheets[clip] = Sheet{
			Image:       ebiten.NewImageFromImage(placeholderSheet(clip, frameWidth, sprite.PlaceholderFrames)),
			Frames:      sprite.PlaceholderFrames,
			Path:        path,
			Placeholder: true,
		}
	}
	return sheets
}

var (
	furColor  = color.RGBA{0x9c, 0x6b, 0x43, 0xff}
	noseColor = color.RGBA{0x4a, 0x30, 0x1e, 0xff}
)

// placeholderSheet draws frames of a blocky capybara facing left. Each
// clip gets its own pose and the body bobs from frame to frame.
func placeholderSheet(clip sprite.Clip, frameWidth, frames int) *image.RGBA {
	size := max(frameWidth, 8)
	img := image.NewRGBA(image.Rect(0, 0, size*frames, size))

	for f := 0; f < frames; f++ {
		x0 := f * size
		bob := f % 2
		if clip == sprite.ClipRun {
			bob = f % 3
		}

		top := size / 3
		switch clip {
		case sprite.ClipSit:
			// lower the back end further each frame as it settles
			top = size/3 + f*size/(6*frames)
		case sprite.ClipIdle:
			bob = 0
		}

		bodyBottom := size - size/6
		fill(img, x0+size/8, top+bob, x0+size-size/8, bodyBottom, furColor)
		// head on the left, nose at its tip
		fill(img, x0+size/16, top-size/8+bob, x0+size/3, top+size/4+bob, furColor)
		fill(img, x0+size/16, top+bob, x0+size/8, top+size/8+bob, noseColor)

		if clip != sprite.ClipSit {
			legs := []int{size / 4, size - size/4 - size/8}
			for i, lx := range legs {
				lift := 0
				if clip != sprite.ClipIdle && (f+i)%2 == 0 {
					lift = size / 16
				}
				fill(img, x0+lx, bodyBottom, x0+lx+size/8, size-lift, furColor)
			}
		}
	}
	return img
}

func fill(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
