package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/capypet/debugui"
	debugui_ebiten "github.com/plus3/capypet/debugui/ebiten"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/gfx"
	"github.com/plus3/capypet/scene"
	"go.uber.org/zap"
)

// Game drives the scene from Ebiten's loop.
type Game struct {
	scene    *scene.Scene
	renderer *gfx.Renderer
	imgui    *debugui_ebiten.ImguiBackend
	overlay  *ecs.Singleton[debugui.Overlay]
	logger   *zap.Logger
	fps      *frameCounter
	dt       float64
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Info("escape pressed, exiting")
		return ebiten.Termination
	}

	if g.imgui == nil {
		g.scene.Tick(g.dt)
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		overlay := g.overlay.Get()
		overlay.Visible = !overlay.Visible
	}

	g.imgui.BeginFrame()
	g.scene.Tick(g.dt)
	g.imgui.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Clear()

	g.renderer.SetTarget(screen)
	g.scene.Render()

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}

	if frames, ok := g.fps.Frame(time.Now()); ok {
		g.logger.Debug("frame rate",
			zap.Int("frames", frames),
			zap.Float64("fps", ebiten.ActualFPS()),
			zap.Float64("tps", ebiten.ActualTPS()),
			zap.Int("draw_calls", g.renderer.DrawCalls))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(outsideWidth, outsideHeight)
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// frameCounter counts frames and reports the count once a second.
type frameCounter struct {
	frames int
	since  time.Time
}

func newFrameCounter(now time.Time) *frameCounter {
	return &frameCounter{since: now}
}

// Frame records one frame. Once a second has passed since the last report
// it returns the number of frames in that window and starts a new one.
func (c *frameCounter) Frame(now time.Time) (int, bool) {
	c.frames++
	if now.Sub(c.since) < time.Second {
		return 0, false
	}
	n := c.frames
	c.frames = 0
	c.since = now
	return n, true
}
