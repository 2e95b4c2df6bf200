// Package gui presents frames in a resizable raylib window. The window is
// only a blitter: every frame is produced by the software rasterizer and
// uploaded as a texture.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/spinframe/internal/engine"
	"github.com/san-kum/spinframe/internal/export"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColAccent  = rl.NewColor(255, 170, 0, 255)
)

const nudgeStep = 5

type Options struct {
	Width, Height int
	FPS           int
	// ShotDir receives PNG screenshots taken with P.
	ShotDir string
}

type App struct {
	eng  *engine.Engine
	opts Options

	width, height atomic.Int32
	frames        chan engine.Frame
	done          atomic.Bool

	tex     rl.Texture2D
	texOK   bool
	pixels  []color.RGBA
	current *engine.Frame
	shots   int
	status  string
	until   time.Time
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "spinframe")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or ctx is cancelled. It
// must be called from the main goroutine.
func Run(ctx context.Context, eng *engine.Engine, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.ShotDir == "" {
		opts.ShotDir = "."
	}
	initWindow(opts)
	defer rl.CloseWindow()

	a := &App{eng: eng, opts: opts, frames: make(chan engine.Frame, 1)}
	a.syncSize()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- eng.Run(ctx, a.viewport, a.present) }()

	eng.Start()
	a.RunLoop(ctx)
	eng.Stop()
	a.done.Store(true)
	cancel()
	a.unload()
	return <-errc
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) viewport() (int, int) {
	return int(a.width.Load()), int(a.height.Load())
}

// present keeps only the newest undelivered frame.
func (a *App) present(f engine.Frame) error {
	if a.done.Load() {
		return engine.ErrPresenterDone
	}
	for {
		select {
		case a.frames <- f:
			return nil
		default:
		}
		select {
		case <-a.frames:
		default:
		}
	}
}

// syncSize records the screen size for the render goroutine and asks for a
// redraw when it changed.
func (a *App) syncSize() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	oldW, oldH := a.width.Swap(w), a.height.Swap(h)
	if oldW != w || oldH != h {
		a.eng.Signal().Notify()
	}
}

// Update handles input and picks up a finished frame. It returns false when
// the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.eng.Toggle()
	}
	var dy, dp int
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		dy -= nudgeStep
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		dy += nudgeStep
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		dp += nudgeStep
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		dp -= nudgeStep
	}
	if dy != 0 || dp != 0 {
		a.eng.Nudge(dy, dp)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.screenshot()
	}

	a.syncSize()

	select {
	case f := <-a.frames:
		a.upload(f)
	default:
	}
	return true
}

func (a *App) upload(f engine.Frame) {
	fb := f.Buffer
	if !a.texOK || a.tex.Width != int32(fb.Width) || a.tex.Height != int32(fb.Height) {
		if a.texOK {
			rl.UnloadTexture(a.tex)
		}
		img := rl.GenImageColor(fb.Width, fb.Height, rl.Black)
		a.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		a.texOK = true
	}
	a.pixels = fb.RGBA(a.pixels)
	rl.UpdateTexture(a.tex, a.pixels)
	a.current = &f
}

func (a *App) screenshot() {
	if a.current == nil {
		return
	}
	a.shots++
	path := export.FramePath(a.opts.ShotDir, a.shots)
	if err := export.SavePNG(path, a.current.Buffer, 1); err != nil {
		a.flash(err.Error())
		return
	}
	a.flash("saved " + path)
}

func (a *App) flash(msg string) {
	a.status = msg
	a.until = time.Now().Add(2 * time.Second)
}

func (a *App) unload() {
	if a.texOK {
		rl.UnloadTexture(a.tex)
		a.texOK = false
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	if a.texOK {
		rl.DrawTexture(a.tex, 0, 0, rl.White)
	}
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	drawText("spinframe", 12, 12, 20, ColSelect)
	if f := a.current; f != nil {
		drawText(fmt.Sprintf("yaw %4d°  pitch %4d°", f.Angles.Yaw, f.Angles.Pitch), 12, 38, 16, ColText)
		drawText(fmt.Sprintf("frame #%d  %dx%d  %d px", f.Seq, f.Buffer.Width, f.Buffer.Height, f.Stats.Written), 12, 58, 14, ColTextDim)
	}

	status, col := "RUNNING", ColSelect
	if !a.eng.Running() {
		status, col = "PAUSED", ColTextDim
	}
	w, h := a.viewport()
	drawText(status, int32(w)-90, 12, 16, col)

	if a.status != "" && time.Now().Before(a.until) {
		drawText(a.status, 12, int32(h)-48, 14, ColAccent)
	}
	drawText("[SPACE] PAUSE  [ARROWS] NUDGE  [P] PNG  [Q] QUIT", 12, int32(h)-24, 14, ColTextDim)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(w)-70, int32(h)-24, 14, ColTextDim)
}

func drawText(text string, x, y, size int32, col rl.Color) {
	rl.DrawText(text, x, y, size, col)
}
