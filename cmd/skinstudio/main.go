// Package main is the skin editor: a 2D pixel canvas and a live 3D
// preview of the character model, painting the same texture.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/pixelforge/skinstudio/internal/assets"
	"github.com/pixelforge/skinstudio/internal/config"
	"github.com/pixelforge/skinstudio/internal/editor"
	"github.com/pixelforge/skinstudio/internal/engine/camera"
	"github.com/pixelforge/skinstudio/internal/engine/debug"
	"github.com/pixelforge/skinstudio/internal/engine/input"
	"github.com/pixelforge/skinstudio/internal/engine/picking"
	"github.com/pixelforge/skinstudio/internal/engine/renderer"
	"github.com/pixelforge/skinstudio/internal/engine/texture"
	"github.com/pixelforge/skinstudio/internal/engine/window"
	"github.com/pixelforge/skinstudio/internal/logger"
	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/internal/skin/avatar"
	"github.com/pixelforge/skinstudio/internal/skin/tools"
	"github.com/pixelforge/skinstudio/pkg/colorx"
	"github.com/pixelforge/skinstudio/pkg/math"
)

const windowTitle = "Skin Studio"

// viewMode selects which editor view fills the window.
type viewMode int

const (
	viewCanvas viewMode = iota
	viewPreview
)

var palette = []string{
	"#d96a3b", "#8c5a33", "#f2d3b3", "#4a6fb5",
	"#3b8c4f", "#c8c8c8", "#2b2b2b", "#ffffff",
}

const (
	swatchSize = 24
	swatchPad  = 4
	swatchTop  = 8
	swatchLeft = 8
)

func init() {
	runtime.LockOSThread()
}

// app bundles the state the event loop threads through every frame.
type app struct {
	cfg     *config.Config
	win     *window.Window
	rend    *renderer.Renderer
	session *editor.Session
	cam     *camera.OrbitCamera
	skinTex *texture.Texture
	model   *avatar.Model
	shots   *debug.ScreenshotCapture

	mode     viewMode
	overlays bool
	autoSpin bool
	lastPath string

	// 2D canvas placement
	zoom float32
	pan  math.Vec2

	// Pointer state
	mouseX, mouseY int
	painting       bool
	selecting      bool
	selStart       tools.Point
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Skin Studio ===")

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("window creation failed", zap.Error(err))
		os.Exit(1)
	}
	defer win.Close()

	w, h := win.GetSize()
	rend, err := renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		logger.Error("renderer init failed", zap.Error(err))
		os.Exit(1)
	}
	defer rend.Close()

	a := &app{
		cfg:      cfg,
		win:      win,
		rend:     rend,
		cam:      camera.NewOrbitCamera(),
		mode:     viewCanvas,
		overlays: true,
		zoom:     8,
		shots:    debug.NewScreenshotCapture("screenshots", "skinstudio"),
	}

	if err := a.setup(); err != nil {
		logger.Error("setup failed", zap.Error(err))
		os.Exit(1)
	}
	defer a.session.Close()

	in := input.New()

	running := true
	for running {
		if in.Update() {
			running = false
		}
		for _, e := range in.Events() {
			if !a.handleEvent(e) {
				running = false
			}
		}

		if a.autoSpin && a.mode == viewPreview {
			a.cam.RotationY += 0.01
		}

		// Drain the snapshot slot before drawing so the texture shows
		// the newest published raster.
		if snap, ok := a.session.Publisher().Take(); ok {
			if err := a.skinTex.Upload(snap.Width, snap.Height, snap.Pix); err != nil {
				logger.Warn("snapshot upload failed", zap.Error(err))
			}
		}

		rend.Begin()
		switch a.mode {
		case viewPreview:
			a.drawPreview()
		default:
			a.drawCanvas()
		}
		win.SwapBuffers()
	}

	a.persist()
	logger.Info("editor closed normally")
}

// setup builds the session, model and skin texture from configuration.
func (a *app) setup() error {
	variant := avatar.Classic
	if a.cfg.Editor.Variant == "slim" {
		variant = avatar.Slim
	}

	surface := skin.New(skin.AtlasWidth, skin.HeightLegacy)
	if path := a.cfg.Editor.LastSkinPath; path != "" {
		loaded, err := assets.LoadSkin(path)
		if err != nil {
			logger.Warn("could not open last skin", zap.String("path", path), zap.Error(err))
		} else {
			surface = loaded
			a.lastPath = path
		}
	}

	a.session = editor.NewSession(surface)
	a.session.SetColorHex(a.cfg.Editor.BrushColor)
	a.session.SetBrushSize(a.cfg.Editor.BrushSize)
	a.session.SetHardness(a.cfg.Editor.Hardness)
	a.session.SetOpacity(a.cfg.Editor.Opacity)
	if a.cfg.Editor.Symmetry {
		a.session.ToggleSymmetry()
	}
	a.session.StartWorker()

	var err error
	a.skinTex, err = texture.New(surface.Width(), surface.Height())
	if err != nil {
		return err
	}
	if err := a.skinTex.Upload(surface.Width(), surface.Height(), surface.SnapshotPix()); err != nil {
		return err
	}

	a.rebuildModel(variant)
	a.centerCanvas()
	a.updateTitle()
	return nil
}

// rebuildModel regenerates the cuboid model and re-uploads its mesh.
// Called on variant change, overlay toggling and atlas height change.
func (a *app) rebuildModel(variant avatar.Variant) {
	opts := avatar.DefaultOptions()
	opts.Variant = variant
	opts.AtlasHeight = a.session.AtlasHeight()
	for i := range opts.OverlayVisible {
		opts.OverlayVisible[i] = a.overlays
	}
	a.model = avatar.Build(opts)
	a.rend.Avatar.SetMesh(&a.model.Mesh)
}

// centerCanvas positions the atlas quad in the middle of the window.
func (a *app) centerCanvas() {
	w, h := a.rend.Size()
	aw := a.zoom * float32(skin.AtlasWidth)
	ah := a.zoom * float32(a.session.AtlasHeight())
	a.pan = math.Vec2{X: (float32(w) - aw) / 2, Y: (float32(h) - ah) / 2}
}

func (a *app) updateTitle() {
	title := fmt.Sprintf("%s - %s %s", windowTitle, a.session.ActiveTool(), a.session.ColorHex())
	if a.lastPath != "" {
		title = fmt.Sprintf("%s - %s", title, a.lastPath)
	}
	a.win.SetTitle(title)
}

// handleEvent processes one input event. Returns false to quit.
func (a *app) handleEvent(e input.Event) bool {
	switch e.Type {
	case input.EventQuit:
		return false

	case input.EventWindowResize:
		a.rend.Resize(e.Width, e.Height)
		a.centerCanvas()

	case input.EventKeyDown:
		return a.handleKey(e.Key)

	case input.EventMouseWheel:
		if a.mode == viewPreview {
			a.cam.HandleZoom(float32(e.WheelY))
		} else {
			a.zoomCanvas(float32(e.WheelY))
		}

	case input.EventMouseDown:
		a.mouseX, a.mouseY = e.MouseX, e.MouseY
		if e.Button == sdl.BUTTON_LEFT {
			a.pointerDown()
		}

	case input.EventMouseMove:
		a.mouseX, a.mouseY = e.MouseX, e.MouseY
		if e.LeftHeld() && a.painting {
			a.paintAtPointer()
		}
		if e.RightHeld() {
			if a.mode == viewPreview {
				a.cam.HandleDrag(math.Vec2{X: float32(e.RelX), Y: float32(e.RelY)})
			} else {
				a.pan = a.pan.Add(math.Vec2{X: float32(e.RelX), Y: float32(e.RelY)})
			}
		}

	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			a.pointerUp()
		}

	case input.EventDropFile:
		a.openSkin(e.File)
	}

	return true
}

func (a *app) handleKey(key sdl.Scancode) bool {
	mod := sdl.GetModState()
	ctrl := mod&sdl.KMOD_CTRL != 0
	shift := mod&sdl.KMOD_SHIFT != 0

	switch key {
	case sdl.SCANCODE_Q:
		if ctrl {
			return false
		}

	case sdl.SCANCODE_B:
		a.session.SetActiveTool(editor.KindBrush)
	case sdl.SCANCODE_E:
		a.session.SetActiveTool(editor.KindEraser)
	case sdl.SCANCODE_I:
		a.session.SetActiveTool(editor.KindEyedropper)
	case sdl.SCANCODE_G:
		a.session.SetActiveTool(editor.KindFill)
	case sdl.SCANCODE_M:
		a.session.SetActiveTool(editor.KindRectSelect)

	case sdl.SCANCODE_TAB:
		if a.mode == viewCanvas {
			a.mode = viewPreview
		} else {
			a.mode = viewCanvas
		}

	case sdl.SCANCODE_LEFTBRACKET:
		a.session.SetBrushSize(a.session.BrushSize() - 1)
	case sdl.SCANCODE_RIGHTBRACKET:
		a.session.SetBrushSize(a.session.BrushSize() + 1)

	case sdl.SCANCODE_X:
		a.session.ToggleSymmetry()

	case sdl.SCANCODE_O:
		if ctrl {
			a.openSkinDialog()
		} else {
			a.overlays = !a.overlays
			a.rebuildModel(a.model.Variant)
		}
	case sdl.SCANCODE_S:
		if ctrl && shift {
			a.saveSkinDialog()
		} else if ctrl {
			a.saveSkin()
		}

	case sdl.SCANCODE_L:
		if a.model.Variant == avatar.Classic {
			a.rebuildModel(avatar.Slim)
		} else {
			a.rebuildModel(avatar.Classic)
		}

	case sdl.SCANCODE_R:
		a.autoSpin = !a.autoSpin

	case sdl.SCANCODE_F12:
		a.captureScreenshot()

	case sdl.SCANCODE_LEFT:
		a.session.AdjustHSV(-15, 0, 0)
	case sdl.SCANCODE_RIGHT:
		a.session.AdjustHSV(15, 0, 0)
	case sdl.SCANCODE_UP:
		if shift {
			a.session.AdjustHSV(0, 0.05, 0)
		} else {
			a.session.AdjustHSV(0, 0, 0.05)
		}
	case sdl.SCANCODE_DOWN:
		if shift {
			a.session.AdjustHSV(0, -0.05, 0)
		} else {
			a.session.AdjustHSV(0, 0, -0.05)
		}

	case sdl.SCANCODE_ESCAPE:
		a.session.ClearSelection()
		a.selecting = false
	}

	a.updateTitle()
	return true
}

// pointerDown begins a paint stroke or a selection gesture.
func (a *app) pointerDown() {
	if a.mode == viewCanvas && a.clickSwatch() {
		return
	}

	p, ok := a.pointerSurfacePoint()
	if !ok {
		return
	}

	if a.session.ActiveTool() == editor.KindRectSelect {
		a.session.BeginGesture(p)
		a.selecting = true
		a.selStart = p
		return
	}

	a.painting = true
	a.session.Apply(p)
}

// paintAtPointer extends the current stroke to the pointer position.
func (a *app) paintAtPointer() {
	// Fill and eyedropper act once per click, not per motion.
	switch a.session.ActiveTool() {
	case editor.KindFill, editor.KindEyedropper, editor.KindRectSelect:
		return
	}
	if p, ok := a.pointerSurfacePoint(); ok {
		a.session.Apply(p)
	}
}

// pointerUp commits a selection gesture or ends a stroke.
func (a *app) pointerUp() {
	if a.selecting {
		if p, ok := a.pointerSurfacePoint(); ok {
			a.session.Apply(p)
		} else {
			a.session.Apply(a.selStart)
		}
		a.selecting = false
	}
	a.painting = false
	a.updateTitle()
}

// pointerSurfacePoint maps the pointer to a surface pixel, through the
// canvas transform in 2D or a picking ray against the model in 3D.
func (a *app) pointerSurfacePoint() (tools.Point, bool) {
	if a.mode == viewCanvas {
		x := int((float32(a.mouseX) - a.pan.X) / a.zoom)
		y := int((float32(a.mouseY) - a.pan.Y) / a.zoom)
		if float32(a.mouseX) < a.pan.X || float32(a.mouseY) < a.pan.Y {
			return tools.Point{}, false
		}
		if x >= skin.AtlasWidth || y >= a.session.AtlasHeight() {
			return tools.Point{}, false
		}
		return tools.Point{X: x, Y: y}, true
	}

	w, h := a.rend.Size()
	proj := a.projectionMatrix()
	view := a.cam.ViewMatrix()
	inv := proj.Mul(view).Inverse()
	ray := picking.ScreenToRay(float32(a.mouseX), float32(a.mouseY), float32(w), float32(h), inv)

	x, y, ok := a.model.Pick(ray)
	if !ok {
		return tools.Point{}, false
	}
	return tools.Point{X: x, Y: y}, true
}

func (a *app) projectionMatrix() math.Mat4 {
	w, h := a.rend.Size()
	aspect := float32(w) / float32(h)
	return math.Perspective(0.785398, aspect, 0.1, 1000.0) // 45 degrees FOV
}

// zoomCanvas scales the 2D view around its current center.
func (a *app) zoomCanvas(delta float32) {
	old := a.zoom
	if delta > 0 {
		a.zoom *= 1.25
	} else if delta < 0 {
		a.zoom /= 1.25
	}
	if a.zoom < 1 {
		a.zoom = 1
	}
	if a.zoom > 32 {
		a.zoom = 32
	}
	if a.zoom != old {
		a.centerCanvas()
	}
}

// clickSwatch handles clicks on the palette row. Returns true when the
// click landed on a swatch.
func (a *app) clickSwatch() bool {
	if a.mouseY < swatchTop || a.mouseY >= swatchTop+swatchSize {
		return false
	}
	for i, hex := range palette {
		x := swatchLeft + i*(swatchSize+swatchPad)
		if a.mouseX >= x && a.mouseX < x+swatchSize {
			a.session.SetColorHex(hex)
			a.updateTitle()
			return true
		}
	}
	return false
}

func (a *app) drawPreview() {
	proj := a.projectionMatrix()
	view := a.cam.ViewMatrix()
	a.rend.Avatar.Draw(proj, view, math.Identity(), a.skinTex)
}

func (a *app) drawCanvas() {
	w, h := a.rend.Size()
	ortho := math.Ortho(0, float32(w), float32(h), 0, -1, 1)

	atlasW := a.zoom * float32(skin.AtlasWidth)
	atlasH := a.zoom * float32(a.session.AtlasHeight())
	quad := math.Translate(a.pan.X, a.pan.Y, 0).Mul(math.Scale(atlasW, atlasH, 1))

	a.rend.Canvas.Begin()
	a.rend.Canvas.DrawAtlas(ortho, quad, a.skinTex)

	// Committed selection outline
	if sel, ok := a.session.SelectionRect(); ok {
		a.strokeCells(sel.X, sel.Y, sel.W, sel.H, [4]float32{1, 1, 1, 0.9})
	}

	// Live preview of an in-progress selection gesture
	if a.selecting {
		if p, ok := a.pointerSurfacePoint(); ok {
			x, y := a.selStart.X, a.selStart.Y
			if p.X < x {
				x = p.X
			}
			if p.Y < y {
				y = p.Y
			}
			sw := absInt(p.X-a.selStart.X) + 1
			sh := absInt(p.Y-a.selStart.Y) + 1
			a.strokeCells(x, y, sw, sh, [4]float32{1, 1, 1, 0.5})
		}
	}

	a.drawSwatches()
	a.rend.Canvas.Flush(ortho)
}

// strokeCells outlines a rectangle given in surface pixels.
func (a *app) strokeCells(x, y, w, h int, col [4]float32) {
	a.rend.Canvas.StrokeRect(
		a.pan.X+float32(x)*a.zoom,
		a.pan.Y+float32(y)*a.zoom,
		float32(w)*a.zoom,
		float32(h)*a.zoom,
		1, col)
}

func (a *app) drawSwatches() {
	current := a.session.ColorHex()
	for i, hex := range palette {
		c := colorx.HexToRGBA(hex, 1)
		x := float32(swatchLeft + i*(swatchSize+swatchPad))
		a.rend.Canvas.FillRect(x, swatchTop, swatchSize, swatchSize,
			[4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1})
		if hex == current {
			a.rend.Canvas.StrokeRect(x, swatchTop, swatchSize, swatchSize, 2, [4]float32{1, 1, 1, 1})
		}
	}
}

func (a *app) openSkinDialog() {
	path, err := assets.OpenSkinDialog()
	if err != nil {
		if !assets.Cancelled(err) {
			logger.Warn("open dialog failed", zap.Error(err))
		}
		return
	}
	a.openSkin(path)
}

func (a *app) openSkin(path string) {
	surface, err := assets.LoadSkin(path)
	if err != nil {
		logger.Warn("skin load failed", zap.String("path", path), zap.Error(err))
		return
	}

	a.session.LoadSurface(surface)
	a.lastPath = path
	a.rebuildModel(a.model.Variant)
	a.centerCanvas()
	a.updateTitle()
}

func (a *app) saveSkinDialog() {
	path, err := assets.SaveSkinDialog()
	if err != nil {
		if !assets.Cancelled(err) {
			logger.Warn("save dialog failed", zap.Error(err))
		}
		return
	}
	a.lastPath = path
	a.saveSkin()
}

func (a *app) saveSkin() {
	if a.lastPath == "" {
		a.saveSkinDialog()
		return
	}

	// Queued strokes must land in the raster before it is read.
	a.session.Sync()
	if err := assets.SaveSkin(a.lastPath, a.session.Surface()); err != nil {
		logger.Error("skin save failed", zap.String("path", a.lastPath), zap.Error(err))
		return
	}
	logger.Info("skin saved", zap.String("path", a.lastPath))
	a.updateTitle()
}

// captureScreenshot reads back the framebuffer and saves it as a PNG.
func (a *app) captureScreenshot() {
	w, h := a.rend.Size()
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// persist writes session settings back to the config file.
func (a *app) persist() {
	a.cfg.Editor.Variant = a.model.Variant.String()
	a.cfg.Editor.BrushColor = a.session.ColorHex()
	a.cfg.Editor.BrushSize = a.session.BrushSize()
	a.cfg.Editor.Hardness = a.session.Hardness()
	a.cfg.Editor.Opacity = a.session.Opacity()
	a.cfg.Editor.Symmetry = a.session.Symmetry()
	a.cfg.Editor.LastSkinPath = a.lastPath

	if err := a.cfg.Save(); err != nil {
		logger.Warn("config save failed", zap.Error(err))
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
