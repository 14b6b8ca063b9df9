package editor

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pixelforge/skinstudio/internal/logger"
	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/internal/skin/tools"
	"github.com/pixelforge/skinstudio/pkg/colorx"
)

// ToolKind names the selectable tools.
type ToolKind int

const (
	KindBrush ToolKind = iota
	KindEraser
	KindEyedropper
	KindFill
	KindRectSelect
)

var toolKindNames = map[ToolKind]string{
	KindBrush:      "brush",
	KindEraser:     "eraser",
	KindEyedropper: "eyedropper",
	KindFill:       "fill",
	KindRectSelect: "rect-select",
}

func (k ToolKind) String() string { return toolKindNames[k] }

// Session holds everything one editing session needs: the surface, the
// tool set, current tool settings, and the snapshot publisher. All state is
// mutex-guarded so tool application may run either inline on the caller or
// on the session's worker goroutine; both produce identical rasters.
type Session struct {
	mu      sync.Mutex
	surface *skin.Surface

	active     ToolKind
	colorHex   string
	opacity    float64
	size       int
	hardness   float64
	symmetry   bool
	rectSelect *tools.RectSelect

	publisher *Publisher

	cmds chan command
	done chan struct{}
}

type commandOp int

const (
	opApply commandOp = iota
	opBeginGesture
	opSync
)

// command carries a pointer location plus the tool kind and settings
// captured at enqueue time, so a queued stroke is unaffected by later
// setting changes.
type command struct {
	op     commandOp
	point  tools.Point
	kind   ToolKind
	params tools.Params
	reply  chan struct{}
}

// NewSession creates a session over the given surface with default brush
// settings. Tool application runs inline until StartWorker is called.
func NewSession(surface *skin.Surface) *Session {
	return &Session{
		surface:    surface,
		active:     KindBrush,
		colorHex:   "#d96a3b",
		opacity:    1,
		size:       1,
		hardness:   1,
		rectSelect: &tools.RectSelect{},
		publisher:  NewPublisher(),
	}
}

// StartWorker moves tool application onto a dedicated goroutine so brush
// and fill computation never stalls input handling. Commands are applied in
// order; snapshots flow back through the publisher.
func (s *Session) StartWorker() {
	if s.cmds != nil {
		return
	}
	s.cmds = make(chan command, 64)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for cmd := range s.cmds {
			switch cmd.op {
			case opApply:
				s.applyNow(cmd.kind, cmd.params, cmd.point)
			case opBeginGesture:
				s.beginGestureNow(cmd.kind, cmd.point)
			case opSync:
				close(cmd.reply)
			}
		}
	}()
	logger.Debug("session worker started")
}

// Close stops the worker, if any, after draining queued commands.
func (s *Session) Close() {
	if s.cmds == nil {
		return
	}
	close(s.cmds)
	<-s.done
	s.cmds = nil
	s.done = nil
}

// Publisher returns the snapshot hand-off shared with the render side.
func (s *Session) Publisher() *Publisher { return s.publisher }

// Apply runs the active tool at the given surface point: queued to the
// worker when one is running, inline otherwise. The tool kind and settings
// are fixed at this call, per the one-invocation immutability rule.
func (s *Session) Apply(p tools.Point) {
	s.mu.Lock()
	kind := s.active
	params := s.paramsLocked()
	s.mu.Unlock()

	if s.cmds != nil {
		s.cmds <- command{op: opApply, point: p, kind: kind, params: params}
		return
	}
	s.applyNow(kind, params, p)
}

// BeginGesture records a press for gesture tools (rectangle selection).
func (s *Session) BeginGesture(p tools.Point) {
	s.mu.Lock()
	kind := s.active
	s.mu.Unlock()

	if s.cmds != nil {
		s.cmds <- command{op: opBeginGesture, point: p, kind: kind}
		return
	}
	s.beginGestureNow(kind, p)
}

// Sync blocks until all queued commands have been applied. With no worker
// it returns immediately.
func (s *Session) Sync() {
	if s.cmds == nil {
		return
	}
	reply := make(chan struct{})
	s.cmds <- command{op: opSync, reply: reply}
	<-reply
}

func (s *Session) applyNow(kind ToolKind, params tools.Params, p tools.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.tool(kind).Apply(s.surface, p, params)

	if res.PickedColor != "" {
		s.colorHex = res.PickedColor
		logger.Debug("color picked", zap.String("hex", res.PickedColor))
	}
	if res.Changed {
		s.publishLocked()
	}
}

func (s *Session) beginGestureNow(kind ToolKind, p tools.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == KindRectSelect {
		s.rectSelect.Begin(p)
	}
}

// tool returns the strategy for a kind. Only the rectangle selection
// carries gesture state; the rest are stateless values.
func (s *Session) tool(kind ToolKind) tools.Tool {
	switch kind {
	case KindEraser:
		return tools.Eraser{}
	case KindEyedropper:
		return tools.Eyedropper{}
	case KindFill:
		return tools.Fill{}
	case KindRectSelect:
		return s.rectSelect
	default:
		return tools.Brush{}
	}
}

// paramsLocked snapshots the current tool parameters. The copy keeps them
// immutable for the duration of one tool invocation.
func (s *Session) paramsLocked() tools.Params {
	return tools.Params{
		Color:    colorx.HexToRGBA(s.colorHex, s.opacity),
		Size:     s.size,
		Hardness: s.hardness,
		Symmetry: s.symmetry,
	}
}

// publishLocked hands the render side a fresh raster copy tagged with the
// current generation.
func (s *Session) publishLocked() {
	s.publisher.Publish(&Snapshot{
		Generation: s.publisher.Generation(),
		Width:      s.surface.Width(),
		Height:     s.surface.Height(),
		Pix:        s.surface.SnapshotPix(),
	})
}

// LoadSurface atomically replaces the raster with a newly loaded skin. The
// generation advances first so any in-flight snapshot of the old texture is
// dropped on arrival, then the fresh raster is published.
func (s *Session) LoadSurface(next *skin.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publisher.Advance()
	s.surface.Replace(next)
	s.rectSelect = &tools.RectSelect{}
	s.publishLocked()

	logger.Info("surface loaded",
		zap.Int("width", s.surface.Width()),
		zap.Int("height", s.surface.Height()),
		zap.Uint64("generation", s.publisher.Generation()),
	)
}

// Surface exposes the raster for save/export paths. Callers must not
// mutate it; tools go through Apply.
func (s *Session) Surface() *skin.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// AtlasHeight returns the current raster height (64 or 128).
func (s *Session) AtlasHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Height()
}

// SelectionRect returns the active selection, or false when none is set.
func (s *Session) SelectionRect() (skin.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.surface.Selection()
	if sel == nil {
		return skin.Selection{}, false
	}
	return *sel, true
}

// ClearSelection drops the active selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.ClearSelection()
}

// ActiveTool returns the selected tool kind.
func (s *Session) ActiveTool() ToolKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActiveTool switches tools. An in-progress selection gesture is
// abandoned.
func (s *Session) SetActiveTool(kind ToolKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != kind {
		s.active = kind
		s.rectSelect = &tools.RectSelect{}
		logger.Debug("tool selected", zap.Stringer("tool", kind))
	}
}

// ColorHex returns the current paint color.
func (s *Session) ColorHex() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colorHex
}

// SetColorHex sets the paint color from a hex string.
func (s *Session) SetColorHex(hex string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colorHex = hex
}

// AdjustHSV shifts the paint color in HSV space, clamping saturation and
// value to [0,1].
func (s *Session) AdjustHSV(dh, ds, dv float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := colorx.HexToRGBA(s.colorHex, 1)
	h, sat, val := colorx.RGBToHSV(c.R, c.G, c.B)
	r, g, b := colorx.HSVToRGB(h+dh, sat+ds, val+dv)
	s.colorHex = colorx.RGBAToHex(colorx.RGBA{R: r, G: g, B: b, A: 255})
}

// BrushSize returns the brush/eraser diameter.
func (s *Session) BrushSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// SetBrushSize sets the brush/eraser diameter, floored at 1.
func (s *Session) SetBrushSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < 1 {
		size = 1
	}
	s.size = size
}

// Hardness returns the brush falloff hardness.
func (s *Session) Hardness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hardness
}

// SetHardness sets the brush falloff hardness, clamped to [0,1].
func (s *Session) SetHardness(h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hardness = clamp01(h)
}

// Opacity returns the stroke opacity.
func (s *Session) Opacity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opacity
}

// SetOpacity sets the stroke opacity, clamped to [0,1].
func (s *Session) SetOpacity(o float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opacity = clamp01(o)
}

// Symmetry reports whether mirror painting is on.
func (s *Session) Symmetry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symmetry
}

// ToggleSymmetry flips mirror painting and returns the new state.
func (s *Session) ToggleSymmetry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symmetry = !s.symmetry
	return s.symmetry
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
