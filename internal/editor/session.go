// Package editor ties the keying pipeline together: it owns the source
// raster, the manual stroke overlay and the pointer state machine, and
// regenerates the processed output on demand.
package editor

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/MeKo-Tech/iconkey/internal/chroma"
	"github.com/MeKo-Tech/iconkey/internal/composite"
	"github.com/MeKo-Tech/iconkey/internal/imgio"
	"github.com/MeKo-Tech/iconkey/internal/overlay"
)

// Enhancer is an external image enhancement collaborator, typically an
// AI upscaler. It returns a usable image (same or different dimensions)
// or an error; the session never retries it.
type Enhancer interface {
	Enhance(ctx context.Context, img image.Image) (image.Image, error)
}

// EditState tracks the manual-erase pointer state machine.
type EditState int

const (
	// StateIdle means no stroke is in progress.
	StateIdle EditState = iota
	// StatePainting means the pointer is down inside the image bounds.
	StatePainting
)

// Info describes the loaded image. Width and Height are zero until a
// source has been loaded; Processed reports whether the compositor has
// produced output at least once since then.
type Info struct {
	Width     int
	Height    int
	Processed bool
}

// Session owns the current source raster, the stroke overlay and the
// last composited output. Output is always derived from the untouched
// source plus strokes, never from previous output, so repeated passes
// with new options do not compound. Each pass reads an options snapshot
// taken at invocation time.
//
// A session is single-threaded: one active pointer, no interleaved
// paints.
type Session struct {
	source    *image.NRGBA
	strokes   *overlay.Overlay
	processed *image.NRGBA
	opts      chroma.Options
	state     EditState
	logger    *slog.Logger
}

// NewSession creates a session with validated initial options. logger
// may be nil to use slog.Default.
func NewSession(opts chroma.Options, logger *slog.Logger) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Session{opts: opts, logger: logger}, nil
}

// Load replaces the source raster. Strokes are raster-specific, so the
// overlay is reinitialized at the new dimensions and any previous
// output is dropped.
func (s *Session) Load(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image provided")
	}

	src := imgio.ToNRGBA(img)
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", b.Dx(), b.Dy())
	}

	ov, err := overlay.New(b.Dx(), b.Dy())
	if err != nil {
		return err
	}

	s.source = src
	s.strokes = ov
	s.processed = nil
	s.state = StateIdle

	s.log().Debug("image loaded", "width", b.Dx(), "height", b.Dy())
	return nil
}

// SetOptions validates and stores new options. The next compositing
// pass snapshots them; a pass already under way is unaffected.
func (s *Session) SetOptions(opts chroma.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.opts = opts
	return nil
}

// Options returns the currently stored options.
func (s *Session) Options() chroma.Options {
	return s.opts
}

// State returns the current edit-mode state.
func (s *Session) State() EditState {
	return s.state
}

// Info returns the current image state.
func (s *Session) Info() Info {
	if s.source == nil {
		return Info{}
	}
	b := s.source.Bounds()
	return Info{Width: b.Dx(), Height: b.Dy(), Processed: s.processed != nil}
}

// Processed returns the last composited output, or nil before the first
// pass.
func (s *Session) Processed() *image.NRGBA {
	return s.processed
}

// Recomposite runs a full keying pass: resolve the target color,
// flatten the stroke overlay onto the untouched source and rewrite the
// alpha channel. The returned buffer is also retained as the session's
// processed output.
func (s *Session) Recomposite() (*image.NRGBA, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	opts := s.opts
	if opts.AutoDetect {
		target, err := chroma.EstimateBackground(s.source)
		if err != nil {
			return nil, err
		}
		opts.Target = target
	}

	flat, err := composite.OverlayOnto(s.source, s.strokes.Image())
	if err != nil {
		return nil, err
	}
	if err := chroma.Apply(flat, opts); err != nil {
		return nil, err
	}

	s.processed = flat
	return flat, nil
}

// PointerDown starts a stroke. A press outside the displayed image is
// silently ignored and the session stays idle. A successful paint
// triggers a full recomposite; rescanning every pixel per stroke is the
// accepted cost of keeping classification stateless.
func (s *Session) PointerDown(vp overlay.Viewport, x, y float64) (*image.NRGBA, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	target, err := s.resolveTarget()
	if err != nil {
		return nil, err
	}
	if !s.strokes.Paint(vp, x, y, s.opts.BrushSize, target) {
		return s.processed, nil
	}

	s.state = StatePainting
	return s.Recomposite()
}

// PointerMove continues a stroke while painting. Moves while idle are
// no-ops; leaving the viewport ends the stroke.
func (s *Session) PointerMove(vp overlay.Viewport, x, y float64) (*image.NRGBA, error) {
	if s.state != StatePainting {
		return s.processed, nil
	}

	target, err := s.resolveTarget()
	if err != nil {
		return nil, err
	}
	if !s.strokes.Paint(vp, x, y, s.opts.BrushSize, target) {
		s.state = StateIdle
		return s.processed, nil
	}

	return s.Recomposite()
}

// PointerUp ends the current stroke.
func (s *Session) PointerUp() {
	s.state = StateIdle
}

// ResetStrokes clears all manual strokes, keeping the source image.
func (s *Session) ResetStrokes() error {
	if s.source == nil {
		return fmt.Errorf("no image loaded")
	}
	b := s.source.Bounds()
	return s.strokes.Reset(b.Dx(), b.Dy())
}

// Enhance sends the current source to the external enhancement service
// and adopts the result as the new source, then recomposites. At most
// one upstream call is made and it is not retried. On any failure the
// previous raster and output are kept untouched. When the enhanced
// image has different dimensions the strokes are reset, since they no
// longer map onto the raster.
func (s *Session) Enhance(ctx context.Context, enhancer Enhancer) error {
	if s.source == nil {
		return fmt.Errorf("no image loaded")
	}
	if enhancer == nil {
		return fmt.Errorf("nil enhancer")
	}

	enhanced, err := enhancer.Enhance(ctx, s.source)
	if err != nil {
		return fmt.Errorf("enhancement failed: %w", err)
	}
	if enhanced == nil {
		return fmt.Errorf("enhancement returned no image")
	}

	src := imgio.ToNRGBA(enhanced)
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("enhancement returned invalid dimensions %dx%d", b.Dx(), b.Dy())
	}

	old := s.source.Bounds()
	if b.Dx() != old.Dx() || b.Dy() != old.Dy() {
		ov, err := overlay.New(b.Dx(), b.Dy())
		if err != nil {
			return err
		}
		s.strokes = ov
		s.log().Debug("enhanced image changed dimensions, strokes reset",
			"old_width", old.Dx(), "old_height", old.Dy(),
			"width", b.Dx(), "height", b.Dy(),
		)
	}

	s.source = src
	if _, err := s.Recomposite(); err != nil {
		return err
	}
	return nil
}

// resolveTarget returns the color strokes are painted with: the stored
// target, or the detected background when auto-detect is on.
func (s *Session) resolveTarget() (chroma.Color, error) {
	if !s.opts.AutoDetect {
		return s.opts.Target, nil
	}
	return chroma.EstimateBackground(s.source)
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
