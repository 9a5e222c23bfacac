// Package projection maps in-game world coordinates onto the pixels of a
// displayed scene background.
package projection

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// XDirection tells whether positive world X grows to the right or the left
type XDirection string

// YDirection tells whether positive world Z grows downwards or upwards
type YDirection string

// Axis directions
const (
	XPlus  XDirection = "x+"
	XMinus XDirection = "x-"
	YPlus  YDirection = "y+"
	YMinus YDirection = "y-"
)

var (
	// ErrImageNotReady is returned when the natural size of the background
	// is not known yet, i.e. the image has not finished loading.
	ErrImageNotReady = errors.New("projection: background image not ready")

	// ErrInvalidScene is returned for scene parameters that cannot produce
	// an invertible transform.
	ErrInvalidScene = errors.New("projection: invalid scene parameters")
)

// SceneConfig holds the coordinate-transform parameters of one scene.
// Values are defined at startup and never mutated.
type SceneConfig struct {
	PhysicalGridWidth float64    // world units per grid cell, in natural image pixels
	Offset            vec.Vec2   // screen offset of the world origin from the canvas centre
	ImagePath         string     // background image, relative to the asset root
	XDirection        XDirection // x+ or x-
	YDirection        YDirection // y+ or y-
	ReverseXY         bool       // swap (worldX, worldZ) before projecting
}

// WithDirections returns a copy of the scene with the axis directions replaced
func (s SceneConfig) WithDirections(x XDirection, y YDirection) SceneConfig {
	s.XDirection = x
	s.YDirection = y
	return s
}

// Validate reports whether the scene can be projected
func (s SceneConfig) Validate() error {
	if !(s.PhysicalGridWidth > 0) {
		return fmt.Errorf("%w: grid width %v", ErrInvalidScene, s.PhysicalGridWidth)
	}
	if _, err := ParseXDirection(string(s.XDirection)); err != nil {
		return err
	}
	if _, err := ParseYDirection(string(s.YDirection)); err != nil {
		return err
	}
	return nil
}

// ParseXDirection converts "x+" / "x-" into an XDirection
func ParseXDirection(s string) (XDirection, error) {
	switch XDirection(s) {
	case XPlus, XMinus:
		return XDirection(s), nil
	}
	return "", fmt.Errorf("%w: x direction %q", ErrInvalidScene, s)
}

// ParseYDirection converts "y+" / "y-" into a YDirection
func ParseYDirection(s string) (YDirection, error) {
	switch YDirection(s) {
	case YPlus, YMinus:
		return YDirection(s), nil
	}
	return "", fmt.Errorf("%w: y direction %q", ErrInvalidScene, s)
}

// Canvas describes the background as currently displayed.
// Width and Height are the display size, which may differ from the natural
// (decoded) size when the image is scaled.
type Canvas struct {
	Width         float64
	Height        float64
	NaturalWidth  float64
	NaturalHeight float64
}

// Ready reports whether both the display and the natural size are known
func (c Canvas) Ready() bool {
	return c.Width > 0 && c.Height > 0 && c.NaturalWidth > 0
}

// Transform is the affine world-to-screen map for one scene and canvas.
//
// The matrix uses the layout of seehuhn.de/go/geom/matrix:
// x' = m[0]*x + m[2]*y + m[4], y' = m[1]*x + m[3]*y + m[5].
type Transform struct {
	m      matrix.Matrix
	gridPx float64
	origin vec.Vec2
}

// NewTransform builds the transform for scene on canvas. If override is not
// nil it replaces the scene's offset (user calibration).
func NewTransform(scene SceneConfig, override *vec.Vec2, canvas Canvas) (Transform, error) {
	if err := scene.Validate(); err != nil {
		return Transform{}, err
	}
	if !canvas.Ready() {
		return Transform{}, ErrImageNotReady
	}

	offset := scene.Offset
	if override != nil {
		offset = *override
	}

	gridPx := scene.PhysicalGridWidth * (canvas.Width / canvas.NaturalWidth)
	origin := vec.Vec2{
		X: canvas.Width/2 + offset.X,
		Y: canvas.Height/2 + offset.Y,
	}

	sx := gridPx
	if scene.XDirection == XMinus {
		sx = -gridPx
	}
	sy := gridPx
	if scene.YDirection == YMinus {
		sy = -gridPx
	}

	m := matrix.Matrix{sx, 0, 0, sy, origin.X, origin.Y}
	if scene.ReverseXY {
		m = matrix.Matrix{0, sy, sx, 0, origin.X, origin.Y}
	}

	return Transform{m: m, gridPx: gridPx, origin: origin}, nil
}

// Project maps a world point to screen pixels
func (t Transform) Project(world vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t.m[0]*world.X + t.m[2]*world.Y + t.m[4],
		Y: t.m[1]*world.X + t.m[3]*world.Y + t.m[5],
	}
}

// Unproject maps screen pixels back to the world point that projects there
func (t Transform) Unproject(screen vec.Vec2) vec.Vec2 {
	det := t.m[0]*t.m[3] - t.m[1]*t.m[2]
	dx := screen.X - t.m[4]
	dy := screen.Y - t.m[5]
	return vec.Vec2{
		X: (t.m[3]*dx - t.m[2]*dy) / det,
		Y: (t.m[0]*dy - t.m[1]*dx) / det,
	}
}

// GridPx returns the displayed width of one grid cell in pixels
func (t Transform) GridPx() float64 {
	return t.gridPx
}

// Origin returns the screen position of the world origin
func (t Transform) Origin() vec.Vec2 {
	return t.origin
}

// Matrix returns the underlying affine matrix
func (t Transform) Matrix() matrix.Matrix {
	return t.m
}

// Project is the one-shot form of NewTransform followed by Transform.Project.
func Project(world vec.Vec2, scene SceneConfig, override *vec.Vec2, canvas Canvas) (vec.Vec2, error) {
	t, err := NewTransform(scene, override, canvas)
	if err != nil {
		return vec.Vec2{}, err
	}
	return t.Project(world), nil
}
