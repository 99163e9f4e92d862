package lwf

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MatrixTween interpolates every field of a Matrix. It stands in for the
// keyframe interpolation of a timeline: call Update(dt) each tick and feed
// the result to a TextObject.
//
// There is no global animation manager. Callers run Update themselves.
type MatrixTween struct {
	tweens [6]*gween.Tween
	Value  Matrix
	Done   bool
}

// NewMatrixTween creates a tween from one matrix to another over duration
// seconds using the easing function.
func NewMatrixTween(from, to Matrix, duration float32, fn ease.TweenFunc) *MatrixTween {
	t := &MatrixTween{Value: from}
	t.tweens[0] = gween.New(float32(from.ScaleX), float32(to.ScaleX), duration, fn)
	t.tweens[1] = gween.New(float32(from.ScaleY), float32(to.ScaleY), duration, fn)
	t.tweens[2] = gween.New(float32(from.Skew0), float32(to.Skew0), duration, fn)
	t.tweens[3] = gween.New(float32(from.Skew1), float32(to.Skew1), duration, fn)
	t.tweens[4] = gween.New(float32(from.TranslateX), float32(to.TranslateX), duration, fn)
	t.tweens[5] = gween.New(float32(from.TranslateY), float32(to.TranslateY), duration, fn)
	return t
}

// Update advances the tween by dt seconds and returns the current matrix.
// Once Done, the final value is returned unchanged.
func (t *MatrixTween) Update(dt float32) Matrix {
	if t.Done {
		return t.Value
	}
	var v [6]float32
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		v[i] = val
		if !finished {
			allDone = false
		}
	}
	t.Value = Matrix{
		ScaleX:     float64(v[0]),
		ScaleY:     float64(v[1]),
		Skew0:      float64(v[2]),
		Skew1:      float64(v[3]),
		TranslateX: float64(v[4]),
		TranslateY: float64(v[5]),
	}
	t.Done = allDone
	return t.Value
}

// Reset rewinds the tween to its start.
func (t *MatrixTween) Reset() {
	for _, tw := range t.tweens {
		tw.Reset()
	}
	t.Done = false
}

// ColorTween interpolates the multiplier of a ColorTransform.
type ColorTween struct {
	tweens [4]*gween.Tween
	Value  ColorTransform
	Done   bool
}

// NewColorTween creates a tween between two tints over duration seconds.
func NewColorTween(from, to ColorTransform, duration float32, fn ease.TweenFunc) *ColorTween {
	t := &ColorTween{Value: from}
	t.tweens[0] = gween.New(float32(from.Multi.Red), float32(to.Multi.Red), duration, fn)
	t.tweens[1] = gween.New(float32(from.Multi.Green), float32(to.Multi.Green), duration, fn)
	t.tweens[2] = gween.New(float32(from.Multi.Blue), float32(to.Multi.Blue), duration, fn)
	t.tweens[3] = gween.New(float32(from.Multi.Alpha), float32(to.Multi.Alpha), duration, fn)
	return t
}

// Update advances the tween by dt seconds and returns the current tint.
func (t *ColorTween) Update(dt float32) ColorTransform {
	if t.Done {
		return t.Value
	}
	var v [4]float32
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		v[i] = val
		if !finished {
			allDone = false
		}
	}
	t.Value = ColorTransform{Multi: Color{
		Red:   float64(v[0]),
		Green: float64(v[1]),
		Blue:  float64(v[2]),
		Alpha: float64(v[3]),
	}}
	t.Done = allDone
	return t.Value
}

// Reset rewinds the tween to its start.
func (t *ColorTween) Reset() {
	for _, tw := range t.tweens {
		tw.Reset()
	}
	t.Done = false
}
