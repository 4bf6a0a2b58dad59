package component

import "image/color"

// Renderable references a model registered with the renderer by name. The
// model itself is owned by the asset registry.
type Renderable struct {
	Model string
	Tint  color.RGBA
}

var RenderableComponent = NewComponent[Renderable]()

// DefaultTint is used when a renderable does not specify one.
var DefaultTint = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// NewRenderable references model with the default tint.
func NewRenderable(model string) *Renderable {
	return &Renderable{Model: model, Tint: DefaultTint}
}
