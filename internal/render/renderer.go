package render

import (
	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/ui"
)

// Renderer renders results onto one binding.
type Renderer struct {
	binding ui.Binding
}

// New creates a renderer for the binding.
func New(binding ui.Binding) *Renderer {
	return &Renderer{binding: binding}
}

// Render applies a result. Bindings that batch see one change per call.
func (r *Renderer) Render(res core.Result) {
	if batcher, ok := r.binding.(ui.Batcher); ok {
		batcher.Batch(func(b ui.Binding) {
			Render(b, res)
		})
		return
	}
	Render(r.binding, res)
}

// RenderCommandFailure shows the banner for a command that could not be sent.
func (r *Renderer) RenderCommandFailure(cmd core.Command, err error) {
	if batcher, ok := r.binding.(ui.Batcher); ok {
		batcher.Batch(func(b ui.Binding) {
			RenderCommandFailure(b, cmd, err)
		})
		return
	}
	RenderCommandFailure(r.binding, cmd, err)
}
