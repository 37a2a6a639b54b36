//go:build linux

package scene

import (
	"fmt"
	"time"

	"github.com/wlrcore/wlrcore/gmath"
	"github.com/wlrcore/wlrcore/output"
	"github.com/wlrcore/wlrcore/render"
)

// RenderFrame implements spec.md §4.7.6: acquire a back buffer from
// the output's swapchain, rotate the damage ring, begin a buffer
// pass, compose the render list front-to-back (culling the
// background, promoting buffers to textures, applying the
// single-pixel-buffer fast path), submit, and return a staged
// output.State ready for the caller to pass to Output.CommitState.
func (so *SceneOutput) RenderFrame(rend render.Renderer, now time.Time) (*output.State, error) {
	list := so.BuildRenderList()

	sc := so.Output.Swapchain()
	if sc == nil {
		return nil, fmt.Errorf("scene: output %q has no swapchain attached", so.Output.Name)
	}
	buf := sc.AcquireDummyBuffer()

	damage := so.frameDamage(0)

	pass, err := rend.BeginBufferPass(buf.Width(), buf.Height(), buf.Format(), render.BufferPassOptions{SignalTimelineFD: -1})
	if err != nil {
		return nil, fmt.Errorf("scene: begin buffer pass: %w", err)
	}

	for _, node := range list {
		nodeBounds := node.GlobalBounds()
		clipBox := nodeBounds.Intersection(damage.Extents())
		if clipBox.Empty() {
			continue
		}

		switch node.Kind {
		case NodeRect:
			pass.AddRect(render.RectOptions{Box: clipBox, Color: node.RectColor})

		case NodeBuffer:
			if spb, ok := node.Buffer.(render.SinglePixelBuffer); ok {
				if r, g, b, a, ok2 := spb.SinglePixelColor(); ok2 {
					pass.AddRect(render.RectOptions{Box: clipBox, Color: singlePixelColor(r, g, b, a)})
					continue
				}
			}

			tex, err := rend.TextureFromBuffer(node.Buffer)
			if err != nil {
				if so.log != nil {
					so.log.Warn("scene: texture import failed, skipping node", "error", err)
				}
				continue
			}
			pass.AddTexture(render.TextureOptions{
				Texture:     tex,
				Src:         node.BufferSrc,
				Dst:         clipBox,
				Transform:   node.Transform,
				Filter:      node.Filter,
				Opacity:     node.Opacity,
				ColorSpace:  so.combinedColorTransform(node),
				WaitPointFD: node.WaitTimelineFD,
			})
		}
	}

	if _, err := pass.Submit(); err != nil {
		return nil, fmt.Errorf("scene: submit buffer pass: %w", err)
	}

	so.damage.Acknowledge(damage)
	so.recordHighlight(damage, now)

	state := &output.State{}
	state.SetBuffer(buf, gmath.NewFBox(0, 0, float64(buf.Width()), float64(buf.Height())), so.box)
	return state, nil
}

// combinedColorTransform builds the input-descriptor → linear →
// inverse-EOTF chain spec.md §4.7.6 names, or nil (treated as
// identity by the renderer) when the node carries no colour metadata
// beyond the default signal.
func (so *SceneOutput) combinedColorTransform(node *Node) *render.ColourTransform {
	if node.Transfer == gmath.TransferUnknown && node.Primaries == gmath.PrimariesUnknown {
		return nil
	}
	var children []*render.ColourTransform
	if m, ok := gmath.PrimariesToXYZ(node.Primaries); ok {
		children = append(children, render.NewMatrixTransform(m))
	}
	children = append(children, render.NewInverseEotfTransform(node.Transfer))
	return render.NewPipeline(children...)
}

func singlePixelColor(r, g, b, a uint32) gmath.Color {
	const maxU32 = float32(1<<32 - 1)
	return gmath.NewColor(float32(r)/maxU32, float32(g)/maxU32, float32(b)/maxU32, float32(a)/maxU32)
}
