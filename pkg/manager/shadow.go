package manager

// Frame is a node's layout rectangle in logical pixels.
type Frame struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ShadowView is the generic layout-only representation of a node. Node
// types that need no layout state beyond a frame use it as-is via
// BaseViewManager; types with richer shadow state embed it. A shadow
// view is mutated only in the layout context and is owned by one worker
// at a time, so it carries no locking.
type ShadowView struct {
	frame Frame
	dirty bool
}

// NewShadowView creates an unconfigured shadow view.
func NewShadowView() *ShadowView {
	return &ShadowView{}
}

// Frame returns the node's current layout rectangle.
func (s *ShadowView) Frame() Frame { return s.frame }

// SetFrame updates the layout rectangle and marks the node dirty, so the
// node type's manager can emit a mutation block for it this cycle.
func (s *ShadowView) SetFrame(frame Frame) {
	if s.frame == frame {
		return
	}
	s.frame = frame
	s.dirty = true
}

// Dirty reports whether the node changed since the last cycle.
func (s *ShadowView) Dirty() bool { return s.dirty }

// MarkDirty flags the node for this cycle's mutation block.
func (s *ShadowView) MarkDirty() { s.dirty = true }

// ClearDirty resets the dirty flag after a cycle's block is produced.
func (s *ShadowView) ClearDirty() { s.dirty = false }
