package willowmap

// DrawOp is a single draw call captured by a Recorder.
type DrawOp struct {
	Icon  *Icon  // nil for text
	Text  string // empty for icons
	Style *LabelStyle
	// X and Y are the arguments passed to the Surface (safe pixels).
	X, Y float32
	// Transform is the surface matrix in effect for the call.
	Transform [6]float32
	// ViewX and ViewY are the physical view pixels of the draw origin,
	// computed in float32 the way a GPU would.
	ViewX, ViewY float32
}

// ViewPoint maps the local icon point (lx, ly), relative to the draw origin,
// through the recorded transform in float32.
func (op DrawOp) ViewPoint(lx, ly float32) (float32, float32) {
	return affine32(op.Transform).apply(op.X+lx, op.Y+ly)
}

// Recorder is a Surface that records draw calls instead of rasterizing them.
// It keeps its transform stack in float32 so that precision problems show up
// exactly as they would on a real target. Useful for automated testing of
// hosts and overlays without a window.
type Recorder struct {
	Ops   []DrawOp
	m     affine32
	stack []affine32
}

// NewRecorder creates an empty Recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{m: identity32}
}

// Reset clears recorded ops and the transform stack.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.m = identity32
	r.stack = r.stack[:0]
}

// Depth returns the current save depth.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Transform returns the current surface matrix.
func (r *Recorder) Transform() [6]float32 {
	return r.m
}

// Icons returns the icons drawn, in call order.
func (r *Recorder) Icons() []*Icon {
	var out []*Icon
	for _, op := range r.Ops {
		if op.Icon != nil {
			out = append(out, op.Icon)
		}
	}
	return out
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.m)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		panic("willowmap: Recorder.Restore without Save")
	}
	r.m = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(dx, dy float32) { r.m = r.m.translate(dx, dy) }
func (r *Recorder) Scale(sx, sy float32)     { r.m = r.m.scale(sx, sy) }
func (r *Recorder) Rotate(deg float32)       { r.m = r.m.rotate(deg) }

func (r *Recorder) DrawIcon(icon *Icon, x, y float32) {
	vx, vy := r.m.apply(x, y)
	r.Ops = append(r.Ops, DrawOp{Icon: icon, X: x, Y: y, Transform: r.m, ViewX: vx, ViewY: vy})
}

func (r *Recorder) DrawText(text string, x, y float32, style *LabelStyle) {
	vx, vy := r.m.apply(x, y)
	r.Ops = append(r.Ops, DrawOp{Text: text, Style: style, X: x, Y: y, Transform: r.m, ViewX: vx, ViewY: vy})
}
