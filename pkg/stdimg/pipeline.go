package stdimg

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/InfinityTools/go-logging"
	"golang.org/x/image/draw"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// Pipeline runs one filter set over pixel buffers: the catalog families in
// their fixed order, then the layer adjustment.
type Pipeline struct {
	params Params
	seed   int64
	rng    *rand.Rand
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSeed overrides Params.Seed. Every Run starts from a fresh source
// seeded with it, so repeated runs give identical output.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) { p.seed = seed }
}

// WithRand injects a random source shared by all runs. A pipeline built
// with WithRand must not Run concurrently.
func WithRand(r *rand.Rand) Option {
	return func(p *Pipeline) { p.rng = r }
}

// NewPipeline prepares params for repeated application.
func NewPipeline(params Params, opts ...Option) *Pipeline {
	p := &Pipeline{params: params, seed: params.Seed}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ops lists every step Run considers, in application order.
func (p *Pipeline) Ops() []Op {
	return append(p.params.Ops(), p.params.Layer)
}

// Run applies the active steps to src and returns a new buffer; src is
// never modified. Only a malformed src is an error.
func (p *Pipeline) Run(src *image.NRGBA) (*image.NRGBA, error) {
	if err := raster.Validate(src); err != nil {
		return nil, fmt.Errorf("apply filters: %w", err)
	}
	env := &Env{Rand: p.rng}
	if env.Rand == nil {
		env.Rand = newRand(p.seed)
	}
	cur := src
	for _, op := range p.Ops() {
		if !op.Active() {
			continue
		}
		logging.Logf("Applying %s\n", op.Name())
		cur = op.Apply(cur, env)
	}
	if cur == src {
		cur = raster.Clone(src)
	}
	return cur, nil
}

// FitWithin downscales src with Catmull-Rom so that neither side exceeds
// maxDim, keeping the aspect ratio. Smaller buffers and maxDim <= 0 return
// src unchanged.
func FitWithin(src *image.NRGBA, maxDim int) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}
	scale := float64(maxDim) / float64(max(w, h))
	nw := max(1, int(raster.Round(float64(w)*scale)))
	nh := max(1, int(raster.Round(float64(h)*scale)))
	dst := raster.New(nw, nh)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	logging.Logf("Preview scaled %dx%d -> %dx%d\n", w, h, nw, nh)
	return dst
}

// ApplyFilters rasterizes src, optionally fits it within maxDim for
// previews, and runs the full filter set over it.
func ApplyFilters(src image.Image, params Params, maxDim int) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("apply filters: %w: nil image", raster.ErrShape)
	}
	buf := FitWithin(raster.FromImage(src), maxDim)
	return NewPipeline(params).Run(buf)
}
