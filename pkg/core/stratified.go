package core

import (
	"fmt"
	"image"
)

// StratifiedConfig holds construction options for a StratifiedSampler.
// The zero value of every field selects the recognized default; jittering
// defaults to on, so the flag is expressed as NoJitter.
type StratifiedConfig struct {
	NoJitter          bool // Exact stratum centers instead of random offsets within strata
	XSamples          int  // Strata per pixel in x
	YSamples          int  // Strata per pixel in y
	SampledDimensions int  // Number of precomputed scalar/point dimension tables
}

// DefaultStratifiedConfig returns the recognized option defaults
func DefaultStratifiedConfig() StratifiedConfig {
	return StratifiedConfig{
		XSamples:          4,
		YSamples:          4,
		SampledDimensions: 4,
	}
}

// StratifiedSampler produces stratified per-pixel sample patterns.
// SamplesPerPixel is fixed at construction as xSamples*ySamples. Dimension
// tables and array slots are regenerated on every StartPixel call; cursors
// are plain integers so Clone is a pure data copy.
type StratifiedSampler struct {
	samplesPerPixel int
	xSamples        int
	ySamples        int
	jitter          bool

	// Precomputed dimension tables, one table per requested scalar/point
	// dimension, each holding samplesPerPixel entries
	samples1D [][]float64
	samples2D [][]Vec2
	dim1D     int
	dim2D     int

	// Registered array requests; sizes are immutable once rendering starts.
	// Each slot stores size*samplesPerPixel entries addressed by offset.
	sizes1D  []int
	sizes2D  []int
	arrays1D [][]float64
	arrays2D [][]Vec2
	offset1D int
	offset2D int

	pixel       image.Point
	sampleIndex int
	started     bool

	rng RNG
}

// NewStratifiedSampler creates a sampler with xSamples×ySamples strata per
// pixel and the given number of precomputed dimension tables
func NewStratifiedSampler(xSamples, ySamples int, jitter bool, sampledDimensions int) *StratifiedSampler {
	s := &StratifiedSampler{
		samplesPerPixel: xSamples * ySamples,
		xSamples:        xSamples,
		ySamples:        ySamples,
		jitter:          jitter,
		rng:             NewRNG(),
	}
	for i := 0; i < sampledDimensions; i++ {
		s.samples1D = append(s.samples1D, make([]float64, s.samplesPerPixel))
		s.samples2D = append(s.samples2D, make([]Vec2, s.samplesPerPixel))
	}
	return s
}

// NewStratifiedSamplerFromConfig creates a sampler from construction
// options, applying defaults for unset counts
func NewStratifiedSamplerFromConfig(cfg StratifiedConfig) *StratifiedSampler {
	def := DefaultStratifiedConfig()
	if cfg.XSamples <= 0 {
		cfg.XSamples = def.XSamples
	}
	if cfg.YSamples <= 0 {
		cfg.YSamples = def.YSamples
	}
	if cfg.SampledDimensions <= 0 {
		cfg.SampledDimensions = def.SampledDimensions
	}
	return NewStratifiedSampler(cfg.XSamples, cfg.YSamples, !cfg.NoJitter, cfg.SampledDimensions)
}

// StartPixel regenerates every dimension table and array slot for pixel p.
// This is the only point at which stratified and Latin-hypercube patterns
// are computed.
func (s *StratifiedSampler) StartPixel(p image.Point) {
	s.started = true

	// Single stratified samples for the pixel, shuffled so that the i-th
	// entry of each dimension table is decorrelated across dimensions
	for i := range s.samples1D {
		StratifiedSample1D(s.samples1D[i], s.samplesPerPixel, &s.rng, s.jitter)
		Shuffle(s.samples1D[i], s.samplesPerPixel, 1, &s.rng)
	}
	for i := range s.samples2D {
		StratifiedSample2D(s.samples2D[i], s.xSamples, s.ySamples, &s.rng, s.jitter)
		Shuffle(s.samples2D[i], s.samplesPerPixel, 1, &s.rng)
	}

	// Arrays of samples, generated independently for every pixel sample.
	// 1D arrays are stratified; 2D arrays use Latin hypercube patterns so
	// that higher-dimensional estimators see uniform marginal coverage
	// without axis-aligned correlation.
	for i, n := range s.sizes1D {
		for j := 0; j < s.samplesPerPixel; j++ {
			slot := s.arrays1D[i][j*n : (j+1)*n]
			StratifiedSample1D(slot, n, &s.rng, s.jitter)
			Shuffle(slot, n, 1, &s.rng)
		}
	}
	for i, n := range s.sizes2D {
		for j := 0; j < s.samplesPerPixel; j++ {
			LatinHypercube(s.arrays2D[i][j*n:(j+1)*n], n, &s.rng)
		}
	}

	// Only the sample index and array cursors reset here; dimension
	// cursors are advanced and cleared by StartNextSample alone.
	s.pixel = p
	s.sampleIndex = 0
	s.offset1D = 0
	s.offset2D = 0
}

// Get1D returns the next precomputed value for the current pixel sample,
// falling back to a direct RNG draw once the registered dimensions are
// exhausted
func (s *StratifiedSampler) Get1D() float64 {
	s.checkSampleIndex()
	if s.dim1D < len(s.samples1D) {
		sample := s.samples1D[s.dim1D][s.sampleIndex]
		s.dim1D++
		return sample
	}
	return s.rng.UniformFloat()
}

// Get2D returns the next precomputed point for the current pixel sample.
// The fallback past the registered dimensions draws the Y component before
// the X component; the reference consumption order, preserved so that
// renders reproduce the reference numerical sequence.
func (s *StratifiedSampler) Get2D() Vec2 {
	s.checkSampleIndex()
	if s.dim2D < len(s.samples2D) {
		sample := s.samples2D[s.dim2D][s.sampleIndex]
		s.dim2D++
		return sample
	}
	y := s.rng.UniformFloat()
	x := s.rng.UniformFloat()
	return Vec2{X: x, Y: y}
}

// Request1DArray registers an array of n stratified scalars per pixel sample
func (s *StratifiedSampler) Request1DArray(n int) {
	s.checkNotStarted("Request1DArray")
	s.sizes1D = append(s.sizes1D, n)
	s.arrays1D = append(s.arrays1D, make([]float64, n*s.samplesPerPixel))
}

// Request2DArray registers an array of n Latin-hypercube points per pixel sample
func (s *StratifiedSampler) Request2DArray(n int) {
	s.checkNotStarted("Request2DArray")
	s.sizes2D = append(s.sizes2D, n)
	s.arrays2D = append(s.arrays2D, make([]Vec2, n*s.samplesPerPixel))
}

// RoundCount is the identity for the stratified variant
func (s *StratifiedSampler) RoundCount(n int) int {
	return n
}

// Get1DArray returns the n values of the next registered 1D array slot for
// the current pixel sample, or nil once all slots have been consumed
func (s *StratifiedSampler) Get1DArray(n int) []float64 {
	if s.offset1D == len(s.arrays1D) {
		return nil
	}
	s.checkArraySize(s.sizes1D[s.offset1D], n)
	s.checkSampleIndex()
	start := s.sampleIndex * n
	slot := s.arrays1D[s.offset1D][start : start+n]
	s.offset1D++
	return slot
}

// Get2DArray returns the n points of the next registered 2D array slot for
// the current pixel sample, or nil once all slots have been consumed
func (s *StratifiedSampler) Get2DArray(n int) []Vec2 {
	if s.offset2D == len(s.arrays2D) {
		return nil
	}
	s.checkArraySize(s.sizes2D[s.offset2D], n)
	s.checkSampleIndex()
	start := s.sampleIndex * n
	slot := s.arrays2D[s.offset2D][start : start+n]
	s.offset2D++
	return slot
}

// Get2DArrayPair consumes the next two registered 2D array slots in
// registration order. Callers must register array requests in the exact
// pairs they retrieve here. If only one slot remains the call returns
// nil, nil; the odd slot is still consumed, so a mis-paired registration
// surfaces immediately rather than shifting later accesses.
func (s *StratifiedSampler) Get2DArrayPair(n int) ([]Vec2, []Vec2) {
	first := s.Get2DArray(n)
	if first == nil {
		return nil, nil
	}
	second := s.Get2DArray(n)
	if second == nil {
		return nil, nil
	}
	return first, second
}

// StartNextSample resets the dimension and array cursors, advances the
// sample index, and reports whether further samples remain for the pixel
func (s *StratifiedSampler) StartNextSample() bool {
	s.dim1D = 0
	s.dim2D = 0
	s.offset1D = 0
	s.offset2D = 0
	s.sampleIndex++
	return s.sampleIndex < s.samplesPerPixel
}

// Reseed deterministically reinitializes the RNG onto the stream selected
// by seed
func (s *StratifiedSampler) Reseed(seed uint64) {
	s.rng.SetSequence(seed)
}

// Clone returns a fully independent sampler with the same table shapes and
// registered arrays, reseeded onto its own stream. Used to give every
// render worker an isolated instance; see DeriveSeed for mapping worker
// indices to seeds.
func (s *StratifiedSampler) Clone(seed uint64) PixelSampler {
	c := &StratifiedSampler{
		samplesPerPixel: s.samplesPerPixel,
		xSamples:        s.xSamples,
		ySamples:        s.ySamples,
		jitter:          s.jitter,
		dim1D:           s.dim1D,
		dim2D:           s.dim2D,
		offset1D:        s.offset1D,
		offset2D:        s.offset2D,
		pixel:           s.pixel,
		sampleIndex:     s.sampleIndex,
		started:         s.started,
		rng:             s.rng,
		sizes1D:         append([]int(nil), s.sizes1D...),
		sizes2D:         append([]int(nil), s.sizes2D...),
	}
	for _, t := range s.samples1D {
		c.samples1D = append(c.samples1D, append([]float64(nil), t...))
	}
	for _, t := range s.samples2D {
		c.samples2D = append(c.samples2D, append([]Vec2(nil), t...))
	}
	for _, a := range s.arrays1D {
		c.arrays1D = append(c.arrays1D, append([]float64(nil), a...))
	}
	for _, a := range s.arrays2D {
		c.arrays2D = append(c.arrays2D, append([]Vec2(nil), a...))
	}
	c.Reseed(seed)
	return c
}

// CurrentPixel returns the pixel passed to the last StartPixel call
func (s *StratifiedSampler) CurrentPixel() image.Point {
	return s.pixel
}

// CurrentSampleIndex returns the index of the sample being dispensed
func (s *StratifiedSampler) CurrentSampleIndex() int {
	return s.sampleIndex
}

// SamplesPerPixel returns the fixed number of samples per pixel
func (s *StratifiedSampler) SamplesPerPixel() int {
	return s.samplesPerPixel
}

// Dispensing with the sample index at or past samplesPerPixel is a
// programming error in the calling integrator, never a recoverable
// condition
func (s *StratifiedSampler) checkSampleIndex() {
	if s.sampleIndex >= s.samplesPerPixel {
		panic(fmt.Sprintf("sampler: sample index %d out of range, samples per pixel %d",
			s.sampleIndex, s.samplesPerPixel))
	}
}

func (s *StratifiedSampler) checkNotStarted(op string) {
	if s.started {
		panic(fmt.Sprintf("sampler: %s after rendering has started", op))
	}
}

func (s *StratifiedSampler) checkArraySize(registered, requested int) {
	if registered != requested {
		panic(fmt.Sprintf("sampler: array size %d does not match registered size %d",
			requested, registered))
	}
}
