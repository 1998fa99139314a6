package core

import (
	"image"
	"math"
)

// oneMinusEpsilon is the largest float64 strictly below 1, used to keep
// stratified samples inside the half-open unit interval
var oneMinusEpsilon = math.Nextafter(1, 0)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// PixelSampler extends Sampler with the per-pixel sample table contract
// driven by integrators. Implementations precompute well-distributed sample
// patterns per pixel and dispense them one dimension at a time.
//
// The per-pixel protocol:
//
//	sampler.StartPixel(p)
//	for {
//		// Get1D/Get2D/array accessors for one pixel sample
//		if !sampler.StartNextSample() {
//			break
//		}
//	}
//
// Array requests must all be registered before the first StartPixel call.
// A PixelSampler is not safe for concurrent use; each worker clones its own
// instance with a distinct seed.
type PixelSampler interface {
	Sampler

	// StartPixel regenerates all sample tables and array slots for pixel p
	// and resets the sample index and cursors
	StartPixel(p image.Point)

	// Request1DArray registers an array of n stratified scalars per pixel
	// sample. Only valid before the first StartPixel call.
	Request1DArray(n int)

	// Request2DArray registers an array of n well-distributed 2D points per
	// pixel sample. Only valid before the first StartPixel call.
	Request2DArray(n int)

	// RoundCount lets a sampler variant pad a requested array size to a
	// value its pattern generator prefers
	RoundCount(n int) int

	// Get1DArray returns the next registered 1D array slot for the current
	// pixel sample, or nil once all slots have been consumed
	Get1DArray(n int) []float64

	// Get2DArray returns the next registered 2D array slot for the current
	// pixel sample, or nil once all slots have been consumed
	Get2DArray(n int) []Vec2

	// Get2DArrayPair consumes the next two registered 2D array slots in
	// registration order. Returns nil, nil if fewer than two slots remain.
	Get2DArrayPair(n int) ([]Vec2, []Vec2)

	// StartNextSample advances to the next sample within the current pixel,
	// resetting dimension and array cursors. Reports whether further
	// samples remain.
	StartNextSample() bool

	// Reseed deterministically reinitializes the sampler's random stream
	Reseed(seed uint64)

	// Clone produces a fully independent copy with the same table shapes
	// and registered arrays, reseeded onto its own stream. The per-worker
	// isolation factory.
	Clone(seed uint64) PixelSampler

	CurrentPixel() image.Point
	CurrentSampleIndex() int
	SamplesPerPixel() int
}

// RandomSampler dispenses plain uncorrelated RNG draws
type RandomSampler struct {
	rng *RNG
}

// NewRandomSampler creates a sampler drawing from the given generator
func NewRandomSampler(rng *RNG) *RandomSampler {
	return &RandomSampler{rng: rng}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.rng.UniformFloat()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.rng.UniformFloat(), r.rng.UniformFloat())
}

// StratifiedSample1D fills samples with one value per stratum of [0, 1):
// exact stratum centers when jitter is disabled, a uniform offset within
// each stratum when enabled
func StratifiedSample1D(samples []float64, n int, rng *RNG, jitter bool) {
	invN := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		delta := 0.5
		if jitter {
			delta = rng.UniformFloat()
		}
		samples[i] = math.Min((float64(i)+delta)*invN, oneMinusEpsilon)
	}
}

// StratifiedSample2D fills samples with an nx×ny stratified grid of 2D
// points over the unit square
func StratifiedSample2D(samples []Vec2, nx, ny int, rng *RNG, jitter bool) {
	invNx := 1.0 / float64(nx)
	invNy := 1.0 / float64(ny)
	i := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			dx, dy := 0.5, 0.5
			if jitter {
				dx = rng.UniformFloat()
				dy = rng.UniformFloat()
			}
			samples[i].X = math.Min((float64(x)+dx)*invNx, oneMinusEpsilon)
			samples[i].Y = math.Min((float64(y)+dy)*invNy, oneMinusEpsilon)
			i++
		}
	}
}

// LatinHypercube fills samples with an n-point Latin hypercube pattern:
// jittered points along the diagonal, then each axis permuted independently.
// Guarantees uniform marginal coverage per axis without the grid alignment
// of plain stratified sampling.
func LatinHypercube(samples []Vec2, n int, rng *RNG) {
	invN := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		samples[i].X = math.Min((float64(i)+rng.UniformFloat())*invN, oneMinusEpsilon)
		samples[i].Y = math.Min((float64(i)+rng.UniformFloat())*invN, oneMinusEpsilon)
	}
	for i := 0; i < n; i++ {
		other := i + int(rng.Uint32n(uint32(n-i)))
		samples[i].X, samples[other].X = samples[other].X, samples[i].X
	}
	for i := 0; i < n; i++ {
		other := i + int(rng.Uint32n(uint32(n-i)))
		samples[i].Y, samples[other].Y = samples[other].Y, samples[i].Y
	}
}

// Shuffle performs an in-place Fisher–Yates shuffle of count blocks of
// nDims consecutive elements, decorrelating sample ordering across
// dimensions. nDims is the stride; 1 shuffles individual elements.
func Shuffle[T any](samp []T, count, nDims int, rng *RNG) {
	for i := 0; i < count; i++ {
		other := i + int(rng.Uint32n(uint32(count-i)))
		for j := 0; j < nDims; j++ {
			samp[nDims*i+j], samp[nDims*other+j] = samp[nDims*other+j], samp[nDims*i+j]
		}
	}
}

// PowerHeuristic calculates the power heuristic (β=2) MIS weight for a
// sample drawn from strategy f competing with strategy g. Delta lights
// report a zero density through Light.PDF, which drives the competing
// strategy's weight to zero here.
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f == 0 && g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}

// BalanceHeuristic calculates the balance heuristic MIS weight for a sample
// drawn from strategy f competing with strategy g
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f == 0 && g == 0 {
		return 0
	}
	return f / (f + g)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// UniformSpherePDF returns the density of uniform sphere sampling
func UniformSpherePDF() float64 {
	return 1.0 / (4.0 * math.Pi)
}
