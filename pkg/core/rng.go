package core

// This file centralizes deterministic random generation for the sampler.
// The generator is the PCG32 algorithm rather than math/rand: sample
// reproducibility requires that the same seed produce the identical draw
// sequence on every platform, and that each logical sequence id select an
// independent stream. math/rand guarantees neither across Go versions.
//
// RNG is not safe for concurrent use; every sampler owns its own instance
// and worker samplers are produced by Clone with a derived seed.

const (
	pcg32DefaultState  = 0x853c49e6748fea9b
	pcg32DefaultStream = 0xda3e39cb94b95bdb
	pcg32Mult          = 0x5851f42d4c957f2d
)

// RNG is a seedable PCG32 pseudo-random generator with independent streams.
// The zero value is not ready for use; call NewRNG or SetSequence.
type RNG struct {
	state uint64
	inc   uint64
}

// NewRNG creates a generator on the default stream
func NewRNG() RNG {
	return RNG{state: pcg32DefaultState, inc: pcg32DefaultStream}
}

// NewRNGWithSequence creates a generator on the stream selected by seq
func NewRNGWithSequence(seq uint64) RNG {
	var rng RNG
	rng.SetSequence(seq)
	return rng
}

// SetSequence deterministically reinitializes the generator onto the stream
// selected by seq. Distinct sequence ids yield uncorrelated draw sequences.
func (r *RNG) SetSequence(seq uint64) {
	r.state = 0
	r.inc = (seq << 1) | 1
	r.Uint32()
	r.state += pcg32DefaultState
	r.Uint32()
}

// Uint32 returns the next 32 uniformly distributed bits
func (r *RNG) Uint32() uint32 {
	oldState := r.state
	r.state = oldState*pcg32Mult + r.inc
	xorShifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorShifted >> rot) | (xorShifted << ((-rot) & 31))
}

// Uint32n returns a uniformly distributed value in [0, bound) without
// modulo bias, consuming draws until one falls inside the fair region
func (r *RNG) Uint32n(bound uint32) uint32 {
	threshold := (-bound) % bound
	for {
		v := r.Uint32()
		if v >= threshold {
			return v % bound
		}
	}
}

// UniformFloat returns a uniformly distributed float64 in [0, 1)
func (r *RNG) UniformFloat() float64 {
	return float64(r.Uint32()) * (1.0 / (1 << 32))
}

// DeriveSeed mixes a base render seed and a worker/tile stream index into a
// distinct deterministic sequence id, so parallel workers never share a
// random stream. Constants are the canonical SplitMix64 finalizer.
func DeriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
