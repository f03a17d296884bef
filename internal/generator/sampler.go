package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	mrand "math/rand/v2"
)

// BalanceSampler draws uniformly distributed 32-bit values.
// *math/rand/v2.Rand satisfies it.
type BalanceSampler interface {
	Uint32() uint32
}

// IDSampler fills p with random bytes. It must be backed by a
// cryptographically strong source outside of tests.
type IDSampler interface {
	io.Reader
}

// runtimeSampler draws from the runtime-seeded math/rand/v2 source.
type runtimeSampler struct{}

func (runtimeSampler) Uint32() uint32 { return mrand.Uint32() }

// DefaultBalanceSampler returns a sampler backed by the runtime-seeded
// math/rand/v2 source. It is safe for concurrent use.
func DefaultBalanceSampler() BalanceSampler {
	return runtimeSampler{}
}

// NewSeededBalanceSampler returns a reproducible sampler. Two samplers built
// from the same seed produce the same sequence. Not safe for concurrent use.
func NewSeededBalanceSampler(seed uint64) BalanceSampler {
	return mrand.New(mrand.NewPCG(seed, seed^pcgStream))
}

// pcgStream decorrelates the two PCG words derived from a single seed.
const pcgStream = 0x9e3779b97f4a7c15

// DefaultIDSampler returns crypto/rand.Reader.
func DefaultIDSampler() IDSampler {
	return rand.Reader
}

// RandomHex reads ceil(length/2) bytes from r, hex-encodes them and truncates
// the result to exactly length lowercase hex characters. For odd lengths the
// low nibble of the last byte is discarded.
func RandomHex(r io.Reader, length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: id length %d", ErrInvalidArgument, length)
	}

	buf := make([]byte, (length+1)/2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf)[:length], nil
}

// Balance maps a raw 32-bit sample onto the balance range for a list of
// numCoins symbols: sample / numCoins, integer division.
func Balance(sample uint32, numCoins int) uint64 {
	return uint64(sample) / uint64(numCoins)
}
