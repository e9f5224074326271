package runtime

import (
	"chat-sim/contract"
	"crypto/sha256"

	"lukechampine.com/frand"
)

type frandSource struct{}

func (frandSource) Intn(n int) int { return frand.Intn(n) }

// NewRandomSource returns the process-wide frand generator, or a
// deterministic one derived from seed when seed is not empty.
// The seeded generator is not safe for concurrent use; simulators only draw
// from scheduled tasks, which never run concurrently.
func NewRandomSource(seed string) contract.RandomSource {
	if seed == "" {
		return frandSource{}
	}
	sum := sha256.Sum256([]byte(seed))
	return frand.NewCustom(sum[:], 32, 12)
}
