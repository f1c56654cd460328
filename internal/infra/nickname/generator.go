// Package nickname proposes human-readable nicknames for users who register without one.
package nickname

import (
	"fmt"
	"math/rand/v2"

	"github.com/gvr1220/user-management/internal/domain/service"
)

const maxSuffix = 10000

//nolint:gochecknoglobals
var (
	adjectives = []string{
		"amber", "brave", "calm", "clever", "crisp", "eager", "fancy", "gentle", "happy", "jolly",
		"keen", "lively", "lucky", "merry", "nimble", "proud", "quick", "quiet", "rapid", "silent",
		"sunny", "swift", "tidy", "vivid", "witty",
	}
	nouns = []string{
		"badger", "falcon", "fox", "heron", "koala", "lynx", "marten", "otter", "owl", "panda",
		"pebble", "pine", "raven", "river", "robin", "sparrow", "tiger", "walrus", "willow", "wolf",
	}
)

type randomGenerator struct {
	intN func(n int) int
}

// NewGenerator creates a generator producing candidates like "swift_otter_4821".
func NewGenerator() service.NicknameGenerator {
	return &randomGenerator{intN: rand.IntN}
}

// Generate returns a candidate; uniqueness is checked by the caller.
func (g *randomGenerator) Generate() string {
	return fmt.Sprintf("%s_%s_%d",
		adjectives[g.intN(len(adjectives))],
		nouns[g.intN(len(nouns))],
		g.intN(maxSuffix),
	)
}
