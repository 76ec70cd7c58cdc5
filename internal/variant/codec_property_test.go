package variant

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: Canonicalize(join(flags)) == Canonicalize(join(shuffle(flags)))
func TestCanonicalOrderProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical code ignores flag order", prop.ForAll(
		func(gray bool, start, end uint32, gradient bool, width int, seed int64) bool {
			flags := []string{fmt.Sprintf("bw_%d", width)}
			if gray {
				flags = append(flags, "gs")
			}
			if gradient {
				flags = append(flags, fmt.Sprintf("cg_%06x_%06X", start&0xffffff, end&0xffffff))
			} else {
				flags = append(flags, fmt.Sprintf("c_%06X", start&0xffffff))
			}

			shuffled := append([]string(nil), flags...)
			rng := rand.New(rand.NewSource(seed))
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			return Canonicalize(strings.Join(flags, "_")) == Canonicalize(strings.Join(shuffled, "_"))
		},
		gen.Bool(),
		gen.UInt32(),
		gen.UInt32(),
		gen.Bool(),
		gen.IntRange(0, 12),
		gen.Int64(),
	))

	properties.Property("canonical code is a fixed point", prop.ForAll(
		func(raw string) bool {
			code := Canonicalize(raw)
			if code == Base {
				return Canonicalize(Format(Parse(raw))) == Base
			}
			return Canonicalize(code) == code
		},
		gen.AnyString(),
	))

	properties.Property("cache keys are deterministic", prop.ForAll(
		func(sheet string, icon int, raw string) bool {
			return CacheKey(sheet, icon, Parse(raw)) == CacheKey(sheet, icon, Parse(raw))
		},
		gen.Identifier(),
		gen.IntRange(1, 1024),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
