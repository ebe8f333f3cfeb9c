package sessioncode

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Alphabet holds the characters session codes are drawn from. Visually
// ambiguous characters (0, I, L, O) are excluded so codes survive being read
// aloud or copied by hand.
const Alphabet = "123456789ABCDEFGHJKMNPQRSTUVWXYZ"

// Length is the fixed size of a session code.
const Length = 6

// maxAttempts bounds collision retries. The code space is above 10^9
// combinations, so hitting this ceiling means the store lookup is broken,
// not that the space is exhausted.
const maxAttempts = 50

// Checker reports whether a session record already exists under a code.
type Checker interface {
	Exists(ctx context.Context, code string) (bool, error)
}

// Generate draws random codes until one is free in the store. Codes need
// uniqueness, not unpredictability, so math/rand is sufficient.
func Generate(ctx context.Context, store Checker) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := random()
		taken, err := store.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("sessioncode: check %q: %w", code, err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("sessioncode: no free code after %d attempts", maxAttempts)
}

func random() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[rand.IntN(len(Alphabet))])
	}
	return b.String()
}
