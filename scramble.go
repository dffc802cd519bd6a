package ganrobot

import (
	"fmt"
	"math/rand/v2"
)

var scrambleTurns = []Turn{CW, CCW, Double}

// ScrambleOption configures scramble generation.
type ScrambleOption func(*scrambleConfig)

type scrambleConfig struct {
	faces []Face
}

// WithFaces restricts the scramble to the given face pool. The pool must
// contain at least two faces so the no-repeated-face rule can be satisfied.
// Pass DrivableFaces to generate scrambles the robot can execute.
func WithFaces(faces ...Face) ScrambleOption {
	return func(c *scrambleConfig) {
		c.faces = faces
	}
}

// Scramble generates n random moves suitable as a scramble, drawing from
// the package-level randomness source.
//
// No two consecutive moves act on the same face. The first face is uniform
// over the pool; each later face is uniform over the pool minus the previous
// face. The turn of every move is uniform over the three magnitudes.
//
// n == 0 yields an empty sequence without consuming randomness. n < 0 fails
// with ErrInvalidCount.
func Scramble(n int, opts ...ScrambleOption) ([]Move, error) {
	return scramble(rand.IntN, n, opts)
}

// ScrambleRand is Scramble with a caller-supplied randomness source, for
// deterministic output under a seeded source.
func ScrambleRand(rng *rand.Rand, n int, opts ...ScrambleOption) ([]Move, error) {
	return scramble(rng.IntN, n, opts)
}

func scramble(intn func(int) int, n int, opts []ScrambleOption) ([]Move, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	cfg := scrambleConfig{faces: Faces}
	for _, opt := range opts {
		opt(&cfg)
	}
	if n > 0 && len(cfg.faces) < 2 {
		return nil, ErrFacePool
	}

	moves := make([]Move, 0, n)
	if n == 0 {
		return moves, nil
	}

	prev := -1
	for i := 0; i < n; i++ {
		var fi int
		if prev < 0 {
			fi = intn(len(cfg.faces))
		} else {
			// Draw from the pool minus the previous face without
			// rejection: shift indexes at or above it up by one.
			fi = intn(len(cfg.faces) - 1)
			if fi >= prev {
				fi++
			}
		}
		moves = append(moves, Move{
			Face: cfg.faces[fi],
			Turn: scrambleTurns[intn(len(scrambleTurns))],
		})
		prev = fi
	}

	return moves, nil
}
