// Package ganrobot implements the move protocol of the GAN cube-solving
// robot: translating standard cube notation into the binary frames the
// robot's move characteristic expects, and decoding the status frames it
// reports back.
//
// # Features
//
//   - Strict move notation parsing (R, R', R2, R2')
//   - Scramble generation with a no-repeated-face rule
//   - Frame encoding for the robot's move characteristic
//   - Status frame decoding (remaining move count)
//
// The package is pure: it performs no I/O and holds no hidden state. The
// outbound sequence counter is threaded through EncodeMoves so the calling
// session owns it.
//
// # Quick Start
//
// Encode a move sequence for transmission:
//
//	moves, err := ganrobot.ParseMoves("R U R' U'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	frames, seq, err := ganrobot.EncodeMoves(moves, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// write frames, in order, to the move characteristic
//
// Generate a scramble the robot can execute:
//
//	scramble, err := ganrobot.Scramble(8, ganrobot.WithFaces(ganrobot.DrivableFaces...))
//
// Note that the robot's cradle grips the cube by the up face, so while the
// notation and scramble layers cover all six faces, only the five faces in
// DrivableFaces have wire codes. EncodeMoves fails with ErrUnsupportedMove
// for up-face moves.
//
// BLE connectivity lives in internal packages behind the ganrobot CLI; this
// package never touches the radio.
package ganrobot
