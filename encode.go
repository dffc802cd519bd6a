package ganrobot

import (
	"fmt"
	"time"
)

// Frame geometry of the robot's move characteristic.
const (
	// FrameSize is the fixed length in bytes of one move command frame.
	FrameSize = 18

	// MaxMovesPerFrame is the number of move codes one frame carries:
	// two codes per byte, one per nibble.
	MaxMovesPerFrame = 2 * FrameSize

	// padNibble terminates the packed region of a frame holding an odd
	// number of moves. It doubles as the reason U has no wire code: all
	// nibble values from 0x0 to 0xE are taken by the five drivable faces
	// and 0xF is this terminator.
	padNibble = 0x0F

	// fillByte marks frame bytes past the packed region.
	fillByte = 0xFF
)

// Observed turn durations of the robot, used to pace status polling.
const (
	// QuantumTurnDuration is how long the robot takes for a 90-degree turn.
	QuantumTurnDuration = 150 * time.Millisecond

	// DoubleTurnDuration is how long the robot takes for a 180-degree turn.
	DoubleTurnDuration = 250 * time.Millisecond
)

// Frame is one fixed-length binary unit written to the move characteristic.
type Frame [FrameSize]byte

// Wire code table for the robot's move characteristic, kept as an explicit
// bidirectional pair (moveCode / codeToMove) so it can be audited against
// the device protocol in one place.
//
// code = face block + turn offset. R2' shares the R2 code: the device only
// distinguishes the three magnitudes per face.
var (
	faceBlock = map[Face]byte{
		FaceR: 0,
		FaceF: 3,
		FaceD: 6,
		FaceL: 9,
		FaceB: 12,
	}

	turnOffset = map[Turn]byte{
		CW:     0,
		Double: 1,
		CCW:    2,
	}

	codeToMove = [15]Move{
		R, R2, RPrime,
		F, F2, FPrime,
		D, D2, DPrime,
		L, L2, LPrime,
		B, B2, BPrime,
	}
)

// MoveCode returns the wire code (0x00-0x0E) for a move.
// Fails with ErrUnsupportedMove for up-face moves, which the robot cannot
// drive, and for Move values with an out-of-range Turn.
func MoveCode(m Move) (byte, error) {
	block, ok := faceBlock[m.Face]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMove, m)
	}
	offset, ok := turnOffset[m.Turn]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMove, m)
	}
	return block + offset, nil
}

// MoveFromCode is the inverse of MoveCode.
func MoveFromCode(code byte) (Move, error) {
	if int(code) >= len(codeToMove) {
		return Move{}, fmt.Errorf("%w: unknown move code 0x%02X", ErrMalformedFrame, code)
	}
	return codeToMove[code], nil
}

// EncodeMoves converts a move sequence into frames ready for transmission,
// in execution order, chunking into as many frames as the sequence needs.
//
// seq is the session's outbound sequence counter. It advances by one per
// encoded move, wrapping at 8 bits, and the post-increment value is
// returned; the caller owns the counter across encode calls and can
// reconcile it against the robot's remaining-move reports. The frames
// themselves carry no counter field.
//
// Encoding is deterministic and performs no I/O. On error no frames are
// returned and seq is returned unchanged.
func EncodeMoves(moves []Move, seq uint8) ([]Frame, uint8, error) {
	if len(moves) == 0 {
		return nil, seq, nil
	}

	frames := make([]Frame, 0, (len(moves)+MaxMovesPerFrame-1)/MaxMovesPerFrame)
	for start := 0; start < len(moves); start += MaxMovesPerFrame {
		end := start + MaxMovesPerFrame
		if end > len(moves) {
			end = len(moves)
		}
		frame, err := encodeFrame(moves[start:end])
		if err != nil {
			return nil, seq, err
		}
		frames = append(frames, frame)
	}

	return frames, seq + uint8(len(moves)), nil
}

// encodeFrame packs up to MaxMovesPerFrame moves into one frame.
// The first move of each pair goes in the high nibble. An odd count is
// terminated with padNibble; bytes past the packed region hold fillByte.
func encodeFrame(moves []Move) (Frame, error) {
	var frame Frame
	for i, m := range moves {
		code, err := MoveCode(m)
		if err != nil {
			return Frame{}, err
		}
		if i%2 == 0 {
			frame[i/2] = code << 4
		} else {
			frame[i/2] |= code
		}
	}

	if len(moves)%2 == 1 {
		frame[len(moves)/2] |= padNibble
	}
	for i := (len(moves) + 1) / 2; i < FrameSize; i++ {
		frame[i] = fillByte
	}

	return frame, nil
}

// EstimateDuration returns how long the robot should take to execute the
// moves, summing the per-turn durations. Callers use this to decide when to
// start polling the status characteristic.
func EstimateDuration(moves []Move) time.Duration {
	var total time.Duration
	for _, m := range moves {
		if m.Turn == Double {
			total += DoubleTurnDuration
		} else {
			total += QuantumTurnDuration
		}
	}
	return total
}
