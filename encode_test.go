package ganrobot

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestMoveCodeTable(t *testing.T) {
	// The documented wire codes, one block of three per face.
	tests := []struct {
		move Move
		code byte
	}{
		{R, 0}, {R2, 1}, {RPrime, 2},
		{F, 3}, {F2, 4}, {FPrime, 5},
		{D, 6}, {D2, 7}, {DPrime, 8},
		{L, 9}, {L2, 10}, {LPrime, 11},
		{B, 12}, {B2, 13}, {BPrime, 14},
	}
	for _, tt := range tests {
		code, err := MoveCode(tt.move)
		if err != nil {
			t.Errorf("MoveCode(%v): %v", tt.move, err)
			continue
		}
		if code != tt.code {
			t.Errorf("MoveCode(%v) = %d, want %d", tt.move, code, tt.code)
		}
	}
}

func TestMoveCodeBidirectional(t *testing.T) {
	for code := byte(0); code < 15; code++ {
		move, err := MoveFromCode(code)
		if err != nil {
			t.Fatalf("MoveFromCode(%d): %v", code, err)
		}
		back, err := MoveCode(move)
		if err != nil {
			t.Fatalf("MoveCode(%v): %v", move, err)
		}
		if back != code {
			t.Errorf("code %d -> %v -> %d", code, move, back)
		}
	}
}

func TestMoveFromCodeUnknown(t *testing.T) {
	for _, code := range []byte{15, 16, 0x7F, 0xFF} {
		if _, err := MoveFromCode(code); !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("MoveFromCode(%d) error = %v, want ErrMalformedFrame", code, err)
		}
	}
}

func TestMoveCodeRejectsUpFace(t *testing.T) {
	for _, m := range []Move{U, UPrime, U2} {
		if _, err := MoveCode(m); !errors.Is(err, ErrUnsupportedMove) {
			t.Errorf("MoveCode(%v) error = %v, want ErrUnsupportedMove", m, err)
		}
	}
}

func TestEncodeSingleMove(t *testing.T) {
	frames, seq, err := EncodeMoves([]Move{R}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if seq != 1 {
		t.Errorf("seq = %d, want 1", seq)
	}

	// R is code 0 in the high nibble, terminated with 0x0F.
	if frames[0][0] != 0x0F {
		t.Errorf("byte 0 = 0x%02X, want 0x0F", frames[0][0])
	}
	for i := 1; i < FrameSize; i++ {
		if frames[0][i] != 0xFF {
			t.Errorf("byte %d = 0x%02X, want 0xFF fill", i, frames[0][i])
		}
	}
}

func TestEncodeNibblePacking(t *testing.T) {
	// R F' D2 L' B -> codes 0, 5, 7, 11, 12.
	moves, err := ParseMoves("R F' D2 L' B")
	if err != nil {
		t.Fatal(err)
	}
	frames, seq, err := EncodeMoves(moves, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if seq != 5 {
		t.Errorf("seq = %d, want 5", seq)
	}

	want := []byte{0x05, 0x7B, 0xCF}
	if !bytes.Equal(frames[0][:3], want) {
		t.Errorf("packed bytes = % X, want % X", frames[0][:3], want)
	}
	for i := 3; i < FrameSize; i++ {
		if frames[0][i] != 0xFF {
			t.Errorf("byte %d = 0x%02X, want 0xFF fill", i, frames[0][i])
		}
	}
}

func TestEncodeEvenCountHasNoTerminator(t *testing.T) {
	frames, _, err := EncodeMoves([]Move{R, F}, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Codes 0 and 3 share byte 0: 0x03. No 0x0F terminator for even counts.
	if frames[0][0] != 0x03 {
		t.Errorf("byte 0 = 0x%02X, want 0x03", frames[0][0])
	}
	if frames[0][1] != 0xFF {
		t.Errorf("byte 1 = 0x%02X, want 0xFF fill", frames[0][1])
	}
}

func TestEncodeFullFrame(t *testing.T) {
	moves, err := ScrambleRand(testRand(11), MaxMovesPerFrame, WithFaces(DrivableFaces...))
	if err != nil {
		t.Fatal(err)
	}
	frames, seq, err := EncodeMoves(moves, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("36 moves should fill exactly one frame, got %d", len(frames))
	}
	if seq != 36 {
		t.Errorf("seq = %d, want 36", seq)
	}
	// A full frame has no fill bytes; every nibble is a move code < 0x0F.
	for i, b := range frames[0] {
		if b>>4 == 0x0F || b&0x0F == 0x0F {
			t.Errorf("byte %d = 0x%02X contains a terminator nibble in a full frame", i, b)
		}
	}
}

func TestEncodeChunksAcrossFrames(t *testing.T) {
	moves, err := ScrambleRand(testRand(13), MaxMovesPerFrame+1, WithFaces(DrivableFaces...))
	if err != nil {
		t.Fatal(err)
	}
	frames, seq, err := EncodeMoves(moves, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("37 moves should need two frames, got %d", len(frames))
	}
	if seq != 37 {
		t.Errorf("seq = %d, want 37", seq)
	}

	// Second frame carries the single overflow move.
	code, err := MoveCode(moves[MaxMovesPerFrame])
	if err != nil {
		t.Fatal(err)
	}
	if want := code<<4 | 0x0F; frames[1][0] != want {
		t.Errorf("overflow frame byte 0 = 0x%02X, want 0x%02X", frames[1][0], want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	moves, err := ParseMoves("R F' D2 L B2 D R' F")
	if err != nil {
		t.Fatal(err)
	}
	a, seqA, err := EncodeMoves(moves, 100)
	if err != nil {
		t.Fatal(err)
	}
	b, seqB, err := EncodeMoves(moves, 100)
	if err != nil {
		t.Fatal(err)
	}
	if seqA != seqB {
		t.Errorf("counters differ: %d vs %d", seqA, seqB)
	}
	if len(a) != len(b) {
		t.Fatalf("frame counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("frame %d differs:\n% X\n% X", i, a[i], b[i])
		}
	}
}

func TestEncodeCounterWraps(t *testing.T) {
	moves, err := ScrambleRand(testRand(17), 10, WithFaces(DrivableFaces...))
	if err != nil {
		t.Fatal(err)
	}
	_, seq, err := EncodeMoves(moves, 250)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 4 { // 250 + 10 mod 256
		t.Errorf("seq = %d, want 4", seq)
	}
}

func TestEncodeEmptySequence(t *testing.T) {
	frames, seq, err := EncodeMoves(nil, 9)
	if err != nil {
		t.Fatal(err)
	}
	if frames != nil {
		t.Errorf("frames = %v, want nil", frames)
	}
	if seq != 9 {
		t.Errorf("seq = %d, want unchanged 9", seq)
	}
}

func TestEncodeRejectsUpFaceMoves(t *testing.T) {
	_, seq, err := EncodeMoves([]Move{R, U, L}, 5)
	if err == nil {
		t.Fatal("expected error for U move")
	}
	if !errors.Is(err, ErrUnsupportedMove) {
		t.Errorf("error = %v, want ErrUnsupportedMove", err)
	}
	if seq != 5 {
		t.Errorf("seq = %d, want unchanged 5 on error", seq)
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		notation string
		want     time.Duration
	}{
		{"", 0},
		{"R", 150 * time.Millisecond},
		{"R2", 250 * time.Millisecond},
		{"R D2", 400 * time.Millisecond},
		{"R F' D2 B2", 800 * time.Millisecond},
	}
	for _, tt := range tests {
		moves, err := ParseMoves(tt.notation)
		if err != nil {
			t.Fatal(err)
		}
		if got := EstimateDuration(moves); got != tt.want {
			t.Errorf("EstimateDuration(%q) = %v, want %v", tt.notation, got, tt.want)
		}
	}
}
