package ganrobot

import (
	"errors"
	"testing"
)

func TestParseMoveRoundTrip(t *testing.T) {
	// Every canonical move must survive notation -> parse unchanged.
	all := []Move{
		R, RPrime, R2,
		L, LPrime, L2,
		U, UPrime, U2,
		D, DPrime, D2,
		F, FPrime, F2,
		B, BPrime, B2,
	}
	for _, want := range all {
		got, err := ParseMove(want.Notation())
		if err != nil {
			t.Errorf("ParseMove(%q): %v", want.Notation(), err)
			continue
		}
		if got != want {
			t.Errorf("ParseMove(%q) = %v, want %v", want.Notation(), got, want)
		}
	}
}

func TestParseMoveSuffixes(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", R},
		{"R'", RPrime},
		{"R2", R2},
		{"R2'", R2}, // half turn alias, direction-agnostic
		{"r", R},
		{"b2'", B2},
		{"u'", UPrime},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoveRejectsBadTokens(t *testing.T) {
	bad := []string{"", "X", "R''", "R22", "R'2", "R2''", "2", "'", "RB", "R 2"}
	for _, in := range bad {
		if _, err := ParseMove(in); err == nil {
			t.Errorf("ParseMove(%q) should fail", in)
		} else if !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestParseMovesEmptyInput(t *testing.T) {
	moves, err := ParseMoves("")
	if err != nil {
		t.Fatalf("ParseMoves(\"\"): %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("ParseMoves(\"\") = %v, want empty", moves)
	}

	moves, err = ParseMoves("   \t\n  ")
	if err != nil {
		t.Fatalf("ParseMoves(whitespace): %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("ParseMoves(whitespace) = %v, want empty", moves)
	}
}

func TestParseMovesSequence(t *testing.T) {
	moves, err := ParseMoves("R D2")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	want := []Move{R, D2}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %v, want %v", i, moves[i], want[i])
		}
	}
}

func TestParseMovesPreservesOrder(t *testing.T) {
	in := "R U R' U' F2 B D' L2"
	moves, err := ParseMoves(in)
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	if got := FormatMoves(moves); got != in {
		t.Errorf("FormatMoves(ParseMoves(%q)) = %q", in, got)
	}
}

func TestParseMovesReportsTokenAndPosition(t *testing.T) {
	_, err := ParseMoves("R U R'2 D")
	if err == nil {
		t.Fatal("expected error for R'2")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if perr.Token != "R'2" {
		t.Errorf("Token = %q, want %q", perr.Token, "R'2")
	}
	if perr.Pos != 3 {
		t.Errorf("Pos = %d, want 3", perr.Pos)
	}
	if !errors.Is(err, ErrInvalidNotation) {
		t.Error("ParseError should wrap ErrInvalidNotation")
	}
}

func TestMoveInverse(t *testing.T) {
	tests := []struct {
		in, want Move
	}{
		{R, RPrime},
		{RPrime, R},
		{R2, R2},
		{UPrime, U},
		{D2, D2},
	}
	for _, tt := range tests {
		if got := tt.in.Inverse(); got != tt.want {
			t.Errorf("%v.Inverse() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoves(t *testing.T) {
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q, want empty", got)
	}
	if got := FormatMoves([]Move{B2, FPrime, L}); got != "B2 F' L" {
		t.Errorf("FormatMoves = %q", got)
	}
}
