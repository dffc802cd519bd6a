package ganrobot

// StatusKind classifies a decoded status frame.
type StatusKind int

const (
	StatusIdle StatusKind = iota // move queue drained, all moves executed
	StatusBusy                   // robot still executing queued moves
)

// String returns a human-readable name for the status kind.
func (k StatusKind) String() string {
	switch k {
	case StatusIdle:
		return "idle"
	case StatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// StatusEvent is a decoded notification from the robot's status
// characteristic. Events are created only by DecodeStatus and are meant to
// be consumed immediately; they are never persisted.
type StatusEvent struct {
	Kind      StatusKind
	Remaining uint8  // moves the robot has accepted but not yet executed
	Raw       []byte // full frame as received, for fields this layer does not model
}

// DecodeStatus decodes a raw status frame.
//
// Layout: byte 0 holds the remaining move count. Trailing bytes are not
// understood by this layer; they are preserved in Raw (together with byte 0)
// rather than dropped, so callers can log or ignore them without data loss.
// An empty frame fails with a *DecodeError.
func DecodeStatus(data []byte) (StatusEvent, error) {
	if len(data) == 0 {
		return StatusEvent{}, &DecodeError{Len: 0, Reason: "empty frame"}
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	event := StatusEvent{Remaining: data[0], Raw: raw}
	if event.Remaining > 0 {
		event.Kind = StatusBusy
	}
	return event, nil
}

// EncodeStatus builds a status frame from its fields, the inverse of
// DecodeStatus for the fields this layer understands. Used by tests and
// offline tooling; the robot itself is the usual producer of status frames.
func EncodeStatus(remaining uint8) []byte {
	return []byte{remaining}
}
