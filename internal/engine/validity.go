package engine

import "strconv"

// Validity classifies a candidate move.
// Only ValidityOK is a legal move; ValidityCleared is set afterwards on a
// legal move whose ball completed a line.
type Validity int8

const (
	ValidityCleared      Validity = -1 // Legal move that cleared a line
	ValidityOK           Validity = 0  // Legal move
	ValidityBothOccupied Validity = 1  // Start and end both hold balls
	ValidityBothEmpty    Validity = 2  // Start and end both empty
	ValidityStartEmpty   Validity = 3  // Start empty, end occupied
	ValidityNoPath       Validity = 4  // Start occupied, end empty, but walled off
)

// Code returns the numeric validity code: -1, 0, 0.5, 1, 2 or 3.
func (v Validity) Code() float64 {
	if v == ValidityNoPath {
		return 0.5
	}
	return float64(v)
}

// Legal reports whether the move was accepted (with or without a clear).
func (v Validity) Legal() bool {
	return v == ValidityOK || v == ValidityCleared
}

// String returns a human-readable name for the validity.
func (v Validity) String() string {
	switch v {
	case ValidityCleared:
		return "cleared"
	case ValidityOK:
		return "ok"
	case ValidityBothOccupied:
		return "both_occupied"
	case ValidityBothEmpty:
		return "both_empty"
	case ValidityStartEmpty:
		return "start_empty"
	case ValidityNoPath:
		return "no_path"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the validity as its numeric code.
func (v Validity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(v.Code(), 'f', -1, 64)), nil
}
