package engine

import "fmt"

// Default rule values for the classic game.
const (
	DefaultSize         = 9
	DefaultColors       = 7
	DefaultSpawnCount   = 3
	DefaultLineLength   = 5
	DefaultInitialBalls = DefaultSpawnCount
)

// AxisMode selects which line axes the match detector scans.
type AxisMode string

const (
	// AxesCanonical scans horizontal, vertical and both diagonals.
	AxesCanonical AxisMode = "canonical"
	// AxesLegacy scans the three direction pairs of older releases:
	// {down,up}, {right,up-left}, {down-left,up-right}.
	// Horizontal runs only extend rightward and the main diagonal only
	// extends up-left. Kept for replay parity checks.
	AxesLegacy AxisMode = "legacy"
)

// Rules holds the tunable parameters of a game.
type Rules struct {
	Size         int      // Grid is Size x Size
	Colors       int      // Color ids are 1..Colors
	SpawnCount   int      // Balls per wave and length of PendingColors
	LineLength   int      // Minimum run length that clears
	InitialBalls int      // Balls placed by the override spawn at setup
	Axes         AxisMode // Line axes used by the match detector
}

// DefaultRules returns the classic 9x9, 7 color, 3 per wave, 5 in a row rules.
func DefaultRules() Rules {
	return Rules{
		Size:         DefaultSize,
		Colors:       DefaultColors,
		SpawnCount:   DefaultSpawnCount,
		LineLength:   DefaultLineLength,
		InitialBalls: DefaultInitialBalls,
		Axes:         AxesCanonical,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	switch {
	case r.Size < 1:
		return fmt.Errorf("%w: size %d must be positive", ErrInvalidRules, r.Size)
	case r.Colors < 1 || r.Colors > 255:
		return fmt.Errorf("%w: colors %d must be in 1..255", ErrInvalidRules, r.Colors)
	case r.SpawnCount < 0:
		return fmt.Errorf("%w: spawn count %d must not be negative", ErrInvalidRules, r.SpawnCount)
	case r.LineLength < 2:
		return fmt.Errorf("%w: line length %d must be at least 2", ErrInvalidRules, r.LineLength)
	case r.InitialBalls < 0:
		return fmt.Errorf("%w: initial balls %d must not be negative", ErrInvalidRules, r.InitialBalls)
	}
	if r.Axes != AxesCanonical && r.Axes != AxesLegacy {
		return fmt.Errorf("%w: unknown axis mode %q", ErrInvalidRules, r.Axes)
	}
	return nil
}

// ParseAxisMode converts a string to an AxisMode.
// Empty input selects the canonical axes.
func ParseAxisMode(s string) (AxisMode, bool) {
	switch AxisMode(s) {
	case "", AxesCanonical:
		return AxesCanonical, true
	case AxesLegacy:
		return AxesLegacy, true
	default:
		return AxesCanonical, false
	}
}
