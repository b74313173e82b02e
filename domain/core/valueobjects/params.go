package valueobjects

import "strconv"

const (
	MinHops     = 1
	MaxHops     = 3
	DefaultHops = 2

	DefaultResultLimit = 300
	DefaultMandateCap  = 50
)

// HopBound is the maximum number of directed transfer steps in a reachability query.
// It is always within [MinHops, MaxHops].
type HopBound int

// NewHopBound clamps hops to the allowed range
func NewHopBound(hops int) HopBound {
	switch {
	case hops < MinHops:
		return MinHops
	case hops > MaxHops:
		return MaxHops
	default:
		return HopBound(hops)
	}
}

// ParseHopBound parses a raw query value, using fallback when empty or malformed
func ParseHopBound(raw string, fallback int) HopBound {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return NewHopBound(fallback)
	}
	return NewHopBound(n)
}

// Int returns the bound as an int
func (h HopBound) Int() int {
	return int(h)
}

// AllHopBounds lists every value a HopBound can take
func AllHopBounds() []HopBound {
	return []HopBound{1, 2, 3}
}

// ResultLimit caps the node list and the edge list of a subgraph independently
type ResultLimit int

// NewResultLimit returns the limit, substituting the default for non-positive values
func NewResultLimit(limit int) ResultLimit {
	if limit < 1 {
		return DefaultResultLimit
	}
	return ResultLimit(limit)
}

// ParseResultLimit parses a raw query value, using fallback when empty or malformed
func ParseResultLimit(raw string, fallback int) ResultLimit {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return NewResultLimit(fallback)
	}
	return NewResultLimit(n)
}

// Int returns the limit as an int
func (l ResultLimit) Int() int {
	return int(l)
}

// MandateCap bounds the number of secondary mandate edges in a governance view
type MandateCap int

// NewMandateCap returns the cap; negative values disable secondary mandates
func NewMandateCap(n int) MandateCap {
	if n < 0 {
		return 0
	}
	return MandateCap(n)
}

// ParseMandateCap parses a raw query value, using fallback when empty or malformed
func ParseMandateCap(raw string, fallback int) MandateCap {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return NewMandateCap(fallback)
	}
	return NewMandateCap(n)
}

// Int returns the cap as an int
func (c MandateCap) Int() int {
	return int(c)
}

// ParseFlag parses a boolean query value, using fallback when empty or malformed
func ParseFlag(raw string, fallback bool) bool {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
