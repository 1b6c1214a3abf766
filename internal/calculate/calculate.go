// Package calculate implements the technical indicator engine: pure
// numeric functions over OHLC candle history.
package calculate

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a price series is too short for the
// requested indicator period. Callers must abort the cycle rather than
// degrade below the documented minimums.
var ErrInsufficientData = errors.New("insufficient data")

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
