// Package band maps vehicle attributes to a rubric band.
package band

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"utilfee/core/types"
)

// volumePattern is what the input form accepts as an engine volume
var volumePattern = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)

// step is one rung of the displacement ladder; UpTo is inclusive
type step struct {
	UpTo decimal.Decimal
	Band types.Band
}

// ladder is ordered by UpTo. Volumes above the last rung fall in BandOver35.
var ladder = []step{
	{UpTo: decimal.RequireFromString("1.0"), Band: types.BandUpTo1},
	{UpTo: decimal.RequireFromString("2.0"), Band: types.Band1To2},
	{UpTo: decimal.RequireFromString("3.0"), Band: types.Band2To3},
	{UpTo: decimal.RequireFromString("3.5"), Band: types.Band3To35},
}

// Classify maps an engine kind and volume text to a band.
// Electric vehicles, and hybrids under a treat-as-electro policy, are always
// EV. Everything else needs a parsable volume in liters; ok is false
// otherwise. HYB is never produced here.
func Classify(engine types.EngineKind, volumeText string, policy types.HybridPolicy) (types.Band, bool) {
	if !NeedsVolume(engine, policy) {
		return types.BandElectric, true
	}
	v, ok := ParseVolume(volumeText)
	if !ok {
		return types.NoBand, false
	}
	return ForVolume(v), true
}

// NeedsVolume reports whether classification depends on engine volume
func NeedsVolume(engine types.EngineKind, policy types.HybridPolicy) bool {
	switch engine {
	case types.EngineElectro:
		return false
	case types.EngineHybrid:
		return !policy.TreatAsElectro
	default:
		return true
	}
}

// ParseVolume parses a decimal volume, accepting "," as the separator.
// Exponent notation is rejected.
func ParseVolume(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// IsWellFormedVolume reports whether text is a plain positional number such
// as "1.6" or "2,0", the only shapes the input form accepts
func IsWellFormedVolume(text string) bool {
	return volumePattern.MatchString(text)
}

// ForVolume walks the ladder; each bound is inclusive
func ForVolume(liters decimal.Decimal) types.Band {
	for _, s := range ladder {
		if liters.LessThanOrEqual(s.UpTo) {
			return s.Band
		}
	}
	return types.BandOver35
}
