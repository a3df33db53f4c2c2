// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import (
	"fmt"
	"strings"
)

// AgeClass is the vehicle age rubric: new (under 3 years) or used (over 3 years)
type AgeClass int

const (
	AgeNew AgeClass = iota
	AgeUsed

	ageClassCount
)

// AgeClasses lists every age class in table order
var AgeClasses = [ageClassCount]AgeClass{AgeNew, AgeUsed}

var ageKeys = [ageClassCount]string{"new", "used"}

// String returns the table key of the age class
func (a AgeClass) String() string {
	if !a.IsValid() {
		return fmt.Sprintf("AgeClass(%d)", int(a))
	}
	return ageKeys[a]
}

// IsValid checks if the age class is a known value
func (a AgeClass) IsValid() bool {
	return a >= 0 && a < ageClassCount
}

// ParseAgeClass parses a table key ("new", "used")
func ParseAgeClass(s string) (AgeClass, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, k := range ageKeys {
		if k == key {
			return AgeClass(i), true
		}
	}
	return 0, false
}

// Band is the rubric lookup key derived from displacement or engine class
type Band int

const (
	BandUpTo1 Band = iota
	Band1To2
	Band2To3
	Band3To35
	BandOver35
	BandHybrid
	BandElectric

	bandCount
)

// NoBand marks an absent band
const NoBand Band = -1

// Bands lists every band in canonical table order
var Bands = [bandCount]Band{BandUpTo1, Band1To2, Band2To3, Band3To35, BandOver35, BandHybrid, BandElectric}

// Canonical JSON keys. The ranges use an en dash.
var bandKeys = [bandCount]string{"<=1.0", "1.0–2.0", "2.0–3.0", "3.0–3.5", ">3.5", "HYB", "EV"}

// bandAliases maps accepted spellings to canonical bands
var bandAliases = map[string]Band{
	"≤1.0":    BandUpTo1,
	"1.0-2.0": Band1To2,
	"2.0-3.0": Band2To3,
	"3.0-3.5": Band3To35,
	"hyb":     BandHybrid,
	"ev":      BandElectric,
}

// String returns the canonical table key of the band
func (b Band) String() string {
	if !b.IsValid() {
		return fmt.Sprintf("Band(%d)", int(b))
	}
	return bandKeys[b]
}

// IsValid checks if the band is a known value
func (b Band) IsValid() bool {
	return b >= 0 && b < bandCount
}

// IsDisplacement reports whether the band is selected by engine volume
func (b Band) IsDisplacement() bool {
	return b >= BandUpTo1 && b <= BandOver35
}

// Label returns a human-readable band name
func (b Band) Label() string {
	switch b {
	case BandElectric:
		return "Electric"
	case BandHybrid:
		return "Hybrid"
	default:
		return b.String()
	}
}

// ParseBand parses a canonical band key or one of its accepted aliases
func ParseBand(s string) (Band, bool) {
	key := strings.TrimSpace(s)
	for i, k := range bandKeys {
		if k == key {
			return Band(i), true
		}
	}
	if b, ok := bandAliases[strings.ToLower(key)]; ok {
		return b, true
	}
	return NoBand, false
}

// EngineKind is the vehicle powertrain type
type EngineKind string

const (
	EngineICE     EngineKind = "ICE"
	EngineHybrid  EngineKind = "HYBRID"
	EngineElectro EngineKind = "ELECTRO"
)

// String returns the string representation of the engine kind
func (e EngineKind) String() string {
	return string(e)
}

// IsValid checks if the engine kind is a known value
func (e EngineKind) IsValid() bool {
	switch e {
	case EngineICE, EngineHybrid, EngineElectro:
		return true
	default:
		return false
	}
}

// Label returns a human-readable engine name
func (e EngineKind) Label() string {
	switch e {
	case EngineICE:
		return "Petrol/Diesel (ICE)"
	case EngineHybrid:
		return "Hybrid"
	case EngineElectro:
		return "Electric"
	default:
		return string(e)
	}
}

// ParseEngineKind parses an engine kind case-insensitively
func ParseEngineKind(s string) (EngineKind, bool) {
	e := EngineKind(strings.ToUpper(strings.TrimSpace(s)))
	return e, e.IsValid()
}

// HybridPolicy controls how hybrids are classified and floored
type HybridPolicy struct {
	// TreatAsElectro classifies hybrids into the electric category (series HEV/PHEV)
	TreatAsElectro bool `json:"treat_as_electro"`
}

// Audience selects one side of a rubric row
type Audience string

const (
	// AudiencePhys is the preferential rate for individuals
	AudiencePhys Audience = "phys"

	// AudienceLegal is the commercial rate for legal entities
	AudienceLegal Audience = "legal"
)

// ParseAudience parses "phys" or "legal"
func ParseAudience(s string) (Audience, bool) {
	a := Audience(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case AudiencePhys, AudienceLegal:
		return a, true
	default:
		return "", false
	}
}
