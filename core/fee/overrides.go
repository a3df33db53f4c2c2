package fee

import (
	"github.com/shopspring/decimal"

	"utilfee/core/types"
)

// electroPolicy restricts a floor to one value of HybridPolicy.TreatAsElectro
type electroPolicy int

const (
	anyPolicy electroPolicy = iota
	asElectro
	notAsElectro
)

// floor is a minimum rate for one audience. Band NoBand matches any band.
type floor struct {
	Name     string
	Audience types.Audience
	Age      types.AgeClass
	Policy   electroPolicy
	Band     types.Band
	Minimum  decimal.Decimal
}

func (f floor) matches(age types.AgeClass, band types.Band, policy types.HybridPolicy) bool {
	if f.Age != age {
		return false
	}
	if f.Band != types.NoBand && f.Band != band {
		return false
	}
	switch f.Policy {
	case asElectro:
		return policy.TreatAsElectro
	case notAsElectro:
		return !policy.TreatAsElectro
	default:
		return true
	}
}

// hybridFloors are the 2025 minimums for hybrids. The new 2.0–3.0 commercial
// floor is the only band-specific one for non-electro hybrids; no other new
// band gets a commercial floor on that branch.
var hybridFloors = []floor{
	{Name: "hybrid-phys-new", Audience: types.AudiencePhys, Age: types.AgeNew, Policy: anyPolicy, Band: types.NoBand, Minimum: types.Amount(3400)},
	{Name: "hybrid-phys-used", Audience: types.AudiencePhys, Age: types.AgeUsed, Policy: anyPolicy, Band: types.NoBand, Minimum: types.Amount(5200)},
	{Name: "hybrid-electro-legal-new", Audience: types.AudienceLegal, Age: types.AgeNew, Policy: asElectro, Band: types.NoBand, Minimum: types.Amount(667000)},
	{Name: "hybrid-electro-legal-used", Audience: types.AudienceLegal, Age: types.AgeUsed, Policy: asElectro, Band: types.NoBand, Minimum: types.Amount(1174000)},
	{Name: "hybrid-legal-used", Audience: types.AudienceLegal, Age: types.AgeUsed, Policy: notAsElectro, Band: types.NoBand, Minimum: types.Amount(1174000)},
	{Name: "hybrid-legal-new-2.0-3.0", Audience: types.AudienceLegal, Age: types.AgeNew, Policy: notAsElectro, Band: types.Band2To3, Minimum: types.Amount(1875000)},
}

func floorsFor(engine types.EngineKind) []floor {
	if engine == types.EngineHybrid {
		return hybridFloors
	}
	return nil
}
