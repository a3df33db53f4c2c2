package demo

import (
	"utilfee/core/fee"
	"utilfee/core/types"
)

// Preset is a ready-made query for a typical vehicle
type Preset struct {
	Label string
	Query fee.Query
}

// Presets returns the quick scenarios. Unless stated otherwise a preset
// treats hybrids as electro.
func Presets() []Preset {
	electro := types.HybridPolicy{TreatAsElectro: true}
	combustion := types.HybridPolicy{TreatAsElectro: false}

	return []Preset{
		{
			Label: "New ICE 1.6 l (2025)",
			Query: fee.Query{Date: "2025-02-01", Engine: types.EngineICE, Age: types.AgeNew, Volume: "1.6", Policy: electro},
		},
		{
			Label: "New electric (2025)",
			Query: fee.Query{Date: "2025-03-01", Engine: types.EngineElectro, Age: types.AgeNew, Policy: electro},
		},
		{
			Label: "New hybrid as electro (2025)",
			Query: fee.Query{Date: "2025-03-15", Engine: types.EngineHybrid, Age: types.AgeNew, Policy: electro},
		},
		{
			Label: "New hybrid non-electro 2.5 l (2025)",
			Query: fee.Query{Date: "2025-05-10", Engine: types.EngineHybrid, Age: types.AgeNew, Volume: "2.5", Policy: combustion},
		},
		{
			Label: "Used hybrid non-electro (2025)",
			Query: fee.Query{Date: "2025-06-20", Engine: types.EngineHybrid, Age: types.AgeUsed, Volume: "2.0", Policy: combustion},
		},
		{
			Label: "Used ICE 2.4 l (2023)",
			Query: fee.Query{Date: "2023-09-15", Engine: types.EngineICE, Age: types.AgeUsed, Volume: "2.4", Policy: electro},
		},
	}
}
