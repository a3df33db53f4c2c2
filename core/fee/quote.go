package fee

import (
	"strings"

	"utilfee/core/band"
	"utilfee/core/period"
	"utilfee/core/types"
)

// Status says whether a quote could be computed and, if not, why
type Status string

const (
	// StatusIncomplete means no date was entered
	StatusIncomplete Status = "incomplete"

	// StatusNoPeriod means no period covers the date
	StatusNoPeriod Status = "no_period"

	// StatusInvalidVolume means a required engine volume is missing or malformed
	StatusInvalidVolume Status = "invalid_volume"

	// StatusNoBand means the band could not be determined
	StatusNoBand Status = "no_band"

	// StatusOK means Result is set
	StatusOK Status = "ok"
)

// Message returns user guidance for the status
func (s Status) Message() string {
	switch s {
	case StatusIncomplete:
		return "Enter the EPTS date."
	case StatusNoPeriod:
		return "No rate period covers the selected date. Check the tables."
	case StatusInvalidVolume:
		return "Enter a valid engine volume."
	case StatusNoBand:
		return "Could not determine the band."
	default:
		return ""
	}
}

// Query is the set of inputs for one estimate
type Query struct {
	// Date is the EPTS date, YYYY-MM-DD
	Date string `json:"date"`

	// Age is the rubric age class
	Age types.AgeClass `json:"-"`

	// Engine is the powertrain
	Engine types.EngineKind `json:"engine"`

	// Volume is the free-text engine volume in liters
	Volume string `json:"volume,omitempty"`

	// Policy is the hybrid classification policy
	Policy types.HybridPolicy `json:"policy"`
}

// Quote is the outcome of a query against a rate table
type Quote struct {
	Query  Query         `json:"query"`
	Status Status        `json:"status"`
	Period *types.Period `json:"-"`
	Band   types.Band    `json:"-"`
	Result *Result       `json:"result,omitempty"`
}

// OK reports whether the quote carries a result
func (q Quote) OK() bool {
	return q.Status == StatusOK
}

// NewQuote runs the full pipeline: resolve the period, classify the band and
// evaluate. The periods slice is read, never retained or modified.
func NewQuote(periods []types.Period, q Query) Quote {
	out := Quote{Query: q, Band: types.NoBand}

	if strings.TrimSpace(q.Date) == "" {
		out.Status = StatusIncomplete
		return out
	}

	matched, ok := period.Resolve(q.Date, periods)
	if !ok {
		out.Status = StatusNoPeriod
		return out
	}
	p := *matched
	out.Period = &p

	if band.NeedsVolume(q.Engine, q.Policy) && !band.IsWellFormedVolume(q.Volume) {
		out.Status = StatusInvalidVolume
		return out
	}

	b, ok := band.Classify(q.Engine, q.Volume, q.Policy)
	if !ok {
		out.Status = StatusNoBand
		return out
	}
	out.Band = b

	result, ok := Evaluate(out.Period, q.Age, b, q.Engine, q.Policy)
	if !ok {
		out.Status = StatusNoBand
		return out
	}
	out.Result = result
	out.Status = StatusOK
	return out
}
