// Package output provides output formatting for quotes and rate tables.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"utilfee/core/fee"
	"utilfee/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI listing
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for a quote
	Render(w io.Writer, quote fee.Quote) error
}

// ForFormat returns the formatter for a format name
func ForFormat(name string) (Formatter, bool) {
	switch Format(strings.ToLower(name)) {
	case FormatCLI:
		return CLIFormatter{}, true
	case FormatJSON:
		return JSONFormatter{}, true
	default:
		return nil, false
	}
}

// CLIFormatter renders a quote as aligned text
type CLIFormatter struct{}

// Format implements Formatter
func (CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (CLIFormatter) Render(w io.Writer, quote fee.Quote) error {
	if !quote.OK() {
		_, err := fmt.Fprintln(w, quote.Status.Message())
		return err
	}

	r := quote.Result
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Period:\t%s\n", r.PeriodName)
	fmt.Fprintf(tw, "Age:\t%s\n", AgeLabel(r.Age))
	fmt.Fprintf(tw, "Engine:\t%s\n", r.Engine.Label())
	fmt.Fprintf(tw, "Band:\t%s\n", r.Band.Label())
	fmt.Fprintf(tw, "Preferential (individuals):\t%s\n", Rubles(r.Preferential))
	fmt.Fprintf(tw, "Commercial (legal entities):\t%s\n", Rubles(r.Commercial))
	fmt.Fprintf(tw, "Difference (commercial - preferential):\t%s\n", Rubles(r.Difference))
	for _, f := range r.Floors {
		fmt.Fprintf(tw, "Minimum applied:\t%s %s: %s -> %s\n", f.Rule, f.Audience, Rubles(f.From), Rubles(f.To))
	}
	return tw.Flush()
}

// JSONFormatter renders a quote as JSON
type JSONFormatter struct{}

// Format implements Formatter
func (JSONFormatter) Format() Format { return FormatJSON }

type quoteView struct {
	Status  fee.Status  `json:"status"`
	Message string      `json:"message,omitempty"`
	Query   queryView   `json:"query"`
	Result  *resultView `json:"result,omitempty"`
}

type queryView struct {
	Date           string `json:"date"`
	Age            string `json:"age"`
	Engine         string `json:"engine"`
	Volume         string `json:"volume,omitempty"`
	TreatAsElectro bool   `json:"treat_as_electro"`
}

type resultView struct {
	PeriodID     string      `json:"period_id"`
	PeriodName   string      `json:"period_name"`
	Band         string      `json:"band"`
	Preferential json.Number `json:"preferential"`
	Commercial   json.Number `json:"commercial"`
	Difference   json.Number `json:"difference"`
	Floors       []floorView `json:"floors,omitempty"`
}

type floorView struct {
	Rule     string      `json:"rule"`
	Audience string      `json:"audience"`
	From     json.Number `json:"from"`
	To       json.Number `json:"to"`
}

// Render implements Formatter
func (JSONFormatter) Render(w io.Writer, quote fee.Quote) error {
	view := quoteView{
		Status:  quote.Status,
		Message: quote.Status.Message(),
		Query: queryView{
			Date:           quote.Query.Date,
			Age:            quote.Query.Age.String(),
			Engine:         quote.Query.Engine.String(),
			Volume:         quote.Query.Volume,
			TreatAsElectro: quote.Query.Policy.TreatAsElectro,
		},
	}
	if r := quote.Result; r != nil {
		rv := &resultView{
			PeriodID:     r.PeriodID,
			PeriodName:   r.PeriodName,
			Band:         r.Band.String(),
			Preferential: number(r.Preferential),
			Commercial:   number(r.Commercial),
			Difference:   number(r.Difference),
		}
		for _, f := range r.Floors {
			rv.Floors = append(rv.Floors, floorView{
				Rule:     f.Rule,
				Audience: string(f.Audience),
				From:     number(f.From),
				To:       number(f.To),
			})
		}
		view.Result = rv
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

// AgeLabel returns a human-readable age class
func AgeLabel(a types.AgeClass) string {
	switch a {
	case types.AgeNew:
		return "New (< 3 years)"
	case types.AgeUsed:
		return "Used (> 3 years)"
	default:
		return a.String()
	}
}

// Rubles formats an amount with thousands grouping, e.g. "1 174 000 ₽"
func Rubles(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(0)) + " ₽"
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
