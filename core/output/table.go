package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"utilfee/core/types"
)

// RenderPeriodList writes one line per period in store order
func RenderPeriodList(w io.Writer, periods []types.Period) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tEND")
	for _, p := range periods {
		end := "open"
		if p.End != nil {
			end = p.End.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Start.String(), end)
	}
	return tw.Flush()
}

// RenderPeriodTables writes the full rubric of one period
func RenderPeriodTables(w io.Writer, p types.Period) error {
	end := "open"
	if p.End != nil {
		end = p.End.String()
	}
	if _, err := fmt.Fprintf(w, "%s  [%s .. %s]  id=%s\n", p.Name, p.Start.String(), end, p.ID); err != nil {
		return err
	}

	for _, age := range types.AgeClasses {
		fmt.Fprintf(w, "\n%s\n", AgeLabel(age))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Band\tIndividuals (preferential)\tLegal entities (commercial)\t")
		for _, band := range types.Bands {
			row := p.Tables.Row(age, band)
			fmt.Fprintf(tw, "%s\t%s\t%s\t\n", band.Label(), Rubles(row.Phys), Rubles(row.Legal))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
