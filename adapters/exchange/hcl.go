package exchange

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"utilfee/core/rates"
	"utilfee/internal/errors"
)

// hclDocument is the HCL authoring format:
//
//	period "2025-01-01" {
//	  name  = "Period C"
//	  start = "2025-01-01"
//	  new {
//	    band "<=1.0" {
//	      phys  = 3400
//	      legal = 180200
//	    }
//	  }
//	}
type hclDocument struct {
	Periods []hclPeriod `hcl:"period,block"`
}

type hclPeriod struct {
	ID    string  `hcl:"id,label"`
	Name  string  `hcl:"name,optional"`
	Start string  `hcl:"start"`
	End   *string `hcl:"end,optional"`
	New   *hclAge `hcl:"new,block"`
	Used  *hclAge `hcl:"used,block"`
}

type hclAge struct {
	Bands []hclBand `hcl:"band,block"`
}

type hclBand struct {
	Key   string   `hcl:"key,label"`
	Phys  *float64 `hcl:"phys,optional"`
	Legal *float64 `hcl:"legal,optional"`
}

// ParseHCL decodes an HCL rate table into raw periods. Syntax and schema
// errors are reported with file and line; amounts are left to the normalizer.
func ParseHCL(src []byte, filename string) ([]rates.RawPeriod, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse HCL", diags).WithContext("file", filename)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Parsing("failed to decode HCL", diags).WithContext("file", filename)
	}

	raws := make([]rates.RawPeriod, 0, len(doc.Periods))
	for _, p := range doc.Periods {
		raw := rates.RawPeriod{
			ID:     p.ID,
			Name:   p.Name,
			Start:  p.Start,
			Tables: make(map[string]map[string]rates.RawRow, 2),
		}
		if p.End != nil {
			raw.End = *p.End
		}
		if p.New != nil {
			raw.Tables["new"] = p.New.rows()
		}
		if p.Used != nil {
			raw.Tables["used"] = p.Used.rows()
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func (a *hclAge) rows() map[string]rates.RawRow {
	out := make(map[string]rates.RawRow, len(a.Bands))
	for _, b := range a.Bands {
		var row rates.RawRow
		if b.Phys != nil {
			row.Phys = *b.Phys
		}
		if b.Legal != nil {
			row.Legal = *b.Legal
		}
		out[b.Key] = row
	}
	return out
}
