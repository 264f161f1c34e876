package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/measim/internal/sampler"
)

type ExportData struct {
	Meta      *RunMetadata `json:"meta"`
	True      []float64    `json:"true"`
	Observed  []float64    `json:"observed"`
	Auxiliary []float64    `json:"auxiliary"`
	Outcome   []float64    `json:"outcome"`
	Corrupted []bool       `json:"corrupted"`
}

// ExportJSON writes a run's metadata and sample as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, smp *sampler.Sample) error {
	data := ExportData{
		Meta:      meta,
		True:      smp.True,
		Observed:  smp.Observed,
		Auxiliary: smp.Auxiliary,
		Outcome:   smp.Outcome,
		Corrupted: smp.Corrupted,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
