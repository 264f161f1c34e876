package reference

import "strconv"

// PowerTableName is the table name of the power curves.
const PowerTableName = "power"

// PowerCurves are rejection probabilities against the probability of
// measurement error 1-λ, for n = 200 and σ_ME = 0.5.
type PowerCurves struct {
	ErrorProbability []float64
	Models           []string
	Rates            [][]float64
	Level            float64
}

// Power is the published power study.
var Power = PowerCurves{
	ErrorProbability: []float64{0, 0.25, 0.5, 0.75, 1.0},
	Models:           []string{"I", "II", "III"},
	Rates: [][]float64{
		{0.049, 0.394, 0.853, 0.981, 0.995},
		{0.049, 0.322, 0.767, 0.956, 0.992},
		{0.051, 0.399, 0.876, 0.986, 1.000},
	},
	Level: 0.05,
}

// Table lays the curves out with one row per error probability.
func (p PowerCurves) Table() Table {
	t := Table{
		Name:    PowerTableName,
		Title:   "power curves, n = 200, σ_ME = 0.5",
		Headers: []string{"1-λ"},
	}
	for _, m := range p.Models {
		t.Headers = append(t.Headers, "model "+m)
	}
	for i, q := range p.ErrorProbability {
		row := []string{strconv.FormatFloat(q, 'f', 2, 64)}
		for _, rates := range p.Rates {
			row = append(row, strconv.FormatFloat(rates[i], 'f', 3, 64))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
