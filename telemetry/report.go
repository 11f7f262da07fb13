package telemetry

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/studbook/breeding"
)

// ReportRow is a flat CSV form of a compatibility report.
type ReportRow struct {
	ParentA         string  `csv:"parent_a"`
	ParentB         string  `csv:"parent_b"`
	Species         string  `csv:"species"`
	Diversity       float64 `csv:"diversity"`
	Inbreeding      float64 `csv:"inbreeding"`
	RiskScore       float64 `csv:"risk_score"`
	Findings        string  `csv:"findings"` // condition:risk pairs joined by ';'
	Lethal          bool    `csv:"lethal"`
	LethalOffspring float64 `csv:"lethal_offspring_rate"`
	TopColor        string  `csv:"top_color"`
	TopColorProb    float64 `csv:"top_color_probability"`
	Colors          int     `csv:"color_outcomes"`
	BreedingValue   float64 `csv:"breeding_value"`
	Recommendations string  `csv:"recommendations"` // joined by ';'
}

// NewReportRow flattens r.
func NewReportRow(r breeding.Report) ReportRow {
	findings := make([]string, len(r.HealthRisks))
	for i, f := range r.HealthRisks {
		findings[i] = fmt.Sprintf("%s:%g", f.Condition, f.Risk)
	}
	row := ReportRow{
		ParentA:         r.ParentA,
		ParentB:         r.ParentB,
		Species:         string(r.Species),
		Diversity:       r.Diversity,
		Inbreeding:      r.Inbreeding,
		RiskScore:       r.OverallRiskScore,
		Findings:        strings.Join(findings, ";"),
		Lethal:          r.Lethal(),
		LethalOffspring: r.LethalOffspring,
		Colors:          len(r.PredictedColors),
		BreedingValue:   r.BreedingValue,
		Recommendations: strings.Join(r.Recommendations, ";"),
	}
	if len(r.PredictedColors) > 0 {
		row.TopColor = r.PredictedColors[0].Value
		row.TopColorProb = r.PredictedColors[0].Probability
	}
	return row
}

// WriteReports writes reports as CSV with a header row.
func WriteReports(w io.Writer, reports []breeding.Report) error {
	rows := make([]ReportRow, len(reports))
	for i, r := range reports {
		rows[i] = NewReportRow(r)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}
	return nil
}
