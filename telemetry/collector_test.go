package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/config"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	c.RecordBirth()
	c.RecordBirth()
	c.RecordStillborn()
	c.RecordRetirement()
	c.RecordScreening(breeding.Report{Diversity: 0.4, OverallRiskScore: 10, BreedingValue: 60})
	c.RecordScreening(breeding.Report{Diversity: 0.6, OverallRiskScore: 30, BreedingValue: 40})
	c.RecordLethalRejection()
	c.RecordBred()

	herd := []AnimalSample{
		{Adult: true, Stats: map[string]float64{"speed": 40}, Coat: "bay", LethalCarrier: true},
		{Adult: true, Stats: map[string]float64{"speed": 60}, Coat: "bay"},
		{Stats: map[string]float64{"speed": 50}, Coat: "chestnut"},
	}
	s := c.Flush(herd)

	if s.Generation != 0 || s.Population != 3 || s.Adults != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.Births != 2 || s.Stillborn != 1 || s.Retired != 1 {
		t.Errorf("events = %+v", s)
	}
	if s.PairsAnalyzed != 2 || s.PairsLethal != 1 || s.PairsBred != 1 {
		t.Errorf("pairs = %+v", s)
	}
	if math.Abs(s.MeanDiversity-0.5) > 1e-9 || math.Abs(s.MeanRisk-20) > 1e-9 || math.Abs(s.BreedingValueMean-50) > 1e-9 {
		t.Errorf("screening means = %+v", s)
	}
	if math.Abs(s.SpeedMean-50) > 1e-9 {
		t.Errorf("speed mean = %v, want 50", s.SpeedMean)
	}
	if s.LethalCarriers != 1 || s.CoatVariety != 2 || s.TopCoat != "bay" {
		t.Errorf("genetic state = %+v", s)
	}

	next := c.Flush(nil)
	if next.Generation != 1 || next.Births != 0 || next.PairsAnalyzed != 0 {
		t.Errorf("collector not reset: %+v", next)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := om.WriteGeneration(GenerationStats{Generation: i, Population: 10 + i, TopCoat: "bay"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkStableHerd, Generation: 2, Description: "steady"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []GenerationStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading generations.csv: %v", err)
	}
	if len(rows) != 3 || rows[2].Population != 12 {
		t.Errorf("rows = %+v", rows)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestWriteReports(t *testing.T) {
	reports := []breeding.Report{
		{
			ParentA: "1", ParentB: "2", Species: "horse",
			HealthRisks:     []breeding.Finding{{Condition: "lethal_white_overo", Risk: 50, Lethal: true}},
			PredictedColors: []breeding.Outcome{{Value: "bay", Probability: 0.6}, {Value: "black", Probability: 0.4}},
			Recommendations: []string{breeding.RecDoNotBreed, breeding.RecDNATest},
		},
	}
	var buf bytes.Buffer
	if err := WriteReports(&buf, reports); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], "parent_a,parent_b,species") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"lethal_white_overo:50", "true", "bay", "do_not_breed_lethal_combination;dna_test_both_parents"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}
