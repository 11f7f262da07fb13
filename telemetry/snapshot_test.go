package telemetry

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/genetics"
)

func testRecord(t *testing.T, id uint32, seed uint64) AnimalRecord {
	t.Helper()
	p, err := genetics.RandomProfile(genetics.NewRand(seed, 0), genetics.Default(), genetics.Horse)
	if err != nil {
		t.Fatal(err)
	}
	return AnimalRecord{
		ID:          id,
		Sex:         breeding.Female,
		Generation:  2,
		Age:         6,
		Temperament: "Calm",
		Coat:        "bay",
		Stats:       map[string]float64{"speed": 61, "stamina": 55},
		Health:      90,
		Sire:        1,
		Dam:         2,
		Ancestors:   []uint32{1, 2},
		Profile:     p,
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		Seed:       42,
		Species:    genetics.Horse,
		Generation: 7,
		Animals:    []AnimalRecord{testRecord(t, 10, 1), testRecord(t, 11, 2)},
		Bookmark: &Bookmark{
			Type:        BookmarkLethalPurged,
			Generation:  7,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path, genetics.Default())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Seed != snapshot.Seed || loaded.Generation != snapshot.Generation {
		t.Errorf("header mismatch: got %+v", loaded)
	}
	if !reflect.DeepEqual(loaded.Animals, snapshot.Animals) {
		t.Error("animals differ after round trip")
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != snapshot.Bookmark.Type {
		t.Errorf("Bookmark not restored: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	withBookmark := &Snapshot{Generation: 12, Bookmark: &Bookmark{Type: BookmarkPopulationCrash}}
	if got := SnapshotFilename(withBookmark); got != "studbook_gen_12_population_crash.json" {
		t.Errorf("filename = %s", got)
	}
	if got := SnapshotFilename(&Snapshot{Generation: 3}); got != "studbook_gen_3.json" {
		t.Errorf("filename = %s", got)
	}
}

func TestLoadSnapshotRejectsBadProfile(t *testing.T) {
	rec := testRecord(t, 5, 3)
	rec.Profile = rec.Profile.Clone()
	rec.Profile["cream"] = genetics.Genotype{"C", "X"}
	snapshot := &Snapshot{Version: SnapshotVersion, Species: genetics.Horse, Animals: []AnimalRecord{rec}}

	path, err := SaveSnapshot(snapshot, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = LoadSnapshot(path, genetics.Default())
	if err == nil || !strings.Contains(err.Error(), "animal 5") {
		t.Errorf("err = %v, want animal 5 validation failure", err)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path, genetics.Default()); err == nil {
		t.Error("expected version error")
	}
}

func TestAnimalRecordAttributes(t *testing.T) {
	rec := testRecord(t, 10, 1)
	attrs := rec.Attributes(genetics.Horse)

	if attrs.ID != "10" || attrs.Species != genetics.Horse || attrs.Sex != breeding.Female {
		t.Errorf("attributes = %+v", attrs)
	}
	if !reflect.DeepEqual(attrs.Ancestors, []string{"1", "2"}) {
		t.Errorf("ancestors = %v", attrs.Ancestors)
	}

	s := &Snapshot{Animals: []AnimalRecord{rec}}
	if _, ok := s.Find(10); !ok {
		t.Error("Find(10) failed")
	}
	if _, ok := s.Find(99); ok {
		t.Error("Find(99) should fail")
	}
}
