package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/genetics"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a studbook dump of a herd: every living animal with its
// genotype, so pairs can be re-analyzed later.
type Snapshot struct {
	Version    int              `json:"version"`
	Seed       uint64           `json:"seed"`
	Species    genetics.Species `json:"species"`
	Generation int              `json:"generation"`

	Animals []AnimalRecord `json:"animals"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AnimalRecord holds one animal's complete state.
type AnimalRecord struct {
	ID          uint32             `json:"id"`
	Sex         breeding.Sex       `json:"sex"`
	Generation  int                `json:"generation"`
	Age         float64            `json:"age"`
	Temperament string             `json:"temperament"`
	Coat        string             `json:"coat"`
	Stats       map[string]float64 `json:"stats"`
	Health      float64            `json:"health"`
	Mood        float64            `json:"mood"`
	Training    float64            `json:"training"`
	Offspring   int                `json:"offspring"`

	// Pedigree; 0 means a founder.
	Sire      uint32   `json:"sire,omitempty"`
	Dam       uint32   `json:"dam,omitempty"`
	Ancestors []uint32 `json:"ancestors,omitempty"`

	Profile genetics.Profile `json:"profile"`
}

// FormatID renders an animal ID the way pedigree attributes carry it.
func FormatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// Attributes converts the record to analyzer input.
func (a AnimalRecord) Attributes(species genetics.Species) breeding.Attributes {
	ancestors := make([]string, len(a.Ancestors))
	for i, id := range a.Ancestors {
		ancestors[i] = FormatID(id)
	}
	return breeding.Attributes{
		ID:          FormatID(a.ID),
		Species:     species,
		Sex:         a.Sex,
		Age:         a.Age,
		Stats:       a.Stats,
		Health:      a.Health,
		Mood:        a.Mood,
		Training:    a.Training,
		Temperament: a.Temperament,
		Ancestors:   ancestors,
	}
}

// Find returns the animal with the given ID.
func (s *Snapshot) Find(id uint32) (AnimalRecord, bool) {
	for _, a := range s.Animals {
		if a.ID == id {
			return a, true
		}
	}
	return AnimalRecord{}, false
}

// SnapshotFilename builds the file name for a snapshot.
func SnapshotFilename(snapshot *Snapshot) string {
	name := fmt.Sprintf("studbook_gen_%d", snapshot.Generation)
	if snapshot.Bookmark != nil {
		name = fmt.Sprintf("%s_%s", name, snapshot.Bookmark.Type)
	}
	return name + ".json"
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, SnapshotFilename(snapshot))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk and validates every profile
// against reg.
func LoadSnapshot(path string, reg *genetics.Registry) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	for _, a := range snapshot.Animals {
		if err := reg.Validate(a.Profile, snapshot.Species); err != nil {
			return nil, fmt.Errorf("animal %d: %w", a.ID, err)
		}
	}

	return &snapshot, nil
}
