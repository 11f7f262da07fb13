package herd

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/studbook/telemetry"
)

// flushTelemetry closes the generation's stats, writes them out and
// checks for bookmarks. A snapshot is saved for each bookmark.
func (h *Herd) flushTelemetry() (telemetry.GenerationStats, error) {
	maturity := h.cfg.Herd.MaturityAge
	samples := make([]telemetry.AnimalSample, 0, h.population)

	query := h.animalFilter.Query()
	for query.Next() {
		_, genome, vitals, stats, _ := query.Get()
		samples = append(samples, telemetry.AnimalSample{
			Adult:         vitals.Adult(maturity),
			Stats:         stats.Values,
			Coat:          genome.Coat,
			LethalCarrier: genome.LethalCarrier(h.species),
		})
	}

	stats := h.collector.Flush(samples)
	stats.LogStats()
	if err := h.out.WriteGeneration(stats); err != nil {
		return stats, err
	}

	for _, b := range h.bookmarks.Check(stats) {
		b.LogBookmark()
		if err := h.out.WriteBookmark(b); err != nil {
			return stats, err
		}
		path, err := h.out.WriteSnapshot(h.Snapshot(&b))
		if err != nil {
			return stats, err
		}
		if path != "" {
			slog.Info("snapshot saved", "path", path, "bookmark", b.Type)
		}
	}
	return stats, nil
}

// Snapshot captures every living animal, ordered by ID. bookmark may be nil.
func (h *Herd) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		Seed:       h.seed,
		Species:    h.species,
		Generation: h.generation,
		Bookmark:   bookmark,
	}

	query := h.animalFilter.Query()
	for query.Next() {
		id, genome, vitals, stats, ped := query.Get()
		s.Animals = append(s.Animals, telemetry.AnimalRecord{
			ID:          id.ID,
			Sex:         id.Sex,
			Generation:  id.Generation,
			Age:         vitals.Age,
			Temperament: id.Temperament,
			Coat:        genome.Coat,
			Stats:       stats.Clone(),
			Health:      vitals.Health,
			Mood:        vitals.Mood,
			Training:    vitals.Training,
			Offspring:   vitals.Offspring,
			Sire:        ped.Sire,
			Dam:         ped.Dam,
			Ancestors:   ped.Ancestors(),
			Profile:     genome.Profile.Clone(),
		})
	}
	sort.Slice(s.Animals, func(i, j int) bool { return s.Animals[i].ID < s.Animals[j].ID })
	return s
}
