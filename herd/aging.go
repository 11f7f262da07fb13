package herd

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/studbook/coat"
)

// trainingPerYear is the training adults gain each year, up to 100.
const trainingPerYear = 5

// age advances every animal one year, refreshes age-dependent coats and
// retires animals past the maximum age.
func (h *Herd) age() error {
	hc := h.cfg.Herd

	// First pass: age and collect retirees (must complete before modifying)
	var retired []ecs.Entity
	var firstErr error

	query := h.animalFilter.Query()
	for query.Next() {
		id, genome, vitals, _, _ := query.Get()
		vitals.Age++
		if vitals.Age > hc.MaxAge {
			retired = append(retired, query.Entity())
			continue
		}
		if vitals.Adult(hc.MaturityAge) {
			vitals.Training = min(100, vitals.Training+trainingPerYear)
		}

		c, err := coat.Describe(h.reg, genome.Profile, h.species, vitals.Age)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("animal %d: %w", id.ID, err)
			}
			continue
		}
		genome.Coat = c.Chain
	}
	if firstErr != nil {
		return firstErr
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range retired {
		h.world.RemoveEntity(e)
		h.population--
		h.collector.RecordRetirement()
	}
	return nil
}
