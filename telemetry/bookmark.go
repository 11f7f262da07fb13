package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkDiversityCollapse BookmarkType = "diversity_collapse"
	BookmarkPopulationCrash   BookmarkType = "population_crash"
	BookmarkLethalPurged      BookmarkType = "lethal_purged"
	BookmarkStableHerd        BookmarkType = "stable_herd"
)

// Detection thresholds.
const (
	diversityFloor   = 0.2
	crashDrop        = 0.30
	stableGens       = 5
	stableCVSquared  = 0.01 // CV < 0.1
	minStableHerd    = 10
	minHistoryWindow = 3
)

// Bookmark marks a notable moment in a herd run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector watches generation stats for notable shifts.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	peakPopulation  int
	sawCarriers     bool
	stableCount     int
	diversityBroken bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableGens {
		historySize = stableGens
	}
	return &BookmarkDetector{
		history:     make([]GenerationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark
	for _, check := range []func(GenerationStats) *Bookmark{
		bd.checkDiversityCollapse,
		bd.checkPopulationCrash,
		bd.checkLethalPurged,
		bd.checkStableHerd,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	if stats.Population > bd.peakPopulation {
		bd.peakPopulation = stats.Population
	}
	if stats.LethalCarriers > 0 {
		bd.sawCarriers = true
	}
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n history entries, oldest first.
func (bd *BookmarkDetector) recent(n int) []GenerationStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]GenerationStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

// checkDiversityCollapse fires once when screened diversity drops under the floor.
func (bd *BookmarkDetector) checkDiversityCollapse(stats GenerationStats) *Bookmark {
	if stats.PairsAnalyzed == 0 {
		return nil
	}
	if stats.MeanDiversity >= diversityFloor {
		bd.diversityBroken = false
		return nil
	}
	if bd.diversityBroken {
		return nil
	}
	bd.diversityBroken = true
	return &Bookmark{
		Type:        BookmarkDiversityCollapse,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Mean pair diversity %.2f fell below %.2f", stats.MeanDiversity, diversityFloor),
	}
}

func (bd *BookmarkDetector) checkPopulationCrash(stats GenerationStats) *Bookmark {
	if bd.peakPopulation == 0 {
		return nil
	}
	drop := 1 - float64(stats.Population)/float64(bd.peakPopulation)
	if drop <= crashDrop {
		return nil
	}
	oldPeak := bd.peakPopulation
	bd.peakPopulation = stats.Population // Reset peak after crash
	return &Bookmark{
		Type:        BookmarkPopulationCrash,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Herd fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
	}
}

func (bd *BookmarkDetector) checkLethalPurged(stats GenerationStats) *Bookmark {
	if !bd.sawCarriers || stats.LethalCarriers > 0 {
		return nil
	}
	bd.sawCarriers = false
	return &Bookmark{
		Type:        BookmarkLethalPurged,
		Generation:  stats.Generation,
		Description: "No lethal allele carriers remain in the herd",
	}
}

// checkStableHerd fires once after stableGens generations of steady population.
func (bd *BookmarkDetector) checkStableHerd(stats GenerationStats) *Bookmark {
	if stats.Population < minStableHerd {
		bd.stableCount = 0
		return nil
	}
	history := bd.recent(stableGens - 1)
	if len(history) < minHistoryWindow {
		return nil
	}

	window := append(history, stats)
	var sum float64
	for _, h := range window {
		sum += float64(h.Population)
	}
	mean := sum / float64(len(window))
	var variance float64
	for _, h := range window {
		d := float64(h.Population) - mean
		variance += d * d
	}
	variance /= float64(len(window))

	if variance/(mean*mean) < stableCVSquared {
		bd.stableCount++
	} else {
		bd.stableCount = 0
	}
	if bd.stableCount != stableGens { // Trigger exactly once per stable run
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStableHerd,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Herd steady at about %.0f animals for %d generations", mean, stableGens),
	}
}
