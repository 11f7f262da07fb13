package genetics

import "fmt"

// NotFoundError reports an unknown locus or health-condition key.
type NotFoundError struct {
	Kind string // "locus" or "condition"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// InvalidGenotypeError reports genotype data that does not fit its locus.
type InvalidGenotypeError struct {
	Locus  string
	Allele Allele // Empty when the whole locus is at fault
	Reason string
}

func (e *InvalidGenotypeError) Error() string {
	if e.Allele != "" {
		return fmt.Sprintf("invalid genotype at %s: allele %q %s", e.Locus, e.Allele, e.Reason)
	}
	return fmt.Sprintf("invalid genotype at %s: %s", e.Locus, e.Reason)
}

// UnsupportedSpeciesError reports a locus or condition queried for a species it does not cover.
type UnsupportedSpeciesError struct {
	Key     string // Empty when the species itself is unknown
	Species Species
}

func (e *UnsupportedSpeciesError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("unsupported species %q", e.Species)
	}
	return fmt.Sprintf("%s does not apply to species %q", e.Key, e.Species)
}
