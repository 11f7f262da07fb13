package components

// Pedigree records an animal's known ancestry, one line per generation
// back. Lines[0] holds the parents, Lines[1] the grandparents, and so on.
// Founders have no lines.
type Pedigree struct {
	Sire, Dam uint32 // 0 for founders
	Lines     [][]uint32
}

// ChildPedigree builds the pedigree of an offspring of sire and dam,
// keeping at most depth generations.
func ChildPedigree(sireID uint32, sire *Pedigree, damID uint32, dam *Pedigree, depth int) Pedigree {
	p := Pedigree{Sire: sireID, Dam: damID}
	if depth <= 0 {
		return p
	}
	p.Lines = append(p.Lines, []uint32{sireID, damID})
	for gen := 1; gen < depth; gen++ {
		var line []uint32
		line = appendLine(line, sire, gen-1)
		line = appendLine(line, dam, gen-1)
		if len(line) == 0 {
			break
		}
		p.Lines = append(p.Lines, line)
	}
	return p
}

func appendLine(dst []uint32, p *Pedigree, gen int) []uint32 {
	if p == nil || gen >= len(p.Lines) {
		return dst
	}
	return append(dst, p.Lines[gen]...)
}

// Ancestors flattens the pedigree, nearest generation first, without duplicates.
func (p *Pedigree) Ancestors() []uint32 {
	var out []uint32
	seen := make(map[uint32]bool)
	for _, line := range p.Lines {
		for _, id := range line {
			if id == 0 || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
