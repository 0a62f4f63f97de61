package registry

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to max known IDs closest to id by edit distance. IDs
// more than a third of their length away are not suggested.
func (r *Registry) Suggest(id string, max int) []string {
	if max <= 0 || id == "" {
		return nil
	}

	type candidate struct {
		id   string
		dist int
	}
	r.mu.RLock()
	var cands []candidate
	for known := range r.defs {
		d := levenshtein.ComputeDistance(id, known)
		limit := len(known) / 3
		if limit < 1 {
			limit = 1
		}
		if d <= limit {
			cands = append(cands, candidate{id: known, dist: d})
		}
	}
	r.mu.RUnlock()

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].id < cands[j].id
	})
	if len(cands) > max {
		cands = cands[:max]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.id
	}
	return out
}
