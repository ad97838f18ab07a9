package ner

import "strings"

// norm prepares a name for comparison: lowercase, WordPiece continuation
// markers stripped, surrounding space trimmed.
func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "##", "")))
}

// Dedupe collapses duplicate names while keeping the original order. NER
// output often contains both a partial and a full form of the same name
// ("Putin" and "Vladimir Putin"), so containment counts as a duplicate:
// a name already covered by a kept longer name is dropped, and a longer
// name replaces kept shorter forms in place, holding the first position.
func Dedupe(items []string) []string {
	out := []string{}

	for _, it := range items {
		lw := norm(it)
		if lw == "" {
			continue
		}

		// Exact duplicate
		exact := false
		for _, x := range out {
			if lw == norm(x) {
				exact = true
				break
			}
		}
		if exact {
			continue
		}

		// Contained in something already kept that is at least as long
		contained := false
		for _, x := range out {
			if strings.Contains(norm(x), lw) && len(x) >= len(it) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}

		// Kept shorter forms covered by this name: replace the first in
		// place, drop the rest
		var shorter []int
		for i, x := range out {
			if strings.Contains(lw, norm(x)) && len(it) > len(x) {
				shorter = append(shorter, i)
			}
		}
		if len(shorter) > 0 {
			out[shorter[0]] = it
			for i := len(shorter) - 1; i >= 1; i-- {
				out = append(out[:shorter[i]], out[shorter[i]+1:]...)
			}
			continue
		}

		out = append(out, it)
	}

	return out
}
