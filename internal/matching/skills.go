package matching

import "strings"

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// skillNamesMatch reports whether two normalized skill names refer to the
// same skill. The containment check is deliberately permissive so phrasing
// differences ("javascript" vs "js programming" vs "javascript es6") still
// line up.
func skillNamesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// matchSkills scores the overlap between a candidate's skills and a wanted
// list. A wanted list with no entries is vacuously satisfied at 100. Wanted
// entries are unique by normalized name; matched/missing keep the job's
// original spelling.
func matchSkills(candidateSkills, wanted []string) SkillMatch {
	normalized := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		if n := normalizeSkill(s); n != "" {
			normalized = append(normalized, n)
		}
	}

	matched := []string{}
	missing := []string{}
	seen := make(map[string]bool, len(wanted))
	total := 0

	for _, w := range wanted {
		nw := normalizeSkill(w)
		if nw == "" || seen[nw] {
			continue
		}
		seen[nw] = true
		total++

		found := false
		for _, c := range normalized {
			if skillNamesMatch(c, nw) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, w)
		} else {
			missing = append(missing, w)
		}
	}

	if total == 0 {
		return SkillMatch{Score: 100, Matched: matched, Missing: missing}
	}

	return SkillMatch{
		Score:   float64(len(matched)) / float64(total) * 100,
		Matched: matched,
		Missing: missing,
	}
}
