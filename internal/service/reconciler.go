package service

// StaleRefs computes which old asset references are no longer present in
// the new set. References compare by exact string equality; duplicates in
// oldRefs are reported once, in first-seen order.
func StaleRefs(oldRefs, newRefs []string) []string {
	keep := make(map[string]struct{}, len(newRefs))
	for _, ref := range newRefs {
		keep[ref] = struct{}{}
	}

	var stale []string
	seen := make(map[string]struct{}, len(oldRefs))
	for _, ref := range oldRefs {
		if _, ok := keep[ref]; ok {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		stale = append(stale, ref)
	}
	return stale
}
