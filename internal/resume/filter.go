package resume

import "sort"

// Filter returns the members of universe not present in completed, computed
// as an ordered set difference over sorted copies of both inputs. completed
// may contain duplicates and entries outside the universe; both are ignored.
// The result is sorted and deduplicated. Neither input is mutated.
func Filter(universe, completed []string) []string {
	if len(universe) == 0 {
		return nil
	}
	if len(completed) == 0 {
		out := make([]string, len(universe))
		copy(out, universe)
		sort.Strings(out)
		return dedupSorted(out)
	}

	u := make([]string, len(universe))
	copy(u, universe)
	sort.Strings(u)
	u = dedupSorted(u)

	c := make([]string, len(completed))
	copy(c, completed)
	sort.Strings(c)

	remaining := make([]string, 0, len(u))
	j := 0
	for _, item := range u {
		for j < len(c) && c[j] < item {
			j++
		}
		if j < len(c) && c[j] == item {
			continue
		}
		remaining = append(remaining, item)
	}
	return remaining
}

func dedupSorted(items []string) []string {
	if len(items) < 2 {
		return items
	}
	out := items[:1]
	for _, item := range items[1:] {
		if item != out[len(out)-1] {
			out = append(out, item)
		}
	}
	return out
}
