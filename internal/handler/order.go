package handler

import (
	"sort"
	"strings"

	"authoring-kit/internal/diagnostic"
)

// orderRegistrations sorts regs so that every Before/After relation holds.
//
// The result is deterministic: when several registrations are ready, the one
// registered first goes first. Relations naming unknown handlers are
// ignored. When a cycle leaves nothing ready, the earliest registered of the
// remaining ones is taken and the cycle is reported.
func orderRegistrations(regs []Registration) ([]Registration, []error) {
	n := len(regs)
	if n == 0 {
		return nil, nil
	}

	var issues []error

	index := make(map[string]int, n)
	for i, reg := range regs {
		if _, dup := index[reg.Name]; dup {
			issues = append(issues, diagnostic.NewLayoutWarning(diagnostic.CodeOrderingCycle, "", reg.Name,
				"handler %q registered twice; relations use the first", reg.Name))

			continue
		}

		index[reg.Name] = i
	}

	edges := make([]map[int]bool, n)
	for i := range edges {
		edges[i] = make(map[int]bool)
	}

	link := func(from, to int) {
		if from != to {
			edges[from][to] = true
		}
	}

	resolve := func(owner, name string) (int, bool) {
		j, ok := index[name]
		if !ok {
			issues = append(issues, diagnostic.NewLayoutWarning(diagnostic.CodeOrderingCycle, "", owner,
				"handler %q refers to unknown handler %q", owner, name))
		}

		return j, ok
	}

	for i, reg := range regs {
		for _, name := range reg.After {
			if j, ok := resolve(reg.Name, name); ok {
				link(j, i)
			}
		}

		for _, name := range reg.Before {
			if j, ok := resolve(reg.Name, name); ok {
				link(i, j)
			}
		}
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for from := range edges {
		for to := range edges[from] {
			indeg[to]++
			out[from] = append(out[from], to)
		}

		sort.Ints(out[from])
	}

	done := make([]bool, n)
	order := make([]int, 0, n)

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	release := func(i int) {
		done[i] = true
		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 && !done[j] {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	for len(order) < n {
		if len(ready) == 0 {
			var stuck []string

			pick := -1

			for i := range n {
				if done[i] {
					continue
				}

				if pick < 0 {
					pick = i
				}

				stuck = append(stuck, regs[i].Name)
			}

			issues = append(issues, diagnostic.NewLayoutWarning(diagnostic.CodeOrderingCycle, "", regs[pick].Name,
				"ordering cycle among %s; falling back to registration order", strings.Join(stuck, ", ")))

			release(pick)

			continue
		}

		i := ready[0]
		ready = ready[1:]

		release(i)
	}

	sorted := make([]Registration, n)
	for k, i := range order {
		sorted[k] = regs[i]
	}

	return sorted, issues
}
