package plan

import (
	"fmt"
	"math"
	"strings"
)

// Policy selects how stage day spans are derived from the effort budget.
type Policy string

const (
	// PolicyIndependent rounds every stage on its own: hours are floored
	// from the budget share, days are ceiled from the hours. The sum of
	// the spans may drift from the days available.
	PolicyIndependent Policy = "independent"

	// PolicyCarry splits the available days cumulatively by weight so the
	// last stage ends on the deadline whenever every stage can still get
	// its one-day minimum.
	PolicyCarry Policy = "carry"
)

// Policies lists the accepted policy names.
var Policies = []Policy{PolicyIndependent, PolicyCarry}

// ParsePolicy converts a policy name into a Policy. An empty name selects
// PolicyIndependent.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyIndependent:
		return PolicyIndependent, nil
	case PolicyCarry:
		return PolicyCarry, nil
	default:
		return "", fmt.Errorf("unknown proration policy %q (want independent or carry)", s)
	}
}

// stageDays returns one span per catalog entry, each at least 1.
func (p Policy) stageDays(c Catalog, totalDays, totalHours int, hoursPerWeek float64) []int {
	if p == PolicyCarry {
		return carrySpans(c, totalDays)
	}
	spans := make([]int, len(c))
	for i, st := range c {
		spans[i] = independentSpan(totalHours, st.PercentageOfTotal, hoursPerWeek)
	}
	return spans
}

// StageHours is the floored share of the budget for a stage weight.
func StageHours(totalHours, percentage int) int {
	if totalHours <= 0 || percentage <= 0 {
		return 0
	}
	return totalHours * percentage / 100
}

// independentSpan is max(1, ceil(stageHours / (hoursPerWeek/7))). The
// division is rearranged to stageHours*7/hoursPerWeek so whole-day
// results are not pushed up by float error.
func independentSpan(totalHours, percentage int, hoursPerWeek float64) int {
	if hoursPerWeek <= 0 {
		return 1
	}
	hours := StageHours(totalHours, percentage)
	days := int(math.Ceil(float64(hours) * 7 / hoursPerWeek))
	if days < 1 {
		return 1
	}
	return days
}

// carrySpans distributes totalDays+1 occupied days (each stage occupies
// its span plus the gap day before the next stage) by cumulative weight.
func carrySpans(c Catalog, totalDays int) []int {
	spans := make([]int, len(c))
	if len(c) == 0 {
		return spans
	}

	weights := make([]int, len(c))
	totalWeight := 0
	for i, st := range c {
		w := st.PercentageOfTotal
		if w < 0 {
			w = 0
		}
		weights[i] = w
		totalWeight += w
	}
	if totalWeight == 0 {
		for i := range weights {
			weights[i] = 1
		}
		totalWeight = len(weights)
	}

	occupied := totalDays + 1
	occs := make([]int, len(weights))
	cumWeight, used := 0, 0
	for i, w := range weights {
		cumWeight += w
		var occ int
		if i == len(weights)-1 {
			occ = occupied - used
		} else {
			target := (occupied*cumWeight*2 + totalWeight) / (2 * totalWeight)
			occ = target - used
		}
		if occ < 2 {
			occ = 2
		}
		used += occ
		occs[i] = occ
	}

	// The 2-day floor can push the total past the deadline; take the
	// excess back from the widest stages.
	for over := used - occupied; over > 0; over-- {
		widest := -1
		for i, occ := range occs {
			if occ > 2 && (widest < 0 || occ > occs[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		occs[widest]--
	}

	for i, occ := range occs {
		spans[i] = occ - 1
	}
	return spans
}
