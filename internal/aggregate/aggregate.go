// Package aggregate computes derived resistance statistics from an
// already-fetched observation snapshot. Every function here is a pure,
// total function of its inputs: no storage access, no shared state, no
// error paths for well-typed input. Both storage backends feed the same
// code, so the grouping and rate policy is written exactly once.
package aggregate

import (
	"fmt"
	"sort"

	"amr-data/internal/domain"
)

// Summary rolls the filtered observation set up into the dashboard
// headline numbers. The rate is 0 (not NaN) when no samples are present,
// and only distinct non-null facility ids count as participating.
func Summary(observations []domain.Observation) domain.ResistanceSummary {
	var totalSamples, resistantIsolates int
	facilities := make(map[int]struct{})

	for _, o := range observations {
		totalSamples += o.TotalSamples
		resistantIsolates += o.ResistantSamples
		if o.FacilityID != nil {
			facilities[*o.FacilityID] = struct{}{}
		}
	}

	return domain.ResistanceSummary{
		TotalSamples:            totalSamples,
		ResistantIsolates:       resistantIsolates,
		ResistanceRate:          rate(resistantIsolates, totalSamples),
		ParticipatingFacilities: len(facilities),
	}
}

// Trends groups observations by (calendar month, bacterium) and computes
// the resistance rate per group. The month key comes from the
// observation's own sample date. Rows referencing a bacterium missing
// from the catalog get a synthesized placeholder name instead of being
// dropped. Output is sorted by month ascending, then bacteria name
// ascending within a month.
func Trends(observations []domain.Observation, bacteria []domain.Bacteria) []domain.ResistanceTrend {
	names := make(map[int]string, len(bacteria))
	for _, b := range bacteria {
		names[b.ID] = b.Name
	}

	type counts struct {
		total     int
		resistant int
	}
	groups := make(map[string]map[int]*counts)

	for _, o := range observations {
		month := o.SampleDate.Format("2006-01")
		byBacteria := groups[month]
		if byBacteria == nil {
			byBacteria = make(map[int]*counts)
			groups[month] = byBacteria
		}
		c := byBacteria[o.BacteriaID]
		if c == nil {
			c = &counts{}
			byBacteria[o.BacteriaID] = c
		}
		c.total += o.TotalSamples
		c.resistant += o.ResistantSamples
	}

	trends := make([]domain.ResistanceTrend, 0, len(groups))
	for month, byBacteria := range groups {
		for bacteriaID, c := range byBacteria {
			name, ok := names[bacteriaID]
			if !ok {
				name = unknownName(bacteriaID)
			}
			trends = append(trends, domain.ResistanceTrend{
				Month:          month,
				BacteriaID:     bacteriaID,
				BacteriaName:   name,
				ResistanceRate: rate(c.resistant, c.total),
			})
		}
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Month != trends[j].Month {
			return trends[i].Month < trends[j].Month
		}
		return trends[i].BacteriaName < trends[j].BacteriaName
	})

	return trends
}

// Effectiveness groups observations by antibiotic, computes
// 100 - resistance rate per drug, and tracks the distinct regions that
// contributed data. An antibiotic whose total sample count is zero
// reports 0% effective, never 100%. Output descends by effectiveness;
// equal-effectiveness entries keep their first-appearance order.
func Effectiveness(observations []domain.Observation, antibiotics []domain.Antibiotic, regions []domain.Region) []domain.AntibioticEffectiveness {
	antibioticNames := make(map[int]string, len(antibiotics))
	for _, a := range antibiotics {
		antibioticNames[a.ID] = a.Name
	}
	regionNames := make(map[int]string, len(regions))
	for _, r := range regions {
		regionNames[r.ID] = r.Name
	}

	type stats struct {
		total     int
		resistant int
		regionIDs []int
		seen      map[int]struct{}
	}
	byAntibiotic := make(map[int]*stats)
	var order []int // antibiotic ids in first-appearance order

	for _, o := range observations {
		s := byAntibiotic[o.AntibioticID]
		if s == nil {
			s = &stats{seen: make(map[int]struct{})}
			byAntibiotic[o.AntibioticID] = s
			order = append(order, o.AntibioticID)
		}
		s.total += o.TotalSamples
		s.resistant += o.ResistantSamples
		if _, ok := s.seen[o.RegionID]; !ok {
			s.seen[o.RegionID] = struct{}{}
			s.regionIDs = append(s.regionIDs, o.RegionID)
		}
	}

	result := make([]domain.AntibioticEffectiveness, 0, len(order))
	for _, id := range order {
		s := byAntibiotic[id]

		name, ok := antibioticNames[id]
		if !ok {
			name = unknownName(id)
		}

		regionList := make([]string, 0, len(s.regionIDs))
		for _, rid := range s.regionIDs {
			if rn, ok := regionNames[rid]; ok {
				regionList = append(regionList, rn)
			} else {
				regionList = append(regionList, fmt.Sprintf("Unknown Region (ID: %d)", rid))
			}
		}

		var effectiveness float64
		if s.total > 0 {
			effectiveness = 100 - rate(s.resistant, s.total)
		}

		result = append(result, domain.AntibioticEffectiveness{
			ID:            id,
			Name:          name,
			Effectiveness: effectiveness,
			Regions:       regionList,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Effectiveness > result[j].Effectiveness
	})

	return result
}

func rate(resistant, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(resistant) / float64(total) * 100
}

func unknownName(id int) string {
	return fmt.Sprintf("Unknown (ID: %d)", id)
}
