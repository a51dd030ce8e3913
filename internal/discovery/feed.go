package discovery

import (
	"math"
	"sort"
	"strings"

	"github.com/peakseason/harvest-engine/internal/domain"
)

// buildFeed applies caller location, filters, bucketing, and sorting to the
// cached prediction set. Items are copied by value; the input slice is never
// mutated.
func buildFeed(items []Item, loc *Location, filters Filters) Feed {
	feed := Feed{CategoryCounts: make(map[string]int)}

	statusSet := lowerSet(filters.Statuses)
	categorySet := lowerSet(filters.Categories)

	for _, item := range items {
		if loc != nil {
			d := math.Round(domain.DistanceMiles(loc.Lat, loc.Lon, item.regionLat, item.regionLon)*10) / 10
			if filters.MaxDistanceMiles > 0 && d > filters.MaxDistanceMiles {
				continue
			}
			item.DistanceMiles = &d
		}
		if len(statusSet) > 0 && !statusSet[strings.ToLower(string(item.Status))] {
			continue
		}
		if len(categorySet) > 0 && !categorySet[strings.ToLower(item.Category)] {
			continue
		}

		switch item.Status {
		case domain.StatusAtPeak:
			feed.AtPeak = append(feed.AtPeak, item)
		case domain.StatusInSeason:
			feed.InSeason = append(feed.InSeason, item)
		case domain.StatusApproaching:
			feed.Approaching = append(feed.Approaching, item)
		default:
			feed.OffSeason = append(feed.OffSeason, item)
		}

		feed.TotalResults++
		feed.CategoryCounts[item.Category]++
	}

	hasLoc := loc != nil
	sortByProximity(feed.AtPeak, hasLoc)
	sortByProximity(feed.InSeason, hasLoc)
	sortApproaching(feed.Approaching, hasLoc)
	sortByProximity(feed.OffSeason, hasLoc)

	return feed
}

// sortByProximity orders a bucket by ascending distance when the caller's
// location is known, alphabetically by display name otherwise.
func sortByProximity(bucket []Item, hasLoc bool) {
	sort.SliceStable(bucket, func(i, j int) bool {
		return lessItem(bucket[i], bucket[j], hasLoc)
	})
}

// sortApproaching orders the approaching bucket by ascending days-until
// first, then by proximity.
func sortApproaching(bucket []Item, hasLoc bool) {
	sort.SliceStable(bucket, func(i, j int) bool {
		if bucket[i].DaysUntilStart != bucket[j].DaysUntilStart {
			return bucket[i].DaysUntilStart < bucket[j].DaysUntilStart
		}
		return lessItem(bucket[i], bucket[j], hasLoc)
	})
}

func lessItem(a, b Item, hasLoc bool) bool {
	if hasLoc && a.DistanceMiles != nil && b.DistanceMiles != nil && *a.DistanceMiles != *b.DistanceMiles {
		return *a.DistanceMiles < *b.DistanceMiles
	}
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.OfferingID < b.OfferingID
}

func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[strings.ToLower(v)] = true
		}
	}
	return set
}
