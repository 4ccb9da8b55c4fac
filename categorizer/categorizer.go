// Package categorizer suggests an incident category from free-text
// descriptions by counting domain keyword occurrences.
package categorizer

import (
	"strings"

	"sirrs-be/models"
)

type categoryKeywords struct {
	category models.Category
	keywords []string
}

// Declaration order decides ties: the first category to reach the maximum
// score wins, so this table must not be reordered.
var keywordTable = []categoryKeywords{
	{models.CategoryRoad, []string{
		"pothole", "road", "street", "highway", "traffic", "pavement",
		"crack", "asphalt", "intersection", "signal", "sign", "lane",
	}},
	{models.CategoryWater, []string{
		"water", "leak", "pipe", "drain", "sewage", "flood", "plumbing",
		"tap", "supply", "drainage", "overflow", "burst",
	}},
	{models.CategoryElectricity, []string{
		"electric", "power", "light", "wire", "cable", "pole", "outage",
		"blackout", "transformer", "streetlight", "lamp", "voltage",
	}},
	{models.CategoryWaste, []string{
		"garbage", "trash", "waste", "litter", "dump", "rubbish", "bin",
		"landfill", "disposal", "sanitation", "smell", "dirty",
	}},
	{models.CategorySafety, []string{
		"danger", "unsafe", "hazard", "risk", "broken", "damaged", "accident",
		"injury", "security", "crime", "violence", "threat", "emergency",
	}},
}

// Categorize returns the best-guess category for the given text, or
// CategoryOther when nothing in the keyword table matches. It never fails:
// empty or degenerate input simply yields CategoryOther.
func Categorize(text string) models.Category {
	if strings.TrimSpace(text) == "" {
		return models.CategoryOther
	}

	lower := strings.ToLower(text)

	maxScore := 0
	suggested := models.CategoryOther

	for _, ck := range keywordTable {
		score := 0
		for _, keyword := range ck.keywords {
			score += countOccurrences(lower, keyword)
		}
		// Strict comparison: an equal later score never displaces an
		// earlier winner.
		if score > maxScore {
			maxScore = score
			suggested = ck.category
		}
	}

	if maxScore < 1 {
		return models.CategoryOther
	}
	return suggested
}

// countOccurrences counts substring matches, advancing one byte per hit so
// overlapping occurrences all count. Matching is deliberately not
// word-bounded: "traffic" inside "trafficking" still scores.
func countOccurrences(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	count := 0
	for i := 0; ; {
		j := strings.Index(text[i:], keyword)
		if j < 0 {
			return count
		}
		count++
		i += j + 1
	}
}
