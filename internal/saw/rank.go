package saw

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// RankPolicy decides how exact ties in preference score are ranked.
type RankPolicy string

const (
	// RankSequential gives every alternative a distinct rank equal to its
	// position (1, 2, 3, ...). Tied scores keep their input order.
	RankSequential RankPolicy = "sequential"
	// RankCompetition gives tied scores the same rank and skips the
	// following positions (1, 1, 3).
	RankCompetition RankPolicy = "competition"
)

// ParseRankPolicy converts a configuration string into a RankPolicy,
// ignoring case and surrounding space. The empty string selects
// RankSequential.
func ParseRankPolicy(s string) (RankPolicy, error) {
	switch RankPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankSequential:
		return RankSequential, nil
	case RankCompetition:
		return RankCompetition, nil
	default:
		return "", fmt.Errorf("unknown rank policy %q", s)
	}
}

// rank orders rows by descending score with a stable sort and assigns
// 1-based ranks according to policy.
func rank(rows []scoredRow, policy RankPolicy) []ResultItem {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b scoredRow) int {
		return cmp.Compare(b.score, a.score)
	})

	results := make([]ResultItem, len(sorted))
	for i, r := range sorted {
		position := i + 1
		if policy == RankCompetition && i > 0 && r.score == sorted[i-1].score {
			position = results[i-1].Rank
		}
		results[i] = ResultItem{
			AlternativeID:    r.id,
			AlternativeName:  r.name,
			OriginalValues:   r.original,
			NormalizedValues: r.normalized,
			PreferenceScore:  r.score,
			Rank:             position,
		}
	}
	return results
}
