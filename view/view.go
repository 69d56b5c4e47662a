// Package view derives the displayed character list from the full source
// list. The four stages compose in a fixed order, Search then Filter then
// Sort then Paginate, and every stage returns a fresh slice without touching
// its input, so a parameter change can always re-run the whole chain from
// the unfiltered source.
package view

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"paperdoll_backend/model"
)

type SortKey string

const (
	SortName         SortKey = "name"
	SortRole         SortKey = "role"
	SortLevel        SortKey = "level"
	SortOverall      SortKey = "overall"
	SortStrength     SortKey = "strength"
	SortDexterity    SortKey = "dexterity"
	SortConstitution SortKey = "constitution"
	SortIntelligence SortKey = "intelligence"
	SortWisdom       SortKey = "wisdom"
	SortMentality    SortKey = "mentality"
	SortGuild        SortKey = "guild"
	SortDateSaved    SortKey = "date_saved"
)

func ValidSortKey(key string) bool {
	switch SortKey(key) {
	case SortName, SortRole, SortLevel, SortOverall, SortStrength, SortDexterity,
		SortConstitution, SortIntelligence, SortWisdom, SortMentality, SortGuild, SortDateSaved:
		return true
	}
	return false
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Search keeps characters whose name contains the query, case-insensitively.
// An empty query returns the input unchanged.
func Search(list []model.Character, query string) []model.Character {
	if query == "" {
		return list
	}

	needle := strings.ToLower(query)
	out := make([]model.Character, 0, len(list))
	for _, char := range list {
		if strings.Contains(strings.ToLower(char.Name), needle) {
			out = append(out, char)
		}
	}
	return out
}

// FilterParams with a nil bound leave that side of the range open. Guild and
// Role treat "All" (or empty) as a wildcard.
type FilterParams struct {
	Guild      string
	Role       string
	MinOverall *int
	MaxOverall *int
	From       *time.Time
	To         *time.Time
}

func Filter(list []model.Character, p FilterParams) []model.Character {
	out := make([]model.Character, 0, len(list))
	for _, char := range list {
		if matches(&char, &p) {
			out = append(out, char)
		}
	}
	return out
}

func matches(char *model.Character, p *FilterParams) bool {
	if !wildcard(p.Guild) && !strings.EqualFold(char.Guild, p.Guild) {
		return false
	}
	if !wildcard(p.Role) && !strings.EqualFold(char.Role, p.Role) {
		return false
	}
	if p.MinOverall != nil && char.Overall < *p.MinOverall {
		return false
	}
	if p.MaxOverall != nil && char.Overall > *p.MaxOverall {
		return false
	}

	// Date bounds are inclusive and compared at day granularity.
	if p.From != nil || p.To != nil {
		day := dayOf(char.DateSaved)
		if p.From != nil && day.Before(dayOf(*p.From)) {
			return false
		}
		if p.To != nil && day.After(dayOf(*p.To)) {
			return false
		}
	}

	return true
}

func wildcard(s string) bool {
	return s == "" || s == "All"
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Sort orders by a single key. String keys compare locale-aware, numeric and
// date keys by value. The sort is stable, so equal keys keep their pipeline
// input order.
func Sort(list []model.Character, key SortKey, dir Direction) []model.Character {
	out := make([]model.Character, len(list))
	copy(out, list)

	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compare(col, &out[i], &out[j], key)
		if dir == Ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	return out
}

func compare(col *collate.Collator, a, b *model.Character, key SortKey) int {
	switch key {
	case SortName:
		return col.CompareString(a.Name, b.Name)
	case SortRole:
		return col.CompareString(a.Role, b.Role)
	case SortGuild:
		return col.CompareString(a.Guild, b.Guild)
	case SortDateSaved:
		return a.DateSaved.Compare(b.DateSaved)
	case SortLevel:
		return compareInt(a.Level, b.Level)
	case SortStrength:
		return compareInt(a.Strength, b.Strength)
	case SortDexterity:
		return compareInt(a.Dexterity, b.Dexterity)
	case SortConstitution:
		return compareInt(a.Constitution, b.Constitution)
	case SortIntelligence:
		return compareInt(a.Intelligence, b.Intelligence)
	case SortWisdom:
		return compareInt(a.Wisdom, b.Wisdom)
	case SortMentality:
		return compareInt(a.Mentality, b.Mentality)
	default:
		return compareInt(a.Overall, b.Overall)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TotalPages is ceil(count / perPage).
func TotalPages(count, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// Paginate returns the slice for a 1-based page. Pages outside the valid
// range yield an empty slice.
func Paginate(list []model.Character, perPage, page int) []model.Character {
	if perPage <= 0 || page < 1 {
		return []model.Character{}
	}

	start := (page - 1) * perPage
	if start >= len(list) {
		return []model.Character{}
	}

	end := start + perPage
	if end > len(list) {
		end = len(list)
	}

	out := make([]model.Character, end-start)
	copy(out, list[start:end])
	return out
}

// Guilds lists the distinct guild values in first-seen order, prefixed with
// the "All" wildcard.
func Guilds(list []model.Character) []string {
	out := []string{"All"}
	seen := make(map[string]bool)
	for _, char := range list {
		if !seen[char.Guild] {
			seen[char.Guild] = true
			out = append(out, char.Guild)
		}
	}
	return out
}

// RolesForGuild lists the roles present within the selected guild, prefixed
// with "All". With the "All" guild every present role qualifies.
func RolesForGuild(list []model.Character, guild string) []string {
	out := []string{"All"}
	seen := make(map[string]bool)
	for _, char := range list {
		if !wildcard(guild) && !strings.EqualFold(char.Guild, guild) {
			continue
		}
		if !seen[char.Role] {
			seen[char.Role] = true
			out = append(out, char.Role)
		}
	}
	return out
}
