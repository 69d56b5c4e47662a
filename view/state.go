package view

import (
	"time"

	"paperdoll_backend/model"
)

// PerPageOptions are the only page sizes the view offers.
var PerPageOptions = []int{3, 5, 10}

func ValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if opt == n {
			return true
		}
	}
	return false
}

// State owns the live view parameters and their transition rules: sort
// direction toggling, the role reset when a guild selection hides it, page
// clamping and the page reset on a page-size change. Rendering always goes
// through Apply with the full source list.
type State struct {
	Query   string
	Filter  FilterParams
	SortKey SortKey
	SortDir Direction
	Page    int
	PerPage int

	totalPages int
}

func NewState() *State {
	return &State{
		SortKey: SortOverall,
		SortDir: Descending,
		Page:    1,
		PerPage: 5,
	}
}

type Result struct {
	Characters []model.Character
	TotalPages int
	Page       int
}

// Apply re-runs the full composition against the unfiltered source. Upstream
// parameter changes may shrink the list under the current page, in which case
// the page is pulled back into range.
func (s *State) Apply(source []model.Character) Result {
	list := Search(source, s.Query)
	list = Filter(list, s.Filter)
	list = Sort(list, s.SortKey, s.SortDir)

	s.totalPages = TotalPages(len(list), s.PerPage)
	if s.Page > s.totalPages && s.totalPages > 0 {
		s.Page = s.totalPages
	}
	if s.Page < 1 {
		s.Page = 1
	}

	return Result{
		Characters: Paginate(list, s.PerPage, s.Page),
		TotalPages: s.totalPages,
		Page:       s.Page,
	}
}

func (s *State) SetQuery(query string) {
	s.Query = query
}

// SetSortKey selects a new key starting descending; selecting the active key
// again toggles the direction.
func (s *State) SetSortKey(key SortKey) {
	if s.SortKey == key {
		if s.SortDir == Descending {
			s.SortDir = Ascending
		} else {
			s.SortDir = Descending
		}
		return
	}

	s.SortKey = key
	s.SortDir = Descending
}

// SetGuild switches the guild filter and resets the role selection to "All"
// when the current role no longer occurs within the new guild.
func (s *State) SetGuild(source []model.Character, guild string) {
	s.Filter.Guild = guild

	if wildcard(s.Filter.Role) {
		return
	}

	for _, role := range RolesForGuild(source, guild) {
		if role == s.Filter.Role {
			return
		}
	}
	s.Filter.Role = "All"
}

func (s *State) SetRole(role string) {
	s.Filter.Role = role
}

func (s *State) SetOverallRange(min, max *int) {
	s.Filter.MinOverall = min
	s.Filter.MaxOverall = max
}

func (s *State) SetDateRange(from, to *time.Time) {
	s.Filter.From = from
	s.Filter.To = to
}

// SetPage navigates to a page; requests outside [1, totalPages] are no-ops.
func (s *State) SetPage(page int) {
	if page < 1 || page > s.totalPages {
		return
	}
	s.Page = page
}

// SetPerPage changes the page size and restarts at page 1. Values outside
// PerPageOptions are ignored.
func (s *State) SetPerPage(perPage int) {
	if !ValidPerPage(perPage) {
		return
	}
	s.PerPage = perPage
	s.Page = 1
}
