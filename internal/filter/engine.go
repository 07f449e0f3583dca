// Package filter implements the tenant preference matching engine.
package filter

import (
	"strings"

	"cricbot/internal/classify"
	"cricbot/internal/cricket"
	"cricbot/internal/model"
)

// Relevant checks whether a match passes the tenant's preferences.
// Category and gender must both be selected; an empty selection on
// either axis passes everything. Team filters, when present, further
// require at least one filter to appear in the participant names.
func Relevant(m *cricket.Match, tenant *model.Tenant) bool {
	if !tenant.HasCategory(classify.Category(m)) {
		return false
	}
	if !tenant.HasGender(classify.Gender(m)) {
		return false
	}
	return matchesTeams(m, tenant.Teams)
}

// RelevantGenderTeam applies only the gender and team axes. The summary
// branches use it when they impose their own category rule instead of
// the tenant's selection.
func RelevantGenderTeam(m *cricket.Match, tenant *model.Tenant) bool {
	if !tenant.HasGender(classify.Gender(m)) {
		return false
	}
	return matchesTeams(m, tenant.Teams)
}

// matchesTeams applies the team filters. Matching is a case-insensitive
// substring test over all participant names and short names, so "india"
// also hits "India A" and "India Women". That over-match is intended:
// people following a side want its offshoots too.
func matchesTeams(m *cricket.Match, teams []string) bool {
	if len(teams) == 0 {
		return true
	}
	participants := m.ParticipantText()
	for _, team := range teams {
		team = strings.ToLower(strings.TrimSpace(team))
		if team != "" && strings.Contains(participants, team) {
			return true
		}
	}
	return false
}
