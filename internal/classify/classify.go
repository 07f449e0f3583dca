// Package classify derives category, gender and state labels for
// upstream match records using keyword heuristics.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"cricbot/internal/cricket"
	"cricbot/internal/model"
)

var womenShortName = regexp.MustCompile(`^[A-Za-z]{2,4}-?[Ww]$`)

// normalize lowercases s and collapses runs of whitespace so that the
// substring lists match regardless of upstream formatting.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsAny(text string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}

// seriesText returns the normalized series name, falling back to the
// match name. Upstream frequently omits the series field on current
// match records, and the match name usually carries the same context.
func seriesText(m *cricket.Match) string {
	if s := normalize(m.Series); s != "" {
		return s
	}
	return normalize(m.Name)
}

// fullText is every textual field a classification keyword could
// appear in, joined for the t20/t20i disambiguation.
func fullText(m *cricket.Match) string {
	return normalize(m.Name + " " + m.Series + " " + m.MatchType)
}

// Category buckets a match into one of the four categories. The rules
// run in a fixed order and the first hit wins; changing the order
// changes the answer for matches that hit several lists.
func Category(m *cricket.Match) model.Category {
	series := seriesText(m)
	matchType := normalize(m.MatchType)
	participants := normalize(m.ParticipantText())

	multiDay := containsAny(series, firstClassSeries) || containsAny(matchType, multiDayTypes)

	// Indian domestic circuit first, so that a Ranji or Mushtaq Ali
	// fixture never leaks into the franchise or international buckets.
	if RegionalDomestic(m) {
		if multiDay {
			return model.CategoryFirstClass
		}
		return model.CategoryDomestic
	}

	if containsAny(series, franchiseLeagues) {
		return model.CategoryFranchise
	}

	if multiDay {
		return model.CategoryFirstClass
	}

	// A bare "t20" type means a domestic Twenty20 unless the record
	// carries the T20I abbreviation anywhere in its text.
	text := fullText(m)
	if containsAny(series, domesticLimitedOvers) ||
		(strings.Contains(text, "t20") && !strings.Contains(text, "t20i")) {
		return model.CategoryDomestic
	}

	if containsAny(series, internationalMarkers) || containsAny(matchType, internationalMarkers) {
		return model.CategoryInternational
	}

	return model.CategoryDomestic
}

// RegionalDomestic reports whether the match belongs to the Indian
// domestic circuit, by participant region or by competition name.
func RegionalDomestic(m *cricket.Match) bool {
	if containsAny(normalize(m.ParticipantText()), indianRegions) {
		return true
	}
	return containsAny(seriesText(m), domesticSeries)
}

// Gender labels a match men's or women's. Women's cricket is detected
// through the series name, a standalone "women" token in the match or
// team names, or the trailing-W short name convention (INDW, AUS-W);
// men's is the default because upstream never marks it explicitly.
func Gender(m *cricket.Match) model.Gender {
	if containsAny(normalize(m.Series), womenMarkers) {
		return model.GenderWomen
	}
	if hasWomenToken(m.Name) {
		return model.GenderWomen
	}
	for _, name := range m.ParticipantNames() {
		if hasWomenToken(name) {
			return model.GenderWomen
		}
	}
	for _, team := range m.TeamInfo {
		if womenShortName.MatchString(strings.TrimSpace(team.ShortName)) {
			return model.GenderWomen
		}
	}
	return model.GenderMen
}

// hasWomenToken looks for "women" as a whole word, so that a club
// whose name merely contains the letters does not flip the label.
func hasWomenToken(s string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, token := range tokens {
		if token == "women" {
			return true
		}
	}
	return false
}

// IsLive reports whether play is considered in progress: either the
// status text matches the live vocabulary, or upstream has flagged the
// match started and the status does not read as finished.
func IsLive(m *cricket.Match) bool {
	status := normalize(m.Status)
	if containsAny(status, liveMarkers) {
		return true
	}
	return m.MatchStarted && !containsAny(status, finishedMarkers)
}

// IsFinished reports whether the status text says no further play is
// coming.
func IsFinished(m *cricket.Match) bool {
	return containsAny(normalize(m.Status), finishedMarkers)
}

// ScheduledOnOrLive reports whether the match starts on the given
// YYYY-MM-DD day or is live right now. Day posts use it to merge
// today's fixtures with carried-over multi-day games.
func ScheduledOnOrLive(m *cricket.Match, day string) bool {
	if d, ok := m.StartDate(); ok && d == day {
		return true
	}
	return IsLive(m)
}
