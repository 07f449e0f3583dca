// Package model defines the domain types used across the application.
package model

import "time"

// Category classifies the level a match is played at.
type Category string

// Known match categories.
const (
	CategoryInternational Category = "international"
	CategoryDomestic      Category = "domestic"
	CategoryFirstClass    Category = "first-class"
	CategoryFranchise     Category = "franchise"
)

// AllCategories lists every known category, in display order.
var AllCategories = []Category{
	CategoryInternational,
	CategoryDomestic,
	CategoryFirstClass,
	CategoryFranchise,
}

// Gender classifies a match as men's or women's cricket.
type Gender string

// Known genders.
const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// AllGenders lists every known gender.
var AllGenders = []Gender{GenderMen, GenderWomen}

// Mode selects how a tenant receives posts.
type Mode string

// Supported tenant modes.
const (
	// ModeCustom live-tracks explicitly followed matches; with nothing
	// followed it falls back to a once-daily summary.
	ModeCustom Mode = "custom"
	// ModeDaily sends one filtered summary per day.
	ModeDaily Mode = "daily"
)

// Tenant is the per-chat configuration record. One exists per Telegram
// chat that has interacted with the bot; the scheduler reads every
// non-paused tenant with a channel configured on each tick.
type Tenant struct {
	ChatID    int64
	ChannelID int64 // 0 means no destination configured yet
	Mode      Mode

	Categories []Category
	Genders    []Gender
	Teams      []string // case-insensitive substrings; empty = no restriction
	Followed   []string // match identities under live tracking

	DailyTime   string // "HHMM", 24h, UTC
	PingEnabled bool
	PingRoles   []string
	Paused      bool

	// Next-due timestamps, epoch seconds, one per scheduler branch.
	// Zero means unset. Monotonically non-decreasing except when a
	// DailyTime change clears the daily pair.
	NextDueCustom   int64
	NextDueFallback int64
	NextDueDaily    int64

	CreatedAt time.Time
}

// NewTenant returns a tenant with the default filters materialized.
// Filter sets are never left empty on an initialized tenant.
func NewTenant(chatID int64, dailyTime string) *Tenant {
	return &Tenant{
		ChatID:     chatID,
		Mode:       ModeCustom,
		Categories: []Category{CategoryInternational, CategoryDomestic},
		Genders:    []Gender{GenderMen, GenderWomen},
		Teams:      []string{},
		Followed:   []string{},
		DailyTime:  dailyTime,
		PingRoles:  []string{},
	}
}

// HasCategory reports whether c passes the tenant's category filter.
// An empty set is treated as "all known values": a corrupted record
// must widen, never silence, a tenant's posts.
func (t *Tenant) HasCategory(c Category) bool {
	if len(t.Categories) == 0 {
		return true
	}
	for _, v := range t.Categories {
		if v == c {
			return true
		}
	}
	return false
}

// HasGender reports whether g passes the tenant's gender filter, with
// the same fail-open treatment of an empty set as HasCategory.
func (t *Tenant) HasGender(g Gender) bool {
	if len(t.Genders) == 0 {
		return true
	}
	for _, v := range t.Genders {
		if v == g {
			return true
		}
	}
	return false
}

// Follows reports whether the match identity is under live tracking.
func (t *Tenant) Follows(matchID string) bool {
	for _, id := range t.Followed {
		if id == matchID {
			return true
		}
	}
	return false
}

// WithoutFollowed returns a copy of the followed list with matchID
// removed.
func (t *Tenant) WithoutFollowed(matchID string) []string {
	out := make([]string, 0, len(t.Followed))
	for _, id := range t.Followed {
		if id != matchID {
			out = append(out, id)
		}
	}
	return out
}

// ParseCategory maps user input to a Category, tolerating the common
// spellings of first-class.
func ParseCategory(s string) (Category, bool) {
	switch normalize(s) {
	case "international", "intl":
		return CategoryInternational, true
	case "domestic", "dom":
		return CategoryDomestic, true
	case "first-class", "firstclass", "fc":
		return CategoryFirstClass, true
	case "franchise", "league":
		return CategoryFranchise, true
	}
	return "", false
}

// ParseGender maps user input to a Gender.
func ParseGender(s string) (Gender, bool) {
	switch normalize(s) {
	case "men", "mens", "male":
		return GenderMen, true
	case "women", "womens", "female":
		return GenderWomen, true
	}
	return "", false
}

// ParseMode maps user input to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch normalize(s) {
	case "custom":
		return ModeCustom, true
	case "daily":
		return ModeDaily, true
	}
	return "", false
}

func normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '\t':
			// drop
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
