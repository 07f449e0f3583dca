package bot

import (
	"fmt"
	"strconv"
	"strings"

	"cricbot/internal/model"
)

// ParseDailyTime validates an HHMM argument and returns it normalized.
func ParseDailyTime(args string) (string, error) {
	s := strings.TrimSpace(args)
	if len(s) != 4 {
		return "", fmt.Errorf("usage: /time <HHMM>, e.g. /time 0930 (24h UTC)")
	}
	hh, err1 := strconv.Atoi(s[:2])
	mm, err2 := strconv.Atoi(s[2:])
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return "", fmt.Errorf("invalid time %q, use HHMM in 24h UTC", s)
	}
	return s, nil
}

// ParseCategories parses a comma-separated category list. "all" selects
// every known category.
func ParseCategories(args string) ([]model.Category, error) {
	if strings.EqualFold(strings.TrimSpace(args), "all") {
		return append([]model.Category{}, model.AllCategories...), nil
	}

	var out []model.Category
	for _, part := range strings.Split(args, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, ok := model.ParseCategory(part)
		if !ok {
			return nil, fmt.Errorf("unknown category %q, use: international, domestic, first-class, franchise", part)
		}
		if !containsCategory(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("usage: /categories <list>|all")
	}
	return out, nil
}

// ParseGenders parses a gender selection. "both" and "all" select both.
func ParseGenders(args string) ([]model.Gender, error) {
	s := strings.TrimSpace(args)
	if strings.EqualFold(s, "both") || strings.EqualFold(s, "all") {
		return append([]model.Gender{}, model.AllGenders...), nil
	}

	var out []model.Gender
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		g, ok := model.ParseGender(part)
		if !ok {
			return nil, fmt.Errorf("unknown gender %q, use: men, women, both", part)
		}
		if !containsGender(out, g) {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("usage: /genders men|women|both")
	}
	return out, nil
}

// ParseTeams parses a comma-separated team list. "clear" and "none"
// empty the filter.
func ParseTeams(args string) []string {
	s := strings.TrimSpace(args)
	if strings.EqualFold(s, "clear") || strings.EqualFold(s, "none") {
		return []string{}
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseMatchID extracts a match id from a command argument string.
func ParseMatchID(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", fmt.Errorf("match id is required")
	}
	return fields[0], nil
}

// ParseChannelArg extracts a numeric channel id.
func ParseChannelArg(args string) (int64, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, fmt.Errorf("channel id is required")
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid channel id %q", fields[0])
	}
	return id, nil
}

// ParsePingArgs parses /ping arguments: on|off followed by optional
// mention handles. Handles are normalized to a leading @.
func ParsePingArgs(args string) (bool, []string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return false, nil, fmt.Errorf("usage: /ping on [@name ...] | /ping off")
	}

	var enabled bool
	switch strings.ToLower(fields[0]) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return false, nil, fmt.Errorf("usage: /ping on [@name ...] | /ping off")
	}

	var roles []string
	for _, f := range fields[1:] {
		if !strings.HasPrefix(f, "@") {
			f = "@" + f
		}
		roles = append(roles, f)
	}
	return enabled, roles, nil
}

func containsCategory(list []model.Category, c model.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

func containsGender(list []model.Gender, g model.Gender) bool {
	for _, v := range list {
		if v == g {
			return true
		}
	}
	return false
}
