package models

// BadgeRule grants Badge once a user reaches MinXP or MinCompletions
// (whichever is set).
type BadgeRule struct {
	Badge          string
	MinXP          int
	MinCompletions int64
}

var BadgeRules = []BadgeRule{
	{Badge: "First Quest", MinCompletions: 1},
	{Badge: "Rising Star", MinXP: 250},
	{Badge: "Quest Veteran", MinCompletions: 10},
	{Badge: "Legend", MinXP: 1000},
}

// EarnedBadges returns the badges the user qualifies for but does not hold yet.
func EarnedBadges(user User, completions int64) []string {
	var earned []string
	for _, rule := range BadgeRules {
		if user.HasBadge(rule.Badge) {
			continue
		}
		if rule.MinXP > 0 && user.XP >= rule.MinXP {
			earned = append(earned, rule.Badge)
			continue
		}
		if rule.MinCompletions > 0 && completions >= rule.MinCompletions {
			earned = append(earned, rule.Badge)
		}
	}
	return earned
}
