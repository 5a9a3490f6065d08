package analysis

// Badge levels. "locked" marks a badge not yet earned.
const (
	LevelGold   = "gold"
	LevelSilver = "silver"
	LevelLocked = "locked"
)

// Badge names. These four, with the levels above, are a persisted vocabulary
// and must not be renamed.
const (
	BadgeConsistencyStar = "Consistency Star"
	BadgeFastLearner     = "Fast Learner"
	BadgePerfectForm     = "Perfect Form"
	BadgeStrengthMaster  = "Strength Master"
)

// Badge is one achievement slot in a session summary. All four badges always
// appear, earned or locked.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
	Level       string `json:"level"`
}

// AssignBadges evaluates the four fixed badges from session scalars. Each
// badge is independent and every threshold is inclusive.
func AssignBadges(avgScore float64, totalReps int, consistency, formQuality float64) []Badge {
	badges := make([]Badge, 0, 4)

	badges = append(badges, gradeBadge(BadgeConsistencyStar,
		"Maintained consistent form throughout the session",
		"Maintain consistent form to earn this badge",
		consistency >= 80, consistency >= 90))

	badges = append(badges, gradeBadge(BadgeFastLearner,
		"Achieved high performance scores",
		"Improve your scores to earn this badge",
		avgScore >= 70, avgScore >= 85))

	badges = append(badges, gradeBadge(BadgePerfectForm,
		"Demonstrated excellent form and technique",
		"Focus on form to earn this badge",
		formQuality >= 75, formQuality >= 90))

	badges = append(badges, gradeBadge(BadgeStrengthMaster,
		"Completed the session with a strong rep count",
		"Complete more reps to earn this badge",
		totalReps >= 10, totalReps >= 20))

	return badges
}

func gradeBadge(name, earnedDesc, lockedDesc string, earned, gold bool) Badge {
	if !earned {
		return Badge{Name: name, Description: lockedDesc, Earned: false, Level: LevelLocked}
	}
	level := LevelSilver
	if gold {
		level = LevelGold
	}
	return Badge{Name: name, Description: earnedDesc, Earned: true, Level: level}
}
