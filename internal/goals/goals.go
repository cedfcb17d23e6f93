// Package goals holds the fixed encouragement list shown for each weekday.
package goals

import "time"

var byDay = map[time.Weekday][]string{
	time.Monday: {
		"Fresh start energy! Set your week's priorities 💪",
		"Break big tasks into smaller steps 📋",
		"Don't let Monday blues win - you've got this! ✨",
	},
	time.Tuesday: {
		"Build momentum from yesterday 🚀",
		"Tackle that challenging task you've been avoiding 💡",
		"Stay hydrated and energized ☕",
	},
	time.Wednesday: {
		"Midweek check-in - you're halfway there! 🎯",
		"Review progress and adjust if needed 📊",
		"Celebrate how far you've come this week 🌟",
	},
	time.Thursday: {
		"Almost Friday - keep the momentum going! 💫",
		"Finish strong, weekend is near 🎉",
		"Prep for tomorrow so you can relax ✅",
	},
	time.Friday: {
		"Finish the week on a high note! 🎊",
		"Wrap up loose ends before the weekend 📝",
		"Plan next week while it's fresh in mind 🗓️",
	},
	time.Saturday: {
		"Self-care Saturday - work at your pace 🌸",
		"Only urgent tasks today, rest is important 💝",
		"Balance productivity with relaxation 🧘‍♀️",
	},
	time.Sunday: {
		"Sunday prep for a smooth week ahead 📅",
		"Light planning, heavy relaxing 🌺",
		"Mental reset before the new week 🦋",
	},
}

// Day is the goal set for one weekday.
type Day struct {
	Weekday string
	Goals   []string
}

// ForDay returns a copy of the goals for day, falling back to Monday.
func ForDay(day time.Weekday) []string {
	goals, ok := byDay[day]
	if !ok {
		goals = byDay[time.Monday]
	}
	return append([]string(nil), goals...)
}

// Today returns the goals for the local weekday of now.
func Today(now time.Time) Day {
	return Day{Weekday: now.Weekday().String(), Goals: ForDay(now.Weekday())}
}
