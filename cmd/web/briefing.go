package main

import (
	"fmt"
	"strings"

	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
)

type coachLines struct {
	greeting   string
	workoutDay string
	restDay    string
	allDone    string
	outside    string
}

//nolint:gochecknoglobals // read-only lookup table.
var coachVoices = map[program.CoachTone]coachLines{
	program.CoachStrict: {
		greeting:   "Day %d of week %d. No excuses.",
		workoutDay: "Training day. **%s** is on the board. Warm up and get it done.",
		restDay:    "Rest day, not a day off. Today's recovery quest: **%s**.",
		allDone:    "Every mission done. That is the standard. Repeat it tomorrow.",
		outside:    "The program is over. Set up the next block.",
	},
	program.CoachFriendly: {
		greeting:   "Good to see you! It's day %d of week %d.",
		workoutDay: "Today we train: **%s**. Go at your own pace, every rep counts.",
		restDay:    "Time to recharge. A gentle quest for today: **%s**.",
		allDone:    "You cleared every mission today. Be proud of that!",
		outside:    "You finished the program! Whenever you're ready, start a new one.",
	},
	program.CoachCompetitive: {
		greeting:   "Week %[2]d, day %[1]d. The leaderboard is waiting.",
		workoutDay: "Workout unlocked: **%s**. Beat last week's numbers.",
		restDay:    "Rest day bonus round: **%s**. Stack the XP.",
		allDone:    "Perfect day. Full XP banked. Can you do it again tomorrow?",
		outside:    "Program complete. Time to set a new high score.",
	},
}

// coachBriefing returns the markdown briefing the dashboard opens with. The wording follows the coach tone
// picked during onboarding.
func coachBriefing(d mission.Dashboard) string {
	voice, ok := coachVoices[d.Profile.CoachTone]
	if !ok {
		voice = coachVoices[program.CoachFriendly]
	}
	if !d.InProgram {
		return voice.outside
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, voice.greeting, d.Day, d.Week)
	sb.WriteString("\n\n")
	if d.Workout != nil {
		fmt.Fprintf(&sb, voice.workoutDay, d.Workout.Name)
	} else {
		fmt.Fprintf(&sb, voice.restDay, d.RestQuest)
	}
	sb.WriteString("\n\n")

	var open []mission.MissionStatus
	for _, m := range d.Missions {
		if !m.Completed {
			open = append(open, m)
		}
	}
	if len(open) == 0 {
		sb.WriteString(voice.allDone)
		return sb.String()
	}
	for _, m := range open {
		fmt.Fprintf(&sb, "- %s: %d XP\n", missionLabel(m.Mission), m.XP)
	}
	return sb.String()
}
