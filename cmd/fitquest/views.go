package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
	"github.com/spf13/cobra"
)

func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + " kg"
}

func printDay(out io.Writer, v mission.DayView) {
	if v.InProgram {
		fmt.Fprintf(out, "%s  %s\n", bold(fmt.Sprintf("Week %d, day %d", v.Week, v.Day)), v.Date)
	} else {
		fmt.Fprintf(out, "%s  outside the program\n", bold(v.Date))
	}

	if v.Workout != nil {
		fmt.Fprintf(out, "Workout: %s (%d min) [%s]\n", v.Workout.Name, v.Workout.EstimatedMinutes, v.Workout.ID)
	} else if v.RestQuest != "" {
		fmt.Fprintf(out, "Recovery quest: %s\n", v.RestQuest)
	}

	fmt.Fprintln(out, "Missions:")
	for _, m := range v.Missions {
		line := fmt.Sprintf("  %-9s %4d XP", m.Mission, m.XP)
		if m.Completed {
			fmt.Fprintln(out, green("✓"+line))
		} else {
			fmt.Fprintln(out, yellow("·"+line))
		}
	}

	fmt.Fprintf(out, "Water: %d / %d ml\n", v.Log.WaterMl, v.WaterTargetMl)
	if v.Log.SleepHours != nil {
		fmt.Fprintf(out, "Sleep: %s h\n", strconv.FormatFloat(*v.Log.SleepHours, 'f', -1, 64))
	}
	if v.Log.Steps != nil {
		fmt.Fprintf(out, "Steps: %d / %d\n", *v.Log.Steps, v.Plan.Targets.Steps)
	}
	if v.Log.Weight != nil {
		fmt.Fprintf(out, "Weight: %s\n", formatKg(*v.Log.Weight))
	}

	if len(v.Meals) > 0 {
		fmt.Fprintln(out, "Meals:")
		for _, meal := range v.Meals {
			fmt.Fprintf(out, "  %-9s %s (%d kcal, %d g protein)\n", meal.Type, meal.Name, meal.Calories, meal.Protein)
		}
	}
}

func (c *cli) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's level, missions and meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				d, err := svc.Dashboard(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  %d XP (%d / %d to the next level)\n",
					bold(fmt.Sprintf("Level %d", d.Level)), d.XPTotal, d.LevelXP, d.LevelSpan)
				fmt.Fprintf(out, "Weight: %s (%+.1f kg since the start)\n", formatKg(d.CurrentWeight), d.WeightChange)
				printDay(out, d.DayView)
				return nil
			})
		},
	}
}

func (c *cli) dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "Show the plan and log of another day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				v, err := svc.Day(ctx, date)
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

func printExercises(out io.Writer, title string, exercises []program.Exercise) {
	fmt.Fprintln(out, bold(title))
	for _, e := range exercises {
		if e.TimeSec > 0 {
			fmt.Fprintf(out, "  %s: %d s\n", e.Name, e.TimeSec)
			continue
		}
		fmt.Fprintf(out, "  %s: %d × %s", e.Name, e.Sets, e.Reps)
		if e.Rest != "" {
			fmt.Fprintf(out, ", rest %s", e.Rest)
		}
		fmt.Fprintln(out)
		if len(e.Alternatives) > 0 {
			fmt.Fprintf(out, "    alternatives: %s\n", strings.Join(e.Alternatives, ", "))
		}
	}
}

func (c *cli) workoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workout [id]",
		Short: "Show a workout, by default the one of the mission date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				var id string
				if len(args) == 1 {
					id = args[0]
				} else {
					date, err := c.missionDate(svc)
					if err != nil {
						return err
					}
					v, err := svc.Day(ctx, date)
					if err != nil {
						return err
					}
					if v.Workout == nil {
						return errors.New("no workout planned for " + date)
					}
					id = v.Workout.ID
				}

				w, ok, err := svc.Workout(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("unknown workout %q", id)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (about %d min)\n", bold(w.Name), w.EstimatedMinutes)
				printExercises(out, "Warm-up", w.Warmup)
				printExercises(out, "Main", w.Exercises)
				printExercises(out, "Cool-down", w.Cooldown)
				return nil
			})
		},
	}
}

func (c *cli) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show level, streak, adherence and weight trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				p, err := svc.Progress(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Level: %d\n", p.Level)
				fmt.Fprintf(out, "XP: %d\n", p.XPTotal)
				fmt.Fprintf(out, "Streak: %d days\n", p.Streak)
				fmt.Fprintf(out, "Workouts: %d of %d program days (%d%%)\n",
					p.CompletedWorkouts, p.TotalDays, p.AdherencePercent)
				fmt.Fprintf(out, "Weight: %s -> %s (%+.1f kg)\n",
					formatKg(p.StartWeight), formatKg(p.CurrentWeight), p.WeightChange)
				fmt.Fprintln(out, "XP by mission:")
				for _, m := range program.Missions {
					fmt.Fprintf(out, "  %-9s %5d\n", m, p.XPByMission.Get(m))
				}
				if len(p.RecentWeighIns) > 0 {
					fmt.Fprintln(out, "Recent weigh-ins:")
					for _, w := range p.RecentWeighIns {
						fmt.Fprintf(out, "  %s  %s\n", w.Date, formatKg(w.Weight))
					}
				}
				return nil
			})
		},
	}
}

func (c *cli) shoppingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shopping",
		Short: "List the ingredients of the coming week's meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				categories, err := svc.ShoppingList(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(categories) == 0 {
					fmt.Fprintln(out, "No meals planned for the coming week.")
					return nil
				}
				for _, category := range categories {
					fmt.Fprintln(out, bold(category.Name))
					for _, item := range category.Items {
						fmt.Fprintf(out, "  %s", item.Ingredient)
						if item.Count > 1 {
							fmt.Fprintf(out, " ×%d", item.Count)
						}
						fmt.Fprintln(out)
					}
				}
				return nil
			})
		},
	}
}
