package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
	"github.com/spf13/cobra"
)

func parseDate(value string) (string, error) {
	t, err := time.Parse(program.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return program.FormatDate(t), nil
}

func parsePositiveInt(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// transitionCmd builds a command that applies the operation returned by build on the mission date.
func (c *cli) transitionCmd(
	use, short string,
	args cobra.PositionalArgs,
	build func(date string, args []string) (mission.Operation, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				date, err := c.missionDate(svc)
				if err != nil {
					return err
				}
				op, err := build(date, args)
				if err != nil {
					return err
				}
				res, err := svc.Apply(ctx, op)
				if err != nil {
					return err
				}
				printResult(cmd, res)
				return nil
			})
		},
	}
}

func (c *cli) completeCmd() *cobra.Command {
	return c.transitionCmd("complete <mission>", "Complete the workout, food or mobility mission", cobra.ExactArgs(1),
		func(date string, args []string) (mission.Operation, error) {
			m, err := mission.ParseMission(args[0])
			if err != nil {
				return nil, fmt.Errorf("unknown mission %q", args[0])
			}
			return mission.Complete{Date: date, Mission: m}, nil
		})
}

func (c *cli) undoCmd() *cobra.Command {
	return c.transitionCmd("undo <mission>", "Undo a completed mission and remove its XP", cobra.ExactArgs(1),
		func(date string, args []string) (mission.Operation, error) {
			m, err := mission.ParseMission(args[0])
			if err != nil {
				return nil, fmt.Errorf("unknown mission %q", args[0])
			}
			return mission.Undo{Date: date, Mission: m}, nil
		})
}

func (c *cli) waterCmd() *cobra.Command {
	return c.transitionCmd("water <ml>", "Log water you drank", cobra.ExactArgs(1),
		func(date string, args []string) (mission.Operation, error) {
			ml, err := parsePositiveInt("ml", args[0])
			if err != nil {
				return nil, err
			}
			return mission.AddWater{Date: date, Ml: ml}, nil
		})
}

func (c *cli) sleepCmd() *cobra.Command {
	return c.transitionCmd("sleep <bed HH:MM> <wake HH:MM>", "Log last night's sleep", cobra.ExactArgs(2), //nolint:mnd // bed and wake
		func(date string, args []string) (mission.Operation, error) {
			if _, ok := mission.SleepHours(args[0], args[1]); !ok {
				return nil, fmt.Errorf("invalid sleep times %q and %q (expected HH:MM)", args[0], args[1])
			}
			return mission.LogSleep{Date: date, Bed: args[0], Wake: args[1]}, nil
		})
}

func (c *cli) stepsCmd() *cobra.Command {
	return c.transitionCmd("steps <count>", "Log the day's step count", cobra.ExactArgs(1),
		func(date string, args []string) (mission.Operation, error) {
			steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || steps < 0 {
				return nil, fmt.Errorf("invalid steps %q", args[0])
			}
			return mission.LogSteps{Date: date, Steps: steps}, nil
		})
}

func (c *cli) weighInCmd() *cobra.Command {
	return c.transitionCmd("weighin <kg>", "Record a weigh-in", cobra.ExactArgs(1),
		func(date string, args []string) (mission.Operation, error) {
			weight, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(args[0]), ",", "."), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid weight %q", args[0])
			}
			return mission.WeighIn{Date: date, Weight: weight}, nil
		})
}

func (c *cli) rerollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reroll",
		Short: "Swap today's meals for other recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				date, err := c.missionDate(svc)
				if err != nil {
					return err
				}
				res, err := svc.RerollMeals(ctx, date)
				if err != nil {
					return err
				}
				printResult(cmd, res)
				return nil
			})
		},
	}
}

func (c *cli) intensityCmd() *cobra.Command {
	return c.transitionCmd("intensity <low|medium|high>", "Set how loud the arcade celebrates", cobra.ExactArgs(1),
		func(_ string, args []string) (mission.Operation, error) {
			intensity := mission.ArcadeIntensity(args[0])
			for _, allowed := range mission.ArcadeIntensities {
				if intensity == allowed {
					return mission.SetArcadeIntensity{Intensity: intensity}, nil
				}
			}
			return nil, fmt.Errorf("unknown arcade intensity %q", args[0])
		})
}
