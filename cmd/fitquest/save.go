package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
	"github.com/spf13/cobra"
)

const exportPerm = 0o600

func readProfile(path string) (program.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return program.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p program.Profile
	if err = json.Unmarshal(data, &p); err != nil {
		return program.Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

func (c *cli) setupCmd() *cobra.Command {
	var profilePath string
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Generate a new program from a JSON profile, replacing the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if profilePath == "" {
				return errors.New("--profile is required")
			}
			p, err := readProfile(profilePath)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				state, err := svc.Setup(ctx, p)
				var validationErr *program.ValidationError
				if errors.As(err, &validationErr) {
					for _, f := range validationErr.Fields {
						fmt.Fprintln(cmd.ErrOrStderr(), red(f.Field+": "+f.Reason))
					}
					return errors.New("invalid profile")
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Program ready: %d weeks from %s with %d workouts and %d recipes.\n",
					state.Plan.TimelineWeeks, state.Plan.StartDate, len(state.Plan.WorkoutsByID),
					len(state.Plan.RecipesBank))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to the profile JSON file")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		outPath      string
		snapshotPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the save document as JSON or snapshot the whole database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				if snapshotPath != "" {
					if err := svc.Snapshot(ctx, snapshotPath); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Created snapshot: %s\n", snapshotPath)
					return nil
				}

				document, err := svc.Export(ctx)
				if err != nil {
					return err
				}
				if outPath == "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(document))
					return err
				}
				if err = os.WriteFile(outPath, document, exportPerm); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported save: %s\n", outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Write the JSON save document to this file instead of stdout")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write a copy of the whole database to this new file")
	return cmd
}

func (c *cli) resetCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the program and all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("reset deletes all progress, pass --yes to confirm")
			}
			return c.withService(cmd, func(ctx context.Context, svc *mission.Service) error {
				if err := svc.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the reset")
	return cmd
}
