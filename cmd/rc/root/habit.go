package root

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reconnect/internal/engine"
	"reconnect/internal/ui"
)

func newHabitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage daily habits",
	}
	cmd.AddCommand(newHabitAddCmd(a), newHabitToggleCmd(a), newHabitListCmd(a))
	return cmd
}

func newHabitAddCmd(a *app) *cobra.Command {
	var icon string
	var target int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("habit name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.CreateHabit(ctx, engine.CreateHabitInput{
				Name:   strings.Join(args, " "),
				Icon:   icon,
				Target: target,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added habit"),
				ui.Muted.Render(shortID(h.ID)),
				h.Icon,
				h.Name,
				ui.Muted.Render(fmt.Sprintf("(target %d days)", h.Target)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Icon shown next to the habit")
	cmd.Flags().IntVarP(&target, "target", "t", 7, "Streak target in days")

	return cmd
}

func newHabitToggleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"check"},
		Short:   "Mark or unmark a habit for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveHabitID(args[0])
			if err != nil {
				return err
			}
			res := svc.ToggleHabitDay(ctx, id)
			if !res.Applied {
				return fmt.Errorf("habit %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			if !res.Done {
				fmt.Fprintf(out, "%s %s %s\n", ui.Warn.Render(ui.IconLoop+" Unmarked"), res.Name, ui.Muted.Render(fmt.Sprintf("(streak %d)", res.Streak)))
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Good.Render(ui.IconFire+" Done today"),
				res.Name,
				ui.Muted.Render(fmt.Sprintf("(streak %d, +%d XP, +%d credits)", res.Streak, res.XP, res.Credits)),
			)
			printLevelUp(out, res.Award)
			return nil
		},
	}

	return cmd
}

func newHabitListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			habits := svc.Habits()
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits."))
				return nil
			}
			now := time.Now()
			for _, h := range habits {
				fmt.Fprintf(out, "%s %s %s %s %s %d/%d\n",
					ui.CheckIcon(engine.CompletedToday(h, now)),
					ui.Muted.Render(shortID(h.ID)),
					h.Icon,
					h.Name,
					ui.ProgressBar(engine.HabitProgress(h), 14),
					h.Streak,
					h.Target,
				)
			}
			return nil
		},
	}

	return cmd
}
