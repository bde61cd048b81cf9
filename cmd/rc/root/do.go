package root

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reconnect/internal/engine"
	"reconnect/internal/ui"
)

func newDoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
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

			id, err := svc.ResolveTaskID(args[0])
			if err != nil {
				return err
			}
			res := svc.CompleteTask(ctx, id)
			if !res.Applied {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already completed, nothing changed."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Completed"),
				res.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d credits)", res.XP, res.Credits)),
			)
			printLevelUp(cmd.OutOrStdout(), res.Award)
			return nil
		},
	}

	return cmd
}

func printLevelUp(w io.Writer, a engine.Award) {
	if !a.LevelUp {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.Gold.Render(fmt.Sprintf("Level %d → %d (+%d credits)", a.LevelBefore, a.LevelAfter, a.LevelBonus)))
}
