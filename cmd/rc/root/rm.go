package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reconnect/internal/ui"
)

func newRmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task (earned XP and credits are kept)",
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
			if !svc.DeleteTask(ctx, id) {
				return fmt.Errorf("task %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(shortID(id)))
			return nil
		},
	}

	return cmd
}
