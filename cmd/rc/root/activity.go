package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"reconnect/internal/ui"
)

func newActivityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent activity, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Recent activity"))
			entries := svc.Activity()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing yet."))
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(e.Timestamp.Local().Format("2006-01-02 15:04")), e.Text)
			}
			return nil
		},
	}

	return cmd
}
