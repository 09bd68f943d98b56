package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns FILE",
		Short: "List the numeric columns of a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			info, err := uploadFile(ctx, svc, args[0])
			if err != nil {
				return err
			}

			cols, err := svc.Columns(ctx, info.Handle)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range cols {
				fmt.Fprintln(out, c)
			}

			return nil
		},
	}
}
