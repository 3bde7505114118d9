package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"editor-backend/application/changelist"
	"editor-backend/domain/changes"
)

func newValidateCmd(a *app) *cobra.Command {
	var changesFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Decode and validate a change list",
		Long: `Decode a JSON array of change records, validate every record and
print the list in its normalized form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(nil); err != nil {
				return err
			}

			data, err := readInput(cmd, changesFile)
			if err != nil {
				return err
			}
			records, err := changelist.DecodeList(data, a.cfg.StrictDecode)
			if err != nil {
				return fmt.Errorf("invalid change list: %w", err)
			}

			out, err := changes.List(records).MarshalJSON()
			if err != nil {
				return err
			}
			a.logger().Debug("change list valid", zap.Int("changes", len(records)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&changesFile, "changes", "-", "change list file, - for stdin")

	return cmd
}
