package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"editor-backend/application/changelist"
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
)

var validate = validator.New()

type replayFlags struct {
	aggregateFile string
	changesFile   string
	summariesFile string
}

func newReplayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a change list onto a backend dict",
	}

	cmd.AddCommand(newReplayCollectionCmd(a))
	cmd.AddCommand(newReplaySkillCmd(a))

	return cmd
}

func addReplayFlags(cmd *cobra.Command, flags *replayFlags) {
	cmd.Flags().StringVar(&flags.aggregateFile, "aggregate", "", "backend dict file")
	cmd.Flags().StringVar(&flags.changesFile, "changes", "-", "change list file, - for stdin")
	_ = cmd.MarkFlagRequired("aggregate")
}

func newReplayCollectionCmd(a *app) *cobra.Command {
	var flags replayFlags

	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Replay a change list onto a collection",
		Long: `Replay a change list onto a collection backend dict and print the
resulting dict. Summaries for added nodes come from --summaries, a JSON
object mapping exploration id to exploration summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup := changelist.SummaryMap{}
			if flags.summariesFile != "" {
				data, err := readInput(cmd, flags.summariesFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &lookup); err != nil {
					return fmt.Errorf("invalid summaries: %w", err)
				}
			}
			if err := a.init(lookup); err != nil {
				return err
			}

			var dict aggregates.CollectionDict
			if err := readDict(cmd, flags.aggregateFile, &dict); err != nil {
				return err
			}
			collection, err := aggregates.NewCollectionFromBackendDict(dict)
			if err != nil {
				return err
			}
			records, err := readChanges(cmd, a, flags.changesFile)
			if err != nil {
				return err
			}

			if err := a.container.Applier.ApplyToCollection(cmd.Context(), collection, records); err != nil {
				return err
			}
			return printJSON(cmd, collection.ToBackendDict())
		},
	}

	addReplayFlags(cmd, &flags)
	cmd.Flags().StringVar(&flags.summariesFile, "summaries", "", "JSON object of exploration id to summary")

	return cmd
}

func newReplaySkillCmd(a *app) *cobra.Command {
	var flags replayFlags

	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Replay a change list onto a skill",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(nil); err != nil {
				return err
			}

			var dict aggregates.SkillDict
			if err := readDict(cmd, flags.aggregateFile, &dict); err != nil {
				return err
			}
			skill, err := aggregates.NewSkillFromBackendDict(dict)
			if err != nil {
				return err
			}
			records, err := readChanges(cmd, a, flags.changesFile)
			if err != nil {
				return err
			}

			if err := a.container.Applier.ApplyToSkill(cmd.Context(), skill, records); err != nil {
				return err
			}
			return printJSON(cmd, skill.ToBackendDict())
		},
	}

	addReplayFlags(cmd, &flags)

	return cmd
}

func readDict(cmd *cobra.Command, path string, target any) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid backend dict: %w", err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("invalid backend dict: %w", err)
	}
	return nil
}

func readChanges(cmd *cobra.Command, a *app, path string) ([]changes.Record, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	records, err := changelist.DecodeList(data, a.cfg.StrictDecode)
	if err != nil {
		return nil, fmt.Errorf("invalid change list: %w", err)
	}
	return records, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
