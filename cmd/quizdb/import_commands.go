package main

import (
	"github.com/spf13/cobra"

	"quizdb/internal/config"
	"quizdb/internal/questionsets"
	"quizdb/internal/store"
	"quizdb/internal/tournaments"
)

func newImportSetsCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import-sets",
		Short: "Import question sets from the data tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newRunLogger()
			if err != nil {
				return err
			}
			return ctx.withImportLock(func(cfg *config.Config, st *store.Store) error {
				importer, err := questionsets.NewImporter(cfg, st, logger, overwrite)
				if err != nil {
					return err
				}
				summary, err := importer.Run(cmd.Context())
				if err != nil {
					return err
				}
				printSetSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace editions already in the database")
	return cmd
}

func newImportTournamentsCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import-tournaments",
		Short: "Import tournament results from the data tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newRunLogger()
			if err != nil {
				return err
			}
			return ctx.withImportLock(func(cfg *config.Config, st *store.Store) error {
				summary, err := tournaments.NewImporter(cfg, st, logger, overwrite).Run(cmd.Context())
				if err != nil {
					return err
				}
				printTournamentSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace tournaments already in the database")
	return cmd
}
