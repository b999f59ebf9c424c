package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bibbank/bib/internal/application/usecase"
	"github.com/bibbank/bib/internal/infrastructure/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		file   string
		tenant string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create offices, GL accounts and account mappings from a TOML chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			req, err := seed.LoadFile(file, tenantID)
			if err != nil {
				return err
			}

			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			pool, err := openPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			repos := newRepositories(pool, cfg, logger)
			uc := usecase.NewSeedChart(repos.offices, repos.accounts, repos.mappings, repos.refs, logger)
			resp, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "offices: %d, gl accounts: %d, mappings: %d created; %d skipped\n",
				resp.OfficesCreated, resp.GLAccountsCreated, resp.MappingsCreated, resp.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the chart TOML file")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant id to seed")
	_ = cmd.MarkFlagRequired("file")   //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("tenant") //nolint:errcheck // flag is defined above
	return cmd
}
