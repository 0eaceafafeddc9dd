package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"interestd/internal/platform/logger"
	"interestd/internal/platform/store"
	"interestd/internal/platform/store/schema"
	engagement "interestd/internal/services/engagement/service"
)

func init() {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema and, when enabled, the clickhouse engagement table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			l := logger.Named("migrate")
			pgCfg := conf.Prefix("SERVICE_PGSQL_")
			chCfg := conf.Prefix("SERVICE_CH_")

			st, err := store.Open(ctx, store.Config{
				AppName: "interestctl",
				PG: store.PGConfig{
					Enabled: true,
					URL:     pgCfg.MustString("DBURL"),
					LogSQL:  pgCfg.MayBool("LOG_SQL", false),
				},
				CH: store.CHConfig{
					Enabled: chCfg.MayBool("ENABLED", false),
					URL:     chCfg.MayString("DSN", ""),
				},
			}, store.WithLogger(*l))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = st.Close(ctx) }()

			if err := schema.Apply(ctx, st.PG); err != nil {
				return err
			}
			l.Info().Strs("files", schema.Files()).Msg("postgres schema applied")

			if st.CH != nil {
				if err := engagement.EnsureTable(ctx, st.CH); err != nil {
					return err
				}
				l.Info().Str("table", engagement.Table).Msg("clickhouse table ready")
			}
			return nil
		},
	}
	rootCmd.AddCommand(migrateCmd)
}
