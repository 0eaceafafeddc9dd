package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"interestd/internal/adapters/emitter"
	scoring "interestd/internal/services/scoring/domain"
)

func init() {
	var (
		articles               []string
		open, read, interested bool
		baseURL, tok           string
	)
	emitCmd := &cobra.Command{
		Use:   "emit",
		Short: "Send engagement for one or more articles through the client emitter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ev := scoring.Events{Open: open, Read: read, Interested: interested}
			if !ev.Any() {
				return fmt.Errorf("set at least one of --open, --read, --interested")
			}
			cfg := emitter.FromConfig(conf)
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if tok != "" {
				cfg.Token = tok
			}
			e := emitter.New(cfg, nil)
			for _, a := range articles {
				e.Emit(a, ev)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout+time.Second)
			defer cancel()
			if err := e.Close(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sent %d article(s) to %s\n", len(articles), cfg.BaseURL)
			return nil
		},
	}
	emitCmd.Flags().StringSliceVarP(&articles, "article", "a", nil, "article id, repeatable (required)")
	emitCmd.Flags().BoolVar(&open, "open", false, "article was opened")
	emitCmd.Flags().BoolVar(&read, "read", false, "article was read")
	emitCmd.Flags().BoolVar(&interested, "interested", false, "explicit interest")
	emitCmd.Flags().StringVar(&baseURL, "base-url", "", "server base url, default EMITTER_BASE_URL")
	emitCmd.Flags().StringVar(&tok, "token", "", "bearer token, default EMITTER_TOKEN")
	_ = emitCmd.MarkFlagRequired("article")
	rootCmd.AddCommand(emitCmd)
}
