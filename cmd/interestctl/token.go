package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pnet "interestd/internal/platform/net"
	"interestd/internal/platform/token"
)

func init() {
	var user, role, secret string
	var ttl time.Duration
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development HS256 JWT bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = conf.Prefix("CORE_API_").MayString("AUTH_SECRET", "")
			}
			s, err := token.New(secret)
			if err != nil {
				return fmt.Errorf("%w (set --secret or CORE_API_AUTH_SECRET)", err)
			}
			tok, err := s.Sign(user, role, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	tokenCmd.Flags().StringVarP(&user, "user", "u", "", "user id (required)")
	tokenCmd.Flags().StringVarP(&role, "role", "r", pnet.RoleUser, "role: user, trainer or admin")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.Flags().StringVar(&secret, "secret", "", "signing secret, default CORE_API_AUTH_SECRET")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
