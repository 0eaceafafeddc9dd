package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"interestd/internal/core/phe"
)

// keyEnv renders a key pair as PHE_* env lines
func keyEnv(k *phe.PrivateKey, version int) []string {
	return []string{
		"PHE_PUBLIC_KEY_N=" + k.N.String(),
		"PHE_PUBLIC_KEY_G=" + k.G.String(),
		"PHE_PRIVATE_KEY_LAMBDA=" + k.Lambda.String(),
		"PHE_PRIVATE_KEY_MU=" + k.Mu.String(),
		fmt.Sprintf("PHE_KEY_VERSION=%d", version),
	}
}

func init() {
	var bits, version int
	keygenCmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print it as PHE_* env lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bits < 2048 {
				return fmt.Errorf("--bits must be at least 2048")
			}
			k, err := phe.GenerateKey(rand.Reader, bits)
			if err != nil {
				return err
			}
			for _, line := range keyEnv(k, version) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	keygenCmd.Flags().IntVar(&bits, "bits", phe.DefaultKeyBits, "modulus size in bits")
	keygenCmd.Flags().IntVar(&version, "version", 1, "key version to print")
	rootCmd.AddCommand(keygenCmd)

	pubkeyCmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key metadata the server would expose",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc := conf.Prefix("PHE_")
			m, err := phe.New(phe.SourceFromConfig(pc), phe.Options{Version: pc.MayInt("KEY_VERSION", 1)})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m.Metadata())
		},
	}
	rootCmd.AddCommand(pubkeyCmd)
}
