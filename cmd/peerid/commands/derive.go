package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

func deriveCmd() *cobra.Command {
	var seed string
	var showSecret bool
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the identity a seed string derives to",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := crypto.IdentityFromSeed(domain.Profile{}, seed)
			out := cmd.OutOrStdout()
			if err := printIdentity(out, id); err != nil {
				return err
			}
			if showSecret {
				fmt.Fprintf(out, "Secret key:  %s\n", id.SecretKey)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "seed string")
	cmd.Flags().BoolVar(&showSecret, "show-secret", false, "also print the secret key")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}
