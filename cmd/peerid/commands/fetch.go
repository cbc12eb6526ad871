package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <publicKey>",
		Short: "Look up an identity on the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Registry == nil {
				return errors.New("no registry configured (--registry or PEERID_REGISTRY_URL)")
			}
			info, err := appCtx.Registry.FetchIdentity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Public key:  %s\n", keyText(info.ID()))
			if info.DisplayName != "" {
				fmt.Fprintf(out, "Name:        %s\n", info.DisplayName)
			}
			if info.Email != "" {
				fmt.Fprintf(out, "Email:       %s\n", info.Email)
			}
			return nil
		},
	}
}
