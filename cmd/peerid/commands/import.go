package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"peerid/internal/domain"
)

func importCmd() *cobra.Command {
	var seed, secret string
	cmd := &cobra.Command{
		Use:   "import <room> <identity.json>",
		Short: "Adopt the identity a peer asserted for a room",
		Long: "Reads the identity info a peer shared for <room> and stores it unless the room\n" +
			"already has an identity. With --seed or --secret the identity is stored with its\n" +
			"secret key; otherwise it is read-only.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := domain.RoomID(args[0])

			b, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var info domain.Info
			if err := json.Unmarshal(b, &info); err != nil {
				return fmt.Errorf("parse %s: %w", args[1], err)
			}

			var keys domain.Keys
			if seed != "" || secret != "" {
				keys = domain.Keys{info.ID(): {Seed: seed, SecretKey: secret}}
			}

			if _, exists := appCtx.Store.Get(roomID.Slot()); exists {
				fmt.Fprintf(cmd.OutOrStdout(), "Room %s already has an identity, keeping it.\n", roomText(roomID.String()))
			} else if err := appCtx.IDs.ImportRoomIdentity(roomID, &info, keys); err != nil {
				return err
			}
			return printIdentity(cmd.OutOrStdout(), appCtx.Current(roomID).MyIdentity)
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "shared seed the identity derives from")
	cmd.Flags().StringVar(&secret, "secret", "", "secret key of the identity")
	cmd.MarkFlagsMutuallyExclusive("seed", "secret")
	return cmd
}
