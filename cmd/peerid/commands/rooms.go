package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

func roomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List stored identity slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, slot := range appCtx.Store.Slots() {
				id, ok := appCtx.Store.Get(slot)
				if !ok {
					continue
				}
				fp, err := crypto.Fingerprint(id.PublicKey)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", slotLabel(slot), keyText(id.PublicKey), fp, ownership(id))
			}
			return nil
		},
	}
}

func roomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
	}
	cmd.AddCommand(roomNewCmd())
	return cmd
}

func roomNewCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a room with a fresh identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := domain.RoomID(uuid.NewString())

			// An assertion without an id makes the importer synthesize a fresh identity.
			info := domain.NewAssertion("", domain.Profile{DisplayName: name, Email: email})
			if err := appCtx.IDs.ImportRoomIdentity(roomID, &info, nil); err != nil {
				return err
			}

			cur := appCtx.Current(roomID)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Room:        %s\n", roomText(roomID.String()))
			return printIdentity(out, cur.MyIdentity)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name for the room identity")
	cmd.Flags().StringVar(&email, "email", "", "email for the room identity")
	return cmd
}
