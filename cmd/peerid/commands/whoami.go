package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

func whoamiCmd() *cobra.Command {
	var room string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := domain.RoomID(room)
			cur := appCtx.Current(roomID)

			slot := domain.DefaultSlot
			if _, ok := appCtx.Store.Get(roomID.Slot()); ok {
				slot = roomID.Slot()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Slot:        %s\n", slotLabel(slot))
			return printIdentity(cmd.OutOrStdout(), cur.MyIdentity)
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "room id (default: global identity)")
	return cmd
}

func fingerprintCmd() *cobra.Command {
	var room string
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print identity fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur := appCtx.Current(domain.RoomID(room))
			fp, err := crypto.Fingerprint(cur.MyID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "room id (default: global identity)")
	return cmd
}
