package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"peerid/internal/domain"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the profile of the current identity",
	}
	cmd.AddCommand(profileSetCmd())
	return cmd
}

func profileSetCmd() *cobra.Command {
	var room, name, email, avatar string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields of the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := domain.RoomID(room)
			profile := appCtx.Current(roomID).MyIdentity.Profile()

			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("email") && !flags.Changed("avatar") {
				return fmt.Errorf("nothing to change: pass --name, --email or --avatar")
			}
			if flags.Changed("name") {
				profile.DisplayName = name
			}
			if flags.Changed("email") {
				profile.Email = email
			}
			if flags.Changed("avatar") {
				profile.Avatar = avatar
			}

			if err := appCtx.IDs.UpdateInfo(roomID, profile); err != nil {
				return err
			}
			return printIdentity(cmd.OutOrStdout(), appCtx.Current(roomID).MyIdentity)
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "room id (default: global identity)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	return cmd
}
