package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

var (
	keyText  = color.New(color.FgCyan).SprintFunc()
	roomText = color.New(color.FgYellow).SprintFunc()
	okText   = color.New(color.FgGreen).SprintFunc()
	warnText = color.New(color.FgRed).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

func printIdentity(w io.Writer, id domain.Identity) error {
	fp, err := crypto.Fingerprint(id.PublicKey)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Public key:  %s\n", keyText(id.PublicKey))
	fmt.Fprintf(w, "Fingerprint: %s\n", fp)
	if id.Info.DisplayName != "" {
		fmt.Fprintf(w, "Name:        %s\n", id.Info.DisplayName)
	}
	if id.Info.Email != "" {
		fmt.Fprintf(w, "Email:       %s\n", id.Info.Email)
	}
	fmt.Fprintf(w, "Keys:        %s\n", ownership(id))
	return nil
}

func ownership(id domain.Identity) string {
	if id.Owned() {
		return okText("owned")
	}
	return warnText("read-only")
}

func slotLabel(slot domain.Slot) string {
	if slot.IsDefault() {
		return dimText("(default)")
	}
	return roomText(slot.String())
}
