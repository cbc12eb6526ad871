package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"peerid/internal/app"
	"peerid/internal/util/logx"
)

var (
	home        string
	backend     string
	passphrase  string
	registryURL string

	appCtx     *app.App
	appTimeout = 10 * time.Second
)

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdout)
}

// Run executes the CLI with args, writing command output to out. Pending
// announcements are flushed before it returns.
func Run(args []string, out io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)

	err := root.Execute()
	if appCtx != nil {
		ctx, cancel := context.WithTimeout(context.Background(), appTimeout)
		if cerr := appCtx.Close(ctx); cerr != nil {
			logx.Warn("Shutdown incomplete", "error", cerr.Error())
		}
		cancel()
		appCtx = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "peerid",
		Short:        "Manage peer identities globally and per room",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("backend") {
				cfg.Backend = backend
			}
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if flags.Changed("registry") {
				cfg.RegistryURL = registryURL
			}

			logx.InitGlobalLoggerTo(cmd.ErrOrStderr(), cfg.IsDevelopment())
			appTimeout = cfg.AnnounceTimeout

			appCtx, err = app.NewWire(cfg)
			if err != nil {
				return err
			}
			if derr := appCtx.Store.Detached(); derr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v; changes in this run are not saved\n", warnText("warning:"), derr)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default $PEERID_HOME or ~/.peerid)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "identity store backend: file, sqlite or memory")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the file backend")
	root.PersistentFlags().StringVar(&registryURL, "registry", "", "registry base URL (e.g. http://127.0.0.1:8080)")

	root.AddCommand(
		whoamiCmd(),
		roomsCmd(),
		roomCmd(),
		importCmd(),
		profileCmd(),
		deriveCmd(),
		fingerprintCmd(),
		fetchCmd(),
	)
	return root
}
