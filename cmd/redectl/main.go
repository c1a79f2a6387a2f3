// redectl is the operator CLI for the supporter registry. It keeps the
// session, the pastor records and the merged view on the device and
// talks to the backend for everything else.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kafune/rede-guti/internal/client"
	"github.com/kafune/rede-guti/internal/devstore"
	"github.com/kafune/rede-guti/internal/localstore"
	"github.com/kafune/rede-guti/internal/registry"
	"github.com/kafune/rede-guti/internal/session"
)

var (
	apiURL    string
	statePath string
	verbose   bool

	sess   *session.Session
	api    *client.Client
	engine *registry.Engine
)

var rootCmd = &cobra.Command{
	Use:   "redectl",
	Short: "Registro de apoiadores e pastores da campanha",
	Long: `redectl manages the campaign contact registry: supporters stored on
the server, pastors stored on this device, and the merged view of both.

Supporters are created against the backend and visible to every
operator. Pastors never leave the device; they only appear in the
merged listing here.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		dev := devstore.Open(statePath)
		sess = session.New(dev)
		api = client.New(apiURL, sess.Token)
		engine = registry.NewEngine(localstore.New(dev), api, sess)
	},
}

func main() {
	defaultURL := os.Getenv("REDE_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:4000"
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "backend base URL (env REDE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", devstore.DefaultPath(), "device state file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		showCmd,
		addCmd,
		addPastorCmd,
		deleteCmd,
		statsCmd,
		linkCmd,
		signupCmd,
		watchCmd,
		usersCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", errText(err))
		os.Exit(1)
	}
}

// errText prefers the server's human-readable message over the wrapped
// technical form.
func errText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
