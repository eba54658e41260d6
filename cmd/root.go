package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ietfmeet/internal/config"
	"ietfmeet/internal/downloads"
	"ietfmeet/internal/fetch"
	"ietfmeet/internal/store"
	gosync "ietfmeet/internal/sync"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ietfmeet",
	Short: "IETF meeting companion sync tool",
	Example: `ietfmeet db migrate
ietfmeet sync meetings
ietfmeet sync schedule 118
ietfmeet sync documents httpbis
ietfmeet rfc import
ietfmeet fetch https://www.ietf.org/archive/id/draft-foo-01.txt
ietfmeet show draft-foo-01.txt
ietfmeet meeting use 118
ietfmeet daemon`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// appEnv wires the shared collaborators for a command invocation.
type appEnv struct {
	cnf       *config.Config
	store     store.Store
	client    *fetch.Client
	syncer    *gosync.Syncer
	downloads *downloads.Manager
}

func newAppEnv() (*appEnv, error) {
	cnf := config.LoadConfig()

	provider := store.NewLazyProvider(func() (*gorm.DB, error) {
		return config.GetDb(cnf), nil
	})
	st, err := provider.Provide()
	if err != nil {
		return nil, err
	}
	client := fetch.NewClient()

	mgr, err := downloads.NewManager(st, client, cnf.DownloadDir)
	if err != nil {
		return nil, err
	}

	return &appEnv{
		cnf:       cnf,
		store:     st,
		client:    client,
		syncer:    gosync.NewSyncer(st, client, cnf.DatatrackerURL),
		downloads: mgr,
	}, nil
}
