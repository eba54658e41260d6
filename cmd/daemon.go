package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ietfmeet/internal/jobs"
	"ietfmeet/internal/rfcindex"
)

func init() {
	rootCmd.AddCommand(daemonCmd())
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "run the periodic background sync",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			importer := rfcindex.NewImporter(env.store, env.client, env.cnf.RFCIndexURL)
			executor := jobs.NewTaskExecutor([]jobs.CronJob{
				jobs.NewScheduleRefreshTask(env.cnf.RefreshCron, env.store, env.syncer),
				// The hourly tick only checks the persisted timestamp;
				// the actual import runs at most once per 48h.
				jobs.NewRFCCheckTask("@every 1h", env.store, importer, jobs.DefaultRFCCheckInterval),
			})

			executor.Run()
			logrus.Info("ietfmeet daemon started")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			executor.Stop()
		},
	}
}
