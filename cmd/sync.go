package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ietfmeet/internal/model"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync remote collections into the local store",
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	syncCmd.AddCommand(syncMeetingsCmd())
	syncCmd.AddCommand(syncScheduleCmd())
	syncCmd.AddCommand(syncDocumentsCmd())
	syncCmd.AddCommand(syncAllCmd())
}

func syncMeetingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meetings",
		Short: "sync the meeting list",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}
			if err := env.syncer.SyncMeetings(context.Background()); err != nil {
				color.Red("sync meetings: %v", err)
				return
			}
			color.Green("meetings synced")
		},
	}
}

func syncScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "schedule [number]",
		Short:   "sync a meeting's schedule (defaults to the selected meeting)",
		Example: "ietfmeet sync schedule 118",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			number := ""
			if len(args) > 0 {
				number = args[0]
			} else {
				number, _ = env.store.GetSetting(ctx, model.SettingMeetingNumber)
			}
			if number == "" {
				color.Red("no meeting selected, run: ietfmeet meeting use <number>")
				return
			}

			if err := env.syncer.SyncSchedule(ctx, number); err != nil {
				color.Red("sync schedule: %v", err)
				return
			}
			color.Green("schedule for meeting %s synced", number)
		},
	}
}

func syncDocumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "documents <group>",
		Short:   "sync a group's drafts, related drafts and charter",
		Example: "ietfmeet sync documents httpbis",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			acronym := args[0]

			// One failing sub-fetch never aborts its siblings.
			if err := env.syncer.SyncGroupDrafts(ctx, acronym); err != nil {
				logrus.Errorf("sync drafts for %s: %v", acronym, err)
			}
			if err := env.syncer.SyncRelatedDrafts(ctx, acronym); err != nil {
				logrus.Errorf("sync related drafts for %s: %v", acronym, err)
			}
			if err := env.syncer.SyncCharter(ctx, acronym); err != nil {
				logrus.Errorf("sync charter for %s: %v", acronym, err)
			}
			color.Green("documents for %s synced", acronym)
		},
	}
}

func syncAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "sync meetings and the selected meeting's schedule",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			if err := env.syncer.SyncMeetings(ctx); err != nil {
				logrus.Errorf("sync meetings: %v", err)
			}
			if number, err := env.store.GetSetting(ctx, model.SettingMeetingNumber); err == nil && number != "" {
				if err := env.syncer.SyncSchedule(ctx, number); err != nil {
					logrus.Errorf("sync schedule: %v", err)
				}
			}
			color.Green("sync complete")
		},
	}
}
