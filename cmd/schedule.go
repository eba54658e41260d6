package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ietfmeet/internal/model"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "browse the selected meeting's schedule",
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	scheduleCmd.AddCommand(scheduleListCmd())
	scheduleCmd.AddCommand(scheduleLocalCmd())
	scheduleCmd.AddCommand(scheduleRecordingCmd())
	scheduleCmd.AddCommand(scheduleSlidesCmd())
}

func selectedMeeting(ctx context.Context, env *appEnv, args []string) (*model.Meeting, error) {
	number := ""
	if len(args) > 0 {
		number = args[0]
	} else {
		number, _ = env.store.GetSetting(ctx, model.SettingMeetingNumber)
	}
	if number == "" {
		return nil, fmt.Errorf("no meeting selected, run: ietfmeet meeting use <number>")
	}
	return env.store.GetMeetingByNumber(ctx, number)
}

func scheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [number]",
		Short: "list the sessions of a meeting",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			meeting, err := selectedMeeting(ctx, env, args)
			if err != nil {
				color.Red("%v", err)
				return
			}

			sessions, err := env.store.ListSessionsByMeeting(ctx, meeting.ID)
			if err != nil {
				color.Red("list sessions: %v", err)
				return
			}

			// The stored Day/TimeRange buckets are in the meeting's zone;
			// the local-time preference reformats them on the fly.
			zone := meeting.Zone()
			if v, err := env.store.GetSetting(ctx, model.SettingUseLocalTime); err == nil && v == "true" {
				zone = time.Local
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Day", "Time", "Session", "Room"})
			for _, s := range sessions {
				day := s.StartsAt.In(zone).Format("Monday")
				slot := fmt.Sprintf("%s-%s",
					s.StartsAt.In(zone).Format("15:04"), s.EndsAt.In(zone).Format("15:04"))
				name := s.Name
				if s.IsBOF {
					name += " (BOF)"
				}
				room := ""
				if s.LocationID != nil {
					if loc, err := env.store.GetLocationByID(ctx, *s.LocationID); err == nil {
						room = loc.Name
					}
				}
				table.Append([]string{strconv.FormatInt(s.RemoteID, 10), day, slot, name, room})
			}
			table.Render()
		},
	}
}

func scheduleLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "local on|off",
		Short:     "display session times in the local time zone instead of the meeting's",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			value := "false"
			if args[0] == "on" {
				value = "true"
			}
			if err := env.store.PutSetting(context.Background(), model.SettingUseLocalTime, value); err != nil {
				color.Red("save preference: %v", err)
				return
			}
			color.Green("local time display %s", args[0])
		},
	}
}

func sessionEnv(ctx context.Context, env *appEnv, remoteID string) (*model.Meeting, *model.Group, *model.Session, error) {
	id, err := strconv.ParseInt(remoteID, 10, 64)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid session id %q", remoteID)
	}
	session, err := env.store.GetSessionByRemoteID(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("session %s: %w", remoteID, err)
	}

	meeting, err := env.store.GetMeetingByID(ctx, session.MeetingID)
	if err != nil {
		return nil, nil, nil, err
	}

	var group *model.Group
	if session.GroupID != nil {
		group, err = env.store.GetGroupByID(ctx, *session.GroupID)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return meeting, group, session, nil
}

func scheduleRecordingCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "recording <session-id>",
		Short:   "resolve and print a session's video recording URL",
		Example: "ietfmeet schedule recording 100",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			meeting, group, session, err := sessionEnv(ctx, env, args[0])
			if err != nil {
				color.Red("%v", err)
				return
			}
			if group == nil {
				color.Red("session %s has no group", args[0])
				return
			}

			if err := env.syncer.FetchRecording(ctx, meeting, group, session); err != nil {
				color.Red("fetch recording: %v", err)
				return
			}
			if session.Recording == "" {
				fmt.Println("no recording available")
				return
			}
			fmt.Println(session.Recording)
		},
	}
}

func scheduleSlidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "slides <session-id>",
		Short:   "sync and list the slide decks of a session",
		Example: "ietfmeet schedule slides 100",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			_, _, session, err := sessionEnv(ctx, env, args[0])
			if err != nil {
				color.Red("%v", err)
				return
			}

			if err := env.syncer.SyncPresentations(ctx, session); err != nil {
				color.Red("sync presentations: %v", err)
				return
			}
			color.Green("presentations for session %s synced", args[0])
		},
	}
}
