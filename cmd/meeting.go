package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ietfmeet/internal/model"
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "meeting commands",
}

func init() {
	rootCmd.AddCommand(meetingCmd)
	meetingCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	meetingCmd.AddCommand(meetingUseCmd())
	meetingCmd.AddCommand(meetingCurrentCmd())
	meetingCmd.AddCommand(meetingListCmd())
}

// prefsViper points viper at the CLI preference file. The store-backed
// setting stays authoritative for sync; the file just survives DB resets.
func prefsViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("ietfmeet")
	v.SetConfigType("yml")
	if home, err := os.UserHomeDir(); err == nil {
		dir := fmt.Sprintf("%s/.config/ietfmeet", home)
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
	}
	return v
}

func meetingUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "use <number>",
		Short:   "select the meeting that sync and daemon operate on",
		Example: "ietfmeet meeting use 118",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			number := args[0]
			if err := env.store.PutSetting(context.Background(), model.SettingMeetingNumber, number); err != nil {
				color.Red("save selection: %v", err)
				return
			}

			v := prefsViper()
			_ = v.ReadInConfig()
			v.Set("meeting", number)
			if err := v.SafeWriteConfig(); err != nil {
				_ = v.WriteConfig()
			}

			color.Green("selected meeting %s", number)
		},
	}
}

func meetingCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "show the selected meeting",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			number, err := env.store.GetSetting(ctx, model.SettingMeetingNumber)
			if err != nil || number == "" {
				fmt.Println("no meeting selected")
				return
			}

			m, err := env.store.GetMeetingByNumber(ctx, number)
			if err != nil {
				fmt.Printf("meeting %s (not yet synced)\n", number)
				return
			}
			fmt.Printf("IETF %s, %s, %s (%s)\n", m.Number, m.City, m.Country, m.TimeZone)
		},
	}
}

func meetingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list known meetings",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			meetings, err := env.store.ListMeetings(context.Background())
			if err != nil {
				color.Red("list meetings: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Number", "City", "Country", "Date", "Time zone"})
			for _, m := range meetings {
				table.Append([]string{m.Number, m.City, m.Country, m.Date.Format("2006-01-02"), m.TimeZone})
			}
			table.Render()
		},
	}
}
