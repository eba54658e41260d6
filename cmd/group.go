package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "working group commands",
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	groupCmd.AddCommand(groupDocsCmd())
	groupCmd.AddCommand(groupFavCmd())
}

func groupDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs <acronym>",
		Short:   "list a group's synced documents",
		Example: "ietfmeet group docs httpbis",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			group, err := env.store.GetGroupByAcronym(ctx, args[0])
			if err != nil {
				color.Red("group %s: %v", args[0], err)
				return
			}

			docs, err := env.store.ListGroupDocuments(ctx, group.ID)
			if err != nil {
				color.Red("list documents: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Rev", "Title", "Pages"})
			for _, d := range docs {
				table.Append([]string{d.Name, d.Rev, d.Title, fmt.Sprintf("%d", d.Pages)})
			}
			table.Render()
		},
	}
}

func groupFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fav <acronym>",
		Short:   "toggle a group's favorite flag",
		Example: "ietfmeet group fav httpbis",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			group, err := env.store.GetGroupByAcronym(ctx, args[0])
			if err != nil {
				color.Red("group %s: %v", args[0], err)
				return
			}

			group.Favorite = !group.Favorite
			if err := env.store.SaveGroup(ctx, group); err != nil {
				color.Red("save group: %v", err)
				return
			}
			if group.Favorite {
				color.Green("%s marked favorite", group.Acronym)
			} else {
				color.Green("%s unmarked", group.Acronym)
			}
		},
	}
}
