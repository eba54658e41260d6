package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ietfmeet/internal/model"
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "manage the download cache",
}

func init() {
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(showCmd())

	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	downloadsCmd.AddCommand(downloadsListCmd())
	downloadsCmd.AddCommand(downloadsRemoveCmd())
}

func fetchCmd() *cobra.Command {
	var kind string
	var title string

	command := &cobra.Command{
		Use:     "fetch <url>",
		Short:   "download a document into the cache (no-op when already cached)",
		Example: "ietfmeet fetch https://www.ietf.org/archive/id/draft-foo-01.txt",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			dl, err := env.downloads.Resolve(context.Background(), args[0], nil, model.DownloadKind(kind), title)
			if err != nil {
				color.Red("fetch: %v", err)
				return
			}
			color.Green("cached %s as %s (%d bytes, %s)", dl.Basename, dl.Filename, dl.Filesize, dl.MimeType)
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", "document kind (agenda, charter, draft, minutes, presentation, rfc)")
	command.Flags().StringVarP(&title, "title", "t", "", "display title")
	return command
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <basename>",
		Short:   "print a cached document as HTML",
		Example: "ietfmeet show draft-foo-01.txt",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			dl, err := env.store.GetDownloadByBasename(context.Background(), args[0])
			if err != nil {
				color.Red("download %s: %v", args[0], err)
				return
			}

			content, err := env.downloads.Materialize(dl)
			if err != nil {
				// Decode failures are shown inline in place of content.
				fmt.Println(err.Error())
				return
			}
			fmt.Println(content)
		},
	}
}

func downloadsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list cached downloads and total storage",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			list, err := env.store.ListDownloads(ctx)
			if err != nil {
				color.Red("list downloads: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Basename", "Filename", "Kind", "Mime", "Size"})
			for _, dl := range list {
				table.Append([]string{dl.Basename, dl.Filename, string(dl.Kind), dl.MimeType, fmt.Sprintf("%d", dl.Filesize)})
			}
			table.Render()

			total, _ := env.downloads.TotalSize(ctx)
			fmt.Printf("total: %d bytes in %d files\n", total, len(list))
		},
	}
}

func downloadsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <basename>",
		Short: "remove a cached download and its file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			if err := env.downloads.Remove(context.Background(), args[0]); err != nil {
				color.Red("remove: %v", err)
				return
			}
			color.Green("removed %s", args[0])
		},
	}
}
