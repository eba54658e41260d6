package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ietfmeet/internal/model"
	"ietfmeet/internal/rfcindex"
)

var rfcCmd = &cobra.Command{
	Use:   "rfc",
	Short: "rfc index commands",
}

func init() {
	rootCmd.AddCommand(rfcCmd)
	rfcCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	rfcCmd.AddCommand(rfcImportCmd())
	rfcCmd.AddCommand(rfcShowCmd())
}

func rfcImportCmd() *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   "import",
		Short: "import the RFC index",
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			if force {
				// Drop the validators so the fetch is unconditional.
				_ = env.store.PutSetting(ctx, model.SettingRFCETag, "")
			}

			importer := rfcindex.NewImporter(env.store, env.client, env.cnf.RFCIndexURL)
			if err := importer.Run(ctx); err != nil {
				color.Red("import: %v", err)
				return
			}

			count, _ := env.store.CountRFCs(ctx)
			color.Green("rfc index up to date, %d rfcs stored", count)
		},
	}

	command.Flags().BoolVarP(&force, "force", "f", false, "ignore the cached ETag")
	return command
}

func rfcShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <name>",
		Short:   "show a stored RFC and its graph edges",
		Example: "ietfmeet rfc show RFC8259",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newAppEnv()
			if err != nil {
				color.Red("%v", err)
				return
			}

			ctx := context.Background()
			name := strings.ToUpper(args[0])
			r, err := env.store.GetRFCByName(ctx, name)
			if err != nil {
				color.Red("rfc %s: %v", name, err)
				return
			}

			updates, _ := env.store.RFCUpdates(ctx, name)
			updatedBy, _ := env.store.RFCUpdatedBy(ctx, name)
			obsoletes, _ := env.store.RFCObsoletes(ctx, name)
			obsoletedBy, _ := env.store.RFCObsoletedBy(ctx, name)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Field", "Value"})
			table.Append([]string{"Name", r.Name})
			table.Append([]string{"Title", r.Title})
			table.Append([]string{"Status", fmt.Sprintf("%s (%s)", r.CurrentStatus, r.ShortStatus())})
			table.Append([]string{"Stream", r.Stream})
			if r.Published != nil {
				table.Append([]string{"Published", r.Published.Format("January 2006")})
			}
			table.Append([]string{"Updates", rfcNames(updates)})
			table.Append([]string{"Updated by", rfcNames(updatedBy)})
			table.Append([]string{"Obsoletes", rfcNames(obsoletes)})
			table.Append([]string{"Obsoleted by", rfcNames(obsoletedBy)})
			table.Render()
		},
	}
}

func rfcNames(rfcs []*model.RFC) string {
	names := make([]string, 0, len(rfcs))
	for _, r := range rfcs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}
