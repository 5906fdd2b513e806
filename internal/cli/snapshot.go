package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/gn1blog/internal/db"
	"github.com/gn1blog/internal/service"
	"github.com/spf13/cobra"
)

func newSnapshotCommand(a *app) *cobra.Command {
	var (
		dbPath string
		list   bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store the current statistics in the database, or list stored ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = a.appCfg.DatabasePath
			}
			if err := db.Init(dbPath); err != nil {
				return fmt.Errorf("open database %s: %w", dbPath, err)
			}
			reports := service.NewReportService(db.DB)
			out := cmd.OutOrStdout()

			if list {
				snapshots, err := reports.List(limit)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tPOSTS\tCATEGORIES\tAUTHORS")
				for _, s := range snapshots {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", s.ID, s.CreatedAt.Format(time.RFC3339), s.Source, s.TotalPosts, s.TotalCategories, s.TotalAuthors)
				}
				return tw.Flush()
			}

			snapshot, err := reports.Record("cli", a.blog.Statistics(), a.blog.TranslationStatistics())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "snapshot %d recorded: %d posts\n", snapshot.ID, snapshot.TotalPosts)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default $DATABASE_PATH or gn1blog.db)")
	cmd.Flags().BoolVar(&list, "list", false, "list stored snapshots instead of recording one")
	cmd.Flags().IntVar(&limit, "limit", 20, "snapshots to list")
	return cmd
}
