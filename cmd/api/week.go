package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

func newWeekCommand(configPath *string) *cobra.Command {
	week := &cobra.Command{
		Use:   "week",
		Short: "Bulk operations on a planning week",
	}
	week.AddCommand(newWeekCopyCommand(configPath))
	week.AddCommand(newWeekDeleteCommand(configPath))
	return week
}

func newWeekCopyCommand(configPath *string) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Replace a week with a copy of another week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.planningService()
			if err != nil {
				return err
			}

			result, err := svc.CopyWeek(cmd.Context(), planning.CopyWeekRequest{
				SourceMonday: from,
				TargetMonday: to,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "copied %d schedules and %d store hours from %s to %s\n",
				len(result.Schedules), len(result.StoreHours), result.SourceMonday, result.TargetMonday)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Monday of the source week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Monday of the target week (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newWeekDeleteCommand(configPath *string) *cobra.Command {
	var monday string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove every schedule and store-hours override of a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, ok := validator.IsValidDate(monday)
			if !ok {
				return fmt.Errorf("--week must be in YYYY-MM-DD format")
			}

			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.planningService()
			if err != nil {
				return err
			}
			if err := svc.DeleteWeek(cmd.Context(), date); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted week of %s\n", monday)
			return nil
		},
	}
	cmd.Flags().StringVar(&monday, "week", "", "Monday of the week to delete (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("week")
	return cmd
}
