package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func newStatusCmd() *cobra.Command {
	var flagUser string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a user's active budget status and pending recurring expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			userID, err := resolveUser(cmd.Context(), a.Repositories.Users, flagUser)
			if err != nil {
				return err
			}
			return printStatus(cmd.Context(), cmd.OutOrStdout(), a.BudgetStatus, a.ListPending, userID)
		},
	}

	cmd.Flags().StringVar(&flagUser, "user", "", "User id or email")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printStatus(
	ctx context.Context,
	out io.Writer,
	statusUC *budget.GetBudgetStatusUseCase,
	pendingUC *recurring.ListPendingUseCase,
	userID uuid.UUID,
) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	status, err := statusUC.Execute(ctx, budget.GetBudgetStatusInput{UserID: userID})
	switch {
	case errors.Is(err, domainerror.ErrNoActiveBudget):
		fmt.Fprintln(w, "Budget:\tnone active")
	case err != nil:
		return err
	default:
		s := status.Status
		fmt.Fprintf(w, "Budget:\t%s (%s to %s)\n", s.Budget.Name, s.Budget.StartDate, s.Budget.EffectiveEndDate())
		fmt.Fprintf(w, "Spent:\t%s of %s (%s%%, %s)\n", s.Spent.StringFixed(2), s.Budget.Amount.StringFixed(2), s.Percentage.StringFixed(1), s.Status)
		fmt.Fprintf(w, "Days:\t%d elapsed, %d remaining\n", s.DaysElapsed, s.DaysRemaining)
		fmt.Fprintf(w, "Daily:\tavg %s, recommended %s\n", s.AverageDailySpending.StringFixed(2), s.RecommendedDailyLimit.StringFixed(2))
		fmt.Fprintf(w, "Projected:\t%s\n", s.ProjectedTotal.StringFixed(2))
		if status.EmergencyBufferPercent > 0 {
			fmt.Fprintf(w, "Buffer:\t%d%% (%s)\n", status.EmergencyBufferPercent, status.EmergencyBufferAmount.StringFixed(2))
		}
	}

	pending, err := pendingUC.Execute(ctx, recurring.ListPendingInput{UserID: userID})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Pending:\t%d\n", len(pending.Items))
	for _, item := range pending.Items {
		p := item.Pending
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", p.ScheduledDate, p.Description, p.Amount.StringFixed(2), item.Status)
	}
	for _, warning := range pending.Warnings {
		fmt.Fprintf(w, "Warning:\t%s\n", warning)
	}

	return w.Flush()
}
