package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func newMaterializeCmd() *cobra.Command {
	var (
		flagDate string
		flagUser string
	)

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Create pending occurrences for lapsed recurring expenses",
		Long:  "Materialize pending recurring expenses up to --date (default today, used to backfill missed runs) for one user or every user with active definitions.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var date *valueobject.Date
			if flagDate != "" {
				parsed, err := valueobject.ParseDate(flagDate)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				date = &parsed
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			var users []uuid.UUID
			if flagUser != "" {
				id, err := resolveUser(cmd.Context(), a.Repositories.Users, flagUser)
				if err != nil {
					return err
				}
				users = []uuid.UUID{id}
			} else {
				users, err = a.Repositories.Recurring.FindUsersWithActive(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list users: %w", err)
				}
			}

			return materializeUsers(cmd.Context(), cmd.OutOrStdout(), a.Materialize, users, date)
		},
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "Materialize through this past date (YYYY-MM-DD, not after today)")
	cmd.Flags().StringVar(&flagUser, "user", "", "Only this user (id or email)")
	return cmd
}

func materializeUsers(ctx context.Context, out io.Writer, uc *recurring.MaterializePendingUseCase, users []uuid.UUID, date *valueobject.Date) error {
	var created, advanced, busy int
	var errs []error

	for _, userID := range users {
		output, err := uc.Execute(ctx, recurring.MaterializePendingInput{UserID: userID, Date: date})
		if errors.Is(err, domainerror.ErrMaterializationInProgress) {
			busy++
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", userID, err))
			continue
		}
		created += output.Inserted
		advanced += output.Advanced
		if output.Inserted > 0 {
			fmt.Fprintf(out, "%s: %d pending created\n", userID, output.Inserted)
		}
	}

	fmt.Fprintf(out, "Users: %d  Pending created: %d  Definitions advanced: %d  Skipped (locked): %d\n",
		len(users), created, advanced, busy)
	return errors.Join(errs...)
}

// resolveUser accepts a user id or an email address.
func resolveUser(ctx context.Context, users adapter.UserRepository, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(ref)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("user %q not found: %w", ref, err)
	}
	return user.ID, nil
}
