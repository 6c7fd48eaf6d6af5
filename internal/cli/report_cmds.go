package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mindtrack/internal/access"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
)

const dashboardDays = 7

type rangeFlags struct {
	from, to string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD (default: 6 days ago)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day, YYYY-MM-DD (default: today)")
}

func (f *rangeFlags) resolve() (entity.DateRange, error) {
	if f.from == "" && f.to == "" {
		return entity.LastDays(time.Now(), time.Local, dashboardDays), nil
	}
	if f.from == "" || f.to == "" {
		return entity.DateRange{}, errs.New(errs.ErrInvalidRange, "Pass both --from and --to.")
	}
	return entity.ParseDateRange(f.from, f.to)
}

func newSummaryCmd(rt *runtime) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Per-day habits completed and mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := rf.resolve()
			if err != nil {
				return userError(err)
			}

			summary, err := rt.tracker.Summarize(cmd.Context(), rng)
			if err != nil {
				return rt.reportError(cmd, err)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tHABITS DONE\tMOOD")
			for _, day := range summary.Days {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", day.Date, day.HabitsCompletedCount, formatMean(day.MeanMood))
			}
			_ = tw.Flush()

			fmt.Fprintf(out, "\nactive habits: %d  open goals: %d  weekly mood: %s\n",
				summary.TotalActiveHabits, summary.TotalActiveGoals, formatMean(summary.WeeklyMeanMood))
			return nil
		},
	}

	rf.register(cmd)
	return cmd
}

func newCorrelateCmd(rt *runtime) *cobra.Command {
	var (
		rf     rangeFlags
		habits []string
	)

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Mean mood on days each habit was done or missed",
		Long: `Compare your mood on days a habit was completed with days it was missed.

Examples:
  mindtrack correlate --habits 9b2c...,41de... --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := rf.resolve()
			if err != nil {
				return userError(err)
			}

			ids := make([]uuid.UUID, 0, len(habits))
			for _, raw := range habits {
				id, err := uuid.Parse(strings.TrimSpace(raw))
				if err != nil {
					return fmt.Errorf("invalid habit id %q", raw)
				}
				ids = append(ids, id)
			}

			report, err := rt.tracker.Correlate(cmd.Context(), ids, rng)
			if err != nil {
				return rt.reportError(cmd, err)
			}

			printCorrelation(cmd.OutOrStdout(), ids, report)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringSliceVar(&habits, "habits", nil, "comma separated habit ids")
	return cmd
}

func newDailyCmd(rt *runtime) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Consolidated habits and mood for each day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := rf.resolve()
			if err != nil {
				return userError(err)
			}

			days, err := rt.tracker.DailyDetails(cmd.Context(), rng)
			if err != nil {
				return rt.reportError(cmd, err)
			}

			out := cmd.OutOrStdout()
			for _, day := range days {
				mood := "-"
				if day.Mood != nil {
					mood = fmt.Sprint(*day.Mood)
				}
				fmt.Fprintf(out, "%s  mood %s\n", day.Date, mood)
				for _, h := range day.Habits {
					mark := " "
					if h.Completed {
						mark = "x"
					}
					fmt.Fprintf(out, "  [%s] %s\n", mark, h.Name)
				}
			}
			return nil
		},
	}

	rf.register(cmd)
	return cmd
}

func newUsersCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List all users (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := access.Decide(rt.store.Snapshot(), entity.RoleAdmin)
			if d.Verdict != access.Allow {
				printDecision(cmd.OutOrStdout(), d)
				return nil
			}

			users, err := rt.client.ListUsers(cmd.Context())
			if err != nil {
				return rt.reportError(cmd, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.DisplayName, u.Email, u.Role, u.Active)
			}
			return tw.Flush()
		},
	}
	cmd.AddCommand(newUserAccessCmd(rt))
	return cmd
}

func newUserAccessCmd(rt *runtime) *cobra.Command {
	var (
		role   string
		active bool
	)

	cmd := &cobra.Command{
		Use:   "access <user-id>",
		Short: "Change a user's role or active flag (admin only)",
		Example: `  mindtrack users access 5f0c6f0e-6f61-4c1d-9d0a-1b2c3d4e5f60 --role admin
  mindtrack users access 5f0c6f0e-6f61-4c1d-9d0a-1b2c3d4e5f60 --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			var patch entity.AccessPatch
			if cmd.Flags().Changed("role") {
				r, err := entity.ParseRole(role)
				if err != nil {
					return err
				}
				patch.Role = &r
			}
			if cmd.Flags().Changed("active") {
				patch.Active = &active
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass --role or --active")
			}

			d := access.Decide(rt.store.Snapshot(), entity.RoleAdmin)
			if d.Verdict != access.Allow {
				printDecision(cmd.OutOrStdout(), d)
				return nil
			}

			identity, err := rt.client.UpdateAccess(cmd.Context(), userID, patch)
			if err != nil {
				return rt.reportError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (active: %t)\n", identity.Email, identity.Role, identity.Active)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "new role: user or admin")
	cmd.Flags().BoolVar(&active, "active", true, "whether the account may log in")
	return cmd
}

// reportError prints the login redirect when the session is gone
func (rt *runtime) reportError(cmd *cobra.Command, err error) error {
	if !rt.store.Snapshot().Authenticated() {
		printDecision(cmd.OutOrStdout(), access.Decide(rt.store.Snapshot()))
	}
	return userError(err)
}

func printCorrelation(w io.Writer, order []uuid.UUID, report *entity.CorrelationReport) {
	fmt.Fprintf(w, "%s .. %s\n", report.PeriodStart, report.PeriodEnd)

	seen := make(map[uuid.UUID]bool, len(order))
	ids := make([]uuid.UUID, 0, len(report.Entries))
	for _, id := range order {
		if _, ok := report.Entries[id]; ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HABIT\tDONE\tMOOD DONE\tMISSED\tMOOD MISSED")
	for _, id := range ids {
		e := report.Entries[id]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", id, e.TotalCompletedDays, formatMean(e.MeanMoodOnCompletedDays),
			e.TotalMissedDays, formatMean(e.MeanMoodOnMissedDays))
	}
	_ = tw.Flush()
}

func formatMean(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
