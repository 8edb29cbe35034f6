package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campuskit/campusctl/internal/user"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "View the student roster and assign points",
	Long: `View the student roster and assign points.

Assigning points needs a teacher or admin session; the leaderboard is open
to everyone signed in.

Examples:
  campusctl students list
  campusctl students rank
  campusctl students points <student-id> 120`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all students",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		students, err := client.ListStudents(cmd.Context())
		if err != nil {
			return err
		}

		printStudents(students, false)
		return nil
	},
}

var studentsRankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the leaderboard",
	Long:  `Show all students ordered by points, highest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		students, err := client.Ranking(cmd.Context())
		if err != nil {
			return err
		}

		printStudents(students, true)
		return nil
	},
}

var studentsPointsCmd = &cobra.Command{
	Use:   "points <student-id> <points>",
	Short: "Set a student's points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var points int
		if _, err := fmt.Sscanf(args[1], "%d", &points); err != nil || points < 0 {
			return fmt.Errorf("points must be a non-negative whole number")
		}

		mgr, client, err := newManager()
		if err != nil {
			return err
		}
		state, err := requireSession(mgr)
		if err != nil {
			return err
		}
		if state.User.Role == user.RoleStudent {
			return fmt.Errorf("students cannot assign points")
		}

		if err := client.AddPoints(cmd.Context(), args[0], points); err != nil {
			return err
		}

		fmt.Println("Points updated.")
		return nil
	},
}

func printStudents(students []user.Record, ranked bool) {
	if len(students) == 0 {
		fmt.Println("No students.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if ranked {
		fmt.Fprintln(w, "RANK\tNAME\tEMAIL\tPOINTS")
		for i, s := range students {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, s.Name, s.Email, s.PointsValue())
		}
	} else {
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT\tPOINTS")
		for _, s := range students {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, s.Department, s.PointsValue())
		}
	}
	w.Flush()
}

func init() {
	studentsCmd.AddCommand(studentsListCmd)
	studentsCmd.AddCommand(studentsRankCmd)
	studentsCmd.AddCommand(studentsPointsCmd)

	rootCmd.AddCommand(studentsCmd)
}
