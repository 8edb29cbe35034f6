package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/user"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse and manage courses",
	Long: `Browse and manage the course catalog.

Students enroll with 'courses enroll' and list their own courses with
'courses mine'. Creating courses and listing enrollments need a teacher or
admin session.

Examples:
  campusctl courses list
  campusctl courses enroll <course-id>
  campusctl courses mine
  campusctl courses create --title "Linear Algebra" --department Mathematics
  campusctl courses enrollments <course-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		courses, err := client.ListCourses(cmd.Context())
		if err != nil {
			return err
		}

		printCourses(courses)
		return nil
	},
}

var coursesEnrollCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, client, err := newManager()
		if err != nil {
			return err
		}
		state, err := requireSession(mgr)
		if err != nil {
			return err
		}
		if state.User.Role != user.RoleStudent {
			return fmt.Errorf("only students can enroll in courses")
		}

		if err := client.Enroll(cmd.Context(), args[0], state.User.ID); err != nil {
			return err
		}

		fmt.Println("Enrolled.")
		return nil
	},
}

var coursesMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the courses you are enrolled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, client, err := newManager()
		if err != nil {
			return err
		}
		state, err := requireSession(mgr)
		if err != nil {
			return err
		}
		if state.User.Role != user.RoleStudent {
			return fmt.Errorf("only students have enrollments")
		}

		courses, err := client.StudentCourses(cmd.Context(), state.User.ID)
		if err != nil {
			return err
		}

		printCourses(courses)
		return nil
	},
}

var coursesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a course",
	Long: `Create a course in the catalog.

Examples:
  campusctl courses create --title "Linear Algebra" --department Mathematics \
    --description "Vectors, matrices, and linear maps" --capacity 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var in api.CourseInput
		in.Title, _ = cmd.Flags().GetString("title")
		in.Description, _ = cmd.Flags().GetString("description")
		in.Department, _ = cmd.Flags().GetString("department")
		if capacity, _ := cmd.Flags().GetInt("capacity"); capacity > 0 {
			in.Capacity = &capacity
		}

		if in.Title == "" {
			return fmt.Errorf("--title is required")
		}
		if in.Department == "" {
			return fmt.Errorf("--department is required")
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
			return fmt.Errorf("students cannot create courses")
		}
		in.CreatedBy = state.User.ID

		course, err := client.CreateCourse(cmd.Context(), in)
		if err != nil {
			return err
		}

		fmt.Printf("Created course %s (%s).\n", course.Title, course.ID)
		return nil
	},
}

var coursesEnrollmentsCmd = &cobra.Command{
	Use:   "enrollments <course-id>",
	Short: "List the students enrolled in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		rolls, err := client.CourseEnrollments(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(rolls) == 0 {
			fmt.Println("No enrollments.")
			return nil
		}
		for _, e := range rolls {
			fmt.Println(e.StudentID)
		}
		return nil
	},
}

func printCourses(courses []api.Course) {
	if len(courses) == 0 {
		fmt.Println("No courses.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDEPARTMENT\tDESCRIPTION")
	for _, c := range courses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Department, c.Description)
	}
	w.Flush()
}

func init() {
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesEnrollCmd)
	coursesCmd.AddCommand(coursesMineCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesEnrollmentsCmd)

	coursesCreateCmd.Flags().String("title", "", "Course title (required)")
	coursesCreateCmd.Flags().String("description", "", "Course description")
	coursesCreateCmd.Flags().String("department", "", "Department (required)")
	coursesCreateCmd.Flags().Int("capacity", 0, "Maximum enrollment")

	rootCmd.AddCommand(coursesCmd)
}
