package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuskit/campusctl/internal/user"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the campus session",
	Long: `Manage the campus session.

The auth command provides subcommands for registering, signing in, signing
out, and checking the current session.

The session is stored in the system keyring (with an encrypted file
fallback under ~/.campusctl) and restored automatically the next time any
command runs.

Subcommands:
  register  Create a new student account
  login     Sign in with email and password
  logout    Sign out and remove the stored session
  status    Show the current session

Examples:
  campusctl auth register --email user@campus.edu --name "Ada Lovelace"
  campusctl auth login --email user@campus.edu --password mypass
  campusctl auth status
  campusctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the campus platform",
	Long: `Sign in to the campus platform with your email and password.

On success the session is stored and later commands run as you until you
sign out.

Examples:
  campusctl auth login --email user@campus.edu --password mypass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		mgr, _, err := newManager()
		if err != nil {
			return err
		}

		rec, err := mgr.SignIn(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s (%s)\n", rec.Name, rec.Role)
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new student account",
	Long: `Create a new student account and sign in with it.

All fields are required. The mobile number must be 10 digits and the
password at least 6 characters.

Examples:
  campusctl auth register \
    --email user@campus.edu --password mypass \
    --name "Ada Lovelace" --gender female \
    --mobile 5550001234 --dob 2001-12-10 --department "Computer Science"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := user.RegisterInput{}
		in.Email, _ = cmd.Flags().GetString("email")
		in.Password, _ = cmd.Flags().GetString("password")
		in.Name, _ = cmd.Flags().GetString("name")
		in.Gender, _ = cmd.Flags().GetString("gender")
		in.MobileNumber, _ = cmd.Flags().GetString("mobile")
		in.DateOfBirth, _ = cmd.Flags().GetString("dob")
		in.Department, _ = cmd.Flags().GetString("department")

		mgr, _, err := newManager()
		if err != nil {
			return err
		}

		rec, err := mgr.Register(cmd.Context(), in)
		if err != nil {
			return err
		}

		fmt.Printf("Account created. Signed in as %s.\n", rec.Name)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Long: `Sign out and remove the stored session.

Examples:
  campusctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}

		mgr.CheckSession()
		state := mgr.State().Current()
		if !state.Authenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		email := state.User.Email
		mgr.Logout()

		fmt.Printf("Signed out %s.\n", email)
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show who is signed in, their role, and where the API points.

Examples:
  campusctl auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}

		mgr.CheckSession()
		state := mgr.State().Current()

		fmt.Printf("API: %s\n", cfg.API.BaseURL)
		if !state.Authenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		fmt.Printf("Signed in as: %s <%s>\n", state.User.Name, state.User.Email)
		fmt.Printf("Role: %s\n", state.User.Role)
		if state.User.Role == user.RoleStudent {
			fmt.Printf("Points: %d\n", state.User.PointsValue())
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("email", "", "Email address (required)")
	authLoginCmd.Flags().String("password", "", "Password (required)")

	authRegisterCmd.Flags().String("email", "", "Email address (required)")
	authRegisterCmd.Flags().String("password", "", "Password, at least 6 characters (required)")
	authRegisterCmd.Flags().String("name", "", "Full name (required)")
	authRegisterCmd.Flags().String("gender", "", "Gender: male, female, or other (required)")
	authRegisterCmd.Flags().String("mobile", "", "Mobile number, 10 digits (required)")
	authRegisterCmd.Flags().String("dob", "", "Date of birth, YYYY-MM-DD (required)")
	authRegisterCmd.Flags().String("department", "", "Department (required)")

	rootCmd.AddCommand(authCmd)
}
