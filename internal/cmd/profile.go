package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuskit/campusctl/internal/user"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or update your profile",
	Long: `View or update the profile of the signed-in user.

Subcommands:
  view    Show the current profile
  update  Change profile attributes

Examples:
  campusctl profile view
  campusctl profile update --name "Ada King" --department Mathematics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var profileViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		state, err := requireSession(mgr)
		if err != nil {
			return err
		}

		u := state.User
		fmt.Printf("Name:       %s\n", u.Name)
		fmt.Printf("Email:      %s\n", u.Email)
		fmt.Printf("Role:       %s\n", u.Role)
		fmt.Printf("Mobile:     %s\n", u.MobileNumber)
		fmt.Printf("Department: %s\n", u.Department)
		if u.Role == user.RoleStudent {
			fmt.Printf("Points:     %d\n", u.PointsValue())
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change profile attributes",
	Long: `Change profile attributes. Only the given flags are sent; everything
else keeps its current value.

Examples:
  campusctl profile update --name "Ada King"
  campusctl profile update --email ada@campus.edu --mobile 5550004321`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd user.ProfileUpdate
		upd.Name, _ = cmd.Flags().GetString("name")
		upd.Email, _ = cmd.Flags().GetString("email")
		upd.MobileNumber, _ = cmd.Flags().GetString("mobile")
		upd.Department, _ = cmd.Flags().GetString("department")

		if upd.Empty() {
			return fmt.Errorf("nothing to update; pass at least one of --name, --email, --mobile, --department")
		}

		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		if _, err := requireSession(mgr); err != nil {
			return err
		}

		rec, err := mgr.UpdateProfile(cmd.Context(), upd)
		if err != nil {
			return err
		}

		fmt.Printf("Profile updated for %s.\n", rec.Name)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().String("name", "", "Full name")
	profileUpdateCmd.Flags().String("email", "", "Email address")
	profileUpdateCmd.Flags().String("mobile", "", "Mobile number, 10 digits")
	profileUpdateCmd.Flags().String("department", "", "Department")

	rootCmd.AddCommand(profileCmd)
}
