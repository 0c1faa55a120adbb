package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/api"
	"github.com/MatheusDosSantosR/tasktracker/internal/ui"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the account profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the account profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileShowJSON bool

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

var (
	profileUpdateName     string
	profileUpdateEmail    string
	profileUpdatePassword bool
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)

	profileShowCmd.Flags().BoolVar(&profileShowJSON, "json", false, "Output as JSON")

	profileUpdateCmd.Flags().StringVar(&profileUpdateName, "name", "", "New display name")
	profileUpdateCmd.Flags().StringVar(&profileUpdateEmail, "email", "", "New email address")
	profileUpdateCmd.Flags().BoolVar(&profileUpdatePassword, "password", false, "Prompt for a new password")
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	profile, err := client.GetProfile(cmd.Context())
	if err != nil {
		return err
	}

	if profileShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	fmt.Printf("Name:  %s\n", profile.Name)
	fmt.Printf("Email: %s\n", profile.Email)
	if !profile.CreatedAt.IsZero() {
		fmt.Printf("Member since %s (%s)\n",
			profile.CreatedAt.Format("2006-01-02"),
			ui.FormatTimeAgo(profile.CreatedAt, time.Now()))
	}
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	var update api.ProfileUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &profileUpdateName
	}
	if cmd.Flags().Changed("email") {
		update.Email = &profileUpdateEmail
	}
	if profileUpdatePassword {
		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
		update.Password = &password
	}

	if update.IsZero() {
		return fmt.Errorf("nothing to update (pass --name, --email, or --password)")
	}

	if err := client.UpdateProfile(cmd.Context(), update); err != nil {
		return err
	}

	fmt.Println("Profile updated.")
	return nil
}
