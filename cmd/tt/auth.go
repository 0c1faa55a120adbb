package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/internal/ui"
	"github.com/MatheusDosSantosR/tasktracker/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var loginPassword string

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegister,
}

var registerPassword string

var recoverCmd = &cobra.Command{
	Use:   "recover-password <email>",
	Short: "Request a password recovery email",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecover,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd, recoverCmd)

	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, store, _, err := newClient()
	if err != nil {
		return err
	}

	password := loginPassword
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	creds, err := client.Login(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}

	err = store.Save(&session.Session{
		Token:      creds.Token,
		User:       creds.User,
		LoggedInAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("Logged in as %s <%s>\n", creds.User.Name, creds.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := sessionStore()
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	store, err := sessionStore()
	if err != nil {
		return err
	}

	sess, err := store.Current()
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", sess.User.Name, sess.User.Email)
	if !sess.LoggedInAt.IsZero() {
		fmt.Printf("Logged in %s\n", ui.FormatTimeAgo(sess.LoggedInAt, time.Now()))
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	password := registerPassword
	if password == "" {
		password, err = promptPassword("Password: ")
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
	}

	if err := client.Register(cmd.Context(), args[0], args[1], password); err != nil {
		return err
	}

	fmt.Printf("Account created for %s. Run 'tt login %s' to log in.\n", args[1], args[1])
	return nil
}

func runRecover(cmd *cobra.Command, args []string) error {
	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	if err := client.RecoverPassword(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Recovery email requested for %s.\n", args[0])
	return nil
}

// promptPassword reads a password without echo when stdin is a terminal, and
// falls back to reading a line otherwise.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(data), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
