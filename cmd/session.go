package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahana/lingo/internal/api"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		email, password, err := credentialArgs(cmd)
		if err != nil {
			return err
		}

		if err := session.Register(cmd.Context(), email, password); err != nil {
			var valErr *api.ValidationError
			if errors.As(err, &valErr) {
				return fmt.Errorf("registration rejected: %s", valErr.Error())
			}
			return err
		}

		fmt.Println("Account created. Run `lingo login` to sign in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		email, password, err := credentialArgs(cmd)
		if err != nil {
			return err
		}

		if err := session.Login(cmd.Context(), email, password); err != nil {
			var authErr *api.AuthError
			if errors.As(err, &authErr) {
				return fmt.Errorf("login failed: invalid credentials")
			}
			return err
		}

		fmt.Printf("Signed in as %s.\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd)
		if err != nil {
			return err
		}
		session.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		user, err := session.Client().Me(cmd.Context())
		if err != nil {
			var authErr *api.AuthError
			if errors.As(err, &authErr) {
				return fmt.Errorf("not signed in")
			}
			return err
		}

		fmt.Printf("%s (id %s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().String("email", "", "Account email")
		c.Flags().String("password", "", "Account password (prompted when omitted)")
	}
}

// credentialArgs reads email/password from flags, prompting on stdin for
// anything missing.
func credentialArgs(cmd *cobra.Command) (email, password string, err error) {
	email, _ = cmd.Flags().GetString("email")
	password, _ = cmd.Flags().GetString("password")

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}
