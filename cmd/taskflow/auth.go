package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			a.session.Initialize(ctx)
			user, err := a.session.Login(ctx, domain.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and erase the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			a.session.Initialize(ctx)
			a.session.Logout(ctx)
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			a.session.Initialize(ctx)
			snap := a.session.Snapshot()
			if !snap.IsAuthenticated {
				return fmt.Errorf("not logged in")
			}

			fmt.Printf("%s <%s>\nrole: %s\n", snap.User.Name, snap.User.Email, snap.User.Role)
			return nil
		},
	}
}
