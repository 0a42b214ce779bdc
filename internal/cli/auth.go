package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "password",
		Aliases:  []string{"p"},
		Required: true,
		EnvVars:  []string{"STUDYBUDDY_PASSWORD"},
	}
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "sign in, sign up and manage your password",
		Subcommands: []*cli.Command{
			{
				Name:      "signup",
				ArgsUsage: "<email>",
				Flags:     []cli.Flag{passwordFlag()},
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					profile, err := e.session.SignUp(c.Context, c.Args().First(), c.String("password"))
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "%s account created for %s\n", green("✓"), profile.Email)
					if profile.ConfirmedAt == nil {
						fmt.Fprintln(e.out, faint("Check your inbox to confirm the email address."))
					}
					return nil
				},
			},
			{
				Name:      "signin",
				ArgsUsage: "<email>",
				Flags:     []cli.Flag{passwordFlag()},
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					user, err := e.session.SignIn(c.Context, c.Args().First(), c.String("password"))
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "%s signed in as %s (%s)\n", green("✓"), user.Email, user.Role)
					return nil
				},
			},
			{
				Name: "signout",
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					if err := e.session.SignOut(); err != nil {
						return err
					}
					fmt.Fprintln(e.out, "signed out")
					return nil
				},
			},
			{
				Name:  "whoami",
				Usage: "show the signed-in user, refreshing the role",
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					if e.session.Current() == nil {
						fmt.Fprintln(e.out, faint("not signed in"))
						return nil
					}
					user, err := e.session.Refresh(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "%s %s (%s)\n", faint(user.ID), user.Email, user.Role)
					return nil
				},
			},
			{
				Name:      "reset-password",
				Usage:     "email a password reset token",
				ArgsUsage: "<email>",
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					if err := e.session.RequestPasswordReset(c.Context, c.Args().First()); err != nil {
						return err
					}
					fmt.Fprintln(e.out, "If the address is registered, a reset link is on its way.")
					return nil
				},
			},
			{
				Name:  "confirm-reset",
				Usage: "set a new password with a reset token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Required: true},
					passwordFlag(),
				},
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					if err := e.session.ResetPassword(c.Context, c.String("token"), c.String("password")); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "%s password updated, you can sign in now\n", green("✓"))
					return nil
				},
			},
			{
				Name:  "password",
				Usage: "change your password",
				Flags: []cli.Flag{passwordFlag()},
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					if err := e.session.UpdatePassword(c.Context, c.String("password")); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "%s password updated\n", green("✓"))
					return nil
				},
			},
		},
	}
}
