package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:   "admin",
		Usage:  "user management, admins only",
		Before: requireAdmin,
		Subcommands: []*cli.Command{
			{
				Name:  "users",
				Usage: "list users and how many notes each uploaded",
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					users, err := e.admin.Users(c.Context)
					if err != nil {
						return err
					}
					renderUsers(e.out, users)
					return nil
				},
			},
			{
				Name:      "toggle-role",
				Usage:     "switch a user between user and admin",
				ArgsUsage: "<user-id>",
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					role, err := e.admin.ToggleRole(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintf(e.out, "%s role is now %s\n", green("✓"), role)
					return nil
				},
			},
			{
				Name:      "purge",
				Usage:     "delete every note a user uploaded",
				ArgsUsage: "<user-id>",
				Action: func(c *cli.Context) error {
					e := getEnv(c)
					resp, err := e.admin.PurgeNotes(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					for _, w := range resp.Warnings {
						fmt.Fprintf(e.out, "%s %s\n", yellow("warning:"), w)
					}
					fmt.Fprintf(e.out, "%s deleted %d notes\n", green("✓"), resp.Deleted)
					return nil
				},
			},
		},
	}
}

// requireAdmin refreshes the role first so a just-granted admin works at once.
func requireAdmin(c *cli.Context) error {
	e := getEnv(c)
	if e.session.Current() == nil {
		return errSignInFirst
	}
	user, err := e.session.Refresh(c.Context)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return errors.New("this command is for admins only")
	}
	return nil
}
