// Package cli is the StudyBuddy command line front end.
package cli

import (
	"fmt"
	"io"
	"os"

	"studybuddy/internal/board"
	"studybuddy/internal/client"
	"studybuddy/internal/session"
	"studybuddy/pkg/log"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const envKey = "env"

// env is built once per invocation and shared by every command.
type env struct {
	api     *client.API
	session *session.Provider
	board   *board.Board
	notes   *client.Notes
	admin   *client.Admin
	out     io.Writer

	unsubscribe func()
}

func getEnv(c *cli.Context) *env {
	return c.App.Metadata[envKey].(*env)
}

// NewApp assembles the CLI. out receives command output.
func NewApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "studybuddy",
		Usage:     "browse, upload and upvote study notes",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   client.DefaultBaseURL,
				Usage:   "platform API base URL",
				EnvVars: []string{"STUDYBUDDY_API"},
			},
			&cli.StringFlag{
				Name:    "session-file",
				Usage:   "where the signed-in session is kept",
				EnvVars: []string{"STUDYBUDDY_SESSION"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log requests and state changes",
			},
		},
		Before: func(c *cli.Context) error {
			e, err := setup(c, out)
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]any{envKey: e}
			return nil
		},
		After: func(c *cli.Context) error {
			if e, ok := c.App.Metadata[envKey].(*env); ok && e.unsubscribe != nil {
				e.unsubscribe()
			}
			return nil
		},
		Commands: []*cli.Command{
			notesCommand(),
			authCommand(),
			adminCommand(),
		},
	}
}

func setup(c *cli.Context, out io.Writer) (*env, error) {
	log.Redirect(os.Stderr)
	log.Level.SetLevel(zap.WarnLevel)
	if c.Bool("verbose") {
		log.Level.SetLevel(zap.DebugLevel)
	}

	path := c.String("session-file")
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	api := client.New(c.String("api"))
	provider, err := session.Open(session.NewStore(path), client.NewAuth(api))
	if err != nil {
		return nil, err
	}
	api.UseTokens(provider)

	notes := client.NewNotes(api)
	e := &env{
		api:     api,
		session: provider,
		board:   board.New(notes, client.NewFiles(api)),
		notes:   notes,
		admin:   client.NewAdmin(api),
		out:     out,
	}
	e.unsubscribe = provider.Subscribe(func(u *session.User) {
		if u == nil {
			log.L.Debug("signed out")
			return
		}
		log.L.Debug("signed in", zap.String("user_id", u.ID), zap.String("role", u.Role))
	})
	return e, nil
}

var errSignInFirst = fmt.Errorf("%w: run studybuddy auth signin", board.ErrNotAuthenticated)

// requireUser maps a missing session to a friendly error.
func (e *env) requireUser() (*session.User, error) {
	u := e.session.Current()
	if u == nil {
		return nil, errSignInFirst
	}
	return u, nil
}

// Run executes the CLI and returns the process exit code.
func Run(args []string) int {
	app := NewApp(os.Stdout)
	if err := app.Run(args); err != nil {
		renderError(os.Stderr, err)
		return 1
	}
	return 0
}
