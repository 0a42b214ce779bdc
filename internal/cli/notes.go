package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"studybuddy/internal/board"

	"github.com/urfave/cli/v2"
)

func notesCommand() *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "browse and manage study notes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all notes, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "filter by title"},
					&cli.StringFlag{Name: "subject", Usage: "filter by subject"},
				},
				Action: listNotes,
			},
			{
				Name:   "mine",
				Usage:  "list the notes you uploaded",
				Action: listMine,
			},
			{
				Name:      "show",
				Usage:     "show one note",
				ArgsUsage: "<note-id>",
				Action:    showNote,
			},
			{
				Name:      "upvote",
				Usage:     "upvote a note",
				ArgsUsage: "<note-id>",
				Action:    upvoteNote,
			},
			{
				Name:      "delete",
				Usage:     "delete a note and its file",
				ArgsUsage: "<note-id>",
				Action:    deleteNote,
			},
			{
				Name:      "upload",
				Usage:     "upload a PDF",
				ArgsUsage: "<file.pdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "subject", Required: true},
				},
				Action: uploadNote,
			},
			{
				Name:   "subjects",
				Usage:  "list subjects",
				Action: listSubjects,
			},
		},
	}
}

func noteArg(c *cli.Context) (string, error) {
	id := c.Args().First()
	if id == "" {
		return "", fmt.Errorf("missing note id")
	}
	return id, nil
}

func listNotes(c *cli.Context) error {
	e := getEnv(c)
	if err := e.board.Load(c.Context); err != nil {
		return err
	}
	renderNotes(e.out, e.board.Filter(c.String("search"), c.String("subject")))
	return nil
}

func listMine(c *cli.Context) error {
	e := getEnv(c)
	user, err := e.requireUser()
	if err != nil {
		return err
	}
	if err := e.board.LoadMine(c.Context, user); err != nil {
		return err
	}
	renderNotes(e.out, e.board.Notes())
	return nil
}

func showNote(c *cli.Context) error {
	e := getEnv(c)
	id, err := noteArg(c)
	if err != nil {
		return err
	}
	v, err := e.board.FetchNoteWithUpvoteStatus(c.Context, id, e.session.Current())
	if err != nil {
		return err
	}
	renderNote(e.out, v)
	return nil
}

func upvoteNote(c *cli.Context) error {
	e := getEnv(c)
	id, err := noteArg(c)
	if err != nil {
		return err
	}
	user := e.session.Current()
	if user == nil {
		return fmt.Errorf("%w to upvote: run studybuddy auth signin", board.ErrNotAuthenticated)
	}
	if _, err := e.board.FetchNoteWithUpvoteStatus(c.Context, id, user); err != nil {
		return err
	}

	res, err := e.board.Upvote(c.Context, id, user)
	switch {
	case errors.Is(err, board.ErrUpvoteFailed):
		return fmt.Errorf("failed to upvote, please try again: %w", err)
	case err != nil:
		return err
	}
	if res.Status == board.StatusAlreadyUpvoted {
		fmt.Fprintf(e.out, "%s you have already upvoted this note (%d upvotes)\n", yellow("!"), res.Upvotes)
		return nil
	}
	fmt.Fprintf(e.out, "%s upvoted (%d upvotes)\n", green("✓"), res.Upvotes)
	return nil
}

func deleteNote(c *cli.Context) error {
	e := getEnv(c)
	id, err := noteArg(c)
	if err != nil {
		return err
	}
	user, err := e.requireUser()
	if err != nil {
		return err
	}
	if _, err := e.board.FetchNoteWithUpvoteStatus(c.Context, id, nil); err != nil {
		return err
	}

	res, err := e.board.Delete(c.Context, id, user)
	switch {
	case errors.Is(err, board.ErrDeleteFailed):
		return fmt.Errorf("failed to delete the note, it has been restored: %w", err)
	case err != nil:
		return err
	}
	renderWarnings(e.out, res.Warnings)
	fmt.Fprintf(e.out, "%s deleted %s\n", green("✓"), id)
	return nil
}

func uploadNote(c *cli.Context) error {
	e := getEnv(c)
	user, err := e.requireUser()
	if err != nil {
		return err
	}
	file := c.Args().First()
	if file == "" {
		return fmt.Errorf("missing file")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	note, err := e.board.Upload(c.Context, user, board.UploadInput{
		Title:    c.String("title"),
		Subject:  c.String("subject"),
		FileName: filepath.Base(file),
		Data:     data,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s uploaded %s (%s)\n", green("✓"), bold(note.Title), faint(note.ID))
	return nil
}

func listSubjects(c *cli.Context) error {
	e := getEnv(c)
	subjects, err := e.notes.ListSubjects(c.Context)
	if err != nil {
		return err
	}
	renderSubjects(e.out, subjects)
	return nil
}
