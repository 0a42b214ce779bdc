package cli

import (
	"fmt"
	"io"
	"strings"

	"studybuddy/internal/board"
	"studybuddy/types"

	"github.com/fatih/color"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

const timeLayout = "2006-01-02 15:04"

func renderNotes(w io.Writer, notes []types.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, faint("No notes found."))
		return
	}
	for _, n := range notes {
		fmt.Fprintf(w, "  %s  %s  %s\n", faint(n.ID), bold(n.Title), cyan(n.Subject))
		fmt.Fprintf(w, "      %s %s  %s %s  %s %d\n",
			faint("by"), n.UserEmail,
			faint("on"), n.CreatedAt.Local().Format(timeLayout),
			faint("▲"), n.Upvotes)
	}
}

func renderNote(w io.Writer, v board.NoteView) {
	n := v.Note
	fmt.Fprintf(w, "%s\n", bold(n.Title))
	fmt.Fprintf(w, "%s %s\n", faint("ID:"), n.ID)
	fmt.Fprintf(w, "%s %s\n", faint("Subject:"), cyan(n.Subject))
	fmt.Fprintf(w, "%s %s\n", faint("Uploaded by:"), n.UserEmail)
	fmt.Fprintf(w, "%s %s\n", faint("Created:"), n.CreatedAt.Local().Format(timeLayout))
	upvotes := fmt.Sprintf("%d", n.Upvotes)
	if v.HasUpvoted {
		upvotes += " " + green("(you upvoted)")
	}
	fmt.Fprintf(w, "%s %s\n", faint("Upvotes:"), upvotes)
	if n.FileURL != nil {
		fmt.Fprintf(w, "%s %s\n", faint("File:"), *n.FileURL)
	} else {
		fmt.Fprintf(w, "%s %s\n", faint("File:"), faint("none"))
	}
}

func renderSubjects(w io.Writer, subjects []string) {
	if len(subjects) == 0 {
		fmt.Fprintln(w, faint("No subjects yet."))
		return
	}
	for _, s := range subjects {
		fmt.Fprintf(w, "  %s\n", cyan(s))
	}
}

func renderUsers(w io.Writer, users []*types.AdminUser) {
	if len(users) == 0 {
		fmt.Fprintln(w, faint("No users."))
		return
	}
	for _, u := range users {
		role := u.Role
		if role == "admin" {
			role = yellow(role)
		}
		fmt.Fprintf(w, "  %s  %-32s %-6s %s %d\n", faint(u.ID), u.Email, role, faint("notes:"), u.ResourceCount)
	}
}

func renderWarnings(w io.Writer, warnings []board.StorageDeleteWarning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s %s\n", yellow("warning:"), warn.Error())
	}
}

func renderError(w io.Writer, err error) {
	msg := strings.TrimSpace(err.Error())
	fmt.Fprintf(w, "%s %s\n", red("error:"), msg)
}
