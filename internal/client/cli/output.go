package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

func printTasks(w io.Writer, tasks []models.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tCREATED\tDESCRIPTION")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\n", t.ID, done, t.CreatedAt.Local().Format(time.DateTime), t.Description)
	}
	_ = tw.Flush()
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "ID:      %s\n", u.ID)
	fmt.Fprintf(w, "Name:    %s\n", u.Name)
	fmt.Fprintf(w, "Email:   %s\n", u.Email)
	fmt.Fprintf(w, "Age:     %d\n", u.Age)
	fmt.Fprintf(w, "Created: %s\n", u.CreatedAt.Local().Format(time.DateTime))
}
