package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// runREPL reads commands line by line until EOF, "exit" or "quit".
// Command errors are printed and the loop continues.
func (a *App) runREPL(ctx context.Context) {
	fmt.Fprintln(a.out, "taskctl (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "taskctl%s> ", a.status(ctx))

		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(a.out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		if err := a.exec(ctx, parts[0], parts[1:]); err != nil {
			fmt.Fprintln(a.out, "Error:", err)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// status shows the logged in email in the prompt.
func (a *App) status(ctx context.Context) string {
	email, err := a.session.Email(ctx)
	if err != nil || email == "" {
		return ""
	}
	tok, err := a.session.Token(ctx)
	if err != nil || tok == "" {
		return ""
	}
	return " (" + email + ")"
}
