package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/buildinfo"
	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

const usage = `Commands:
  register <name> <email> [age]   create an account and log in
  login [email]                   log in
  logout [--all]                  end this session (or every session)
  me                              show the current user
  add <description...>            create a task
  list [--completed=true|false] [--limit N] [--skip N] [--sort field:dir]
  done <id>                       mark a task completed
  undo <id>                       mark a task not completed
  rm <id>                         delete a task
  version                         print build information`

func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	case "version":
		buildinfo.PrintBuildData(a.out)
		return nil
	case "register":
		return a.Register(ctx, args)
	case "login":
		return a.Login(ctx, args)
	case "logout":
		return a.Logout(ctx, args)
	case "me":
		return a.Me(ctx)
	case "add":
		return a.Add(ctx, args)
	case "list", "l":
		return a.List(ctx, args)
	case "done":
		return a.setCompleted(ctx, args, true)
	case "undo":
		return a.setCompleted(ctx, args, false)
	case "rm":
		return a.Remove(ctx, args)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: register <name> <email> [age]")
	}

	u := models.NewUser{Name: args[0], Email: args[1]}
	if len(args) == 3 {
		age, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid age %q", args[2])
		}
		u.Age = age
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	u.Password = string(password)

	res, err := a.api.Register(ctx, u)
	if err != nil {
		return err
	}

	if err := a.session.Save(ctx, res.User.Email, res.Token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s <%s>\n", res.User.Name, res.User.Email)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	switch len(args) {
	case 0:
		var err error
		if email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	case 1:
		email = args[0]
	default:
		return errors.New("usage: login [email]")
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return err
	}

	if err := a.session.Save(ctx, res.User.Email, res.Token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", res.User.Email)
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	fs := newFlagSet("logout")
	all := fs.Bool("all", false, "revoke every session of the user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := a.token(ctx)
	if err != nil {
		return err
	}

	if *all {
		err = a.api.LogoutAll(ctx, tok)
	} else {
		err = a.api.Logout(ctx, tok)
	}
	if err != nil {
		return a.authFailed(ctx, err)
	}

	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}

	u, err := a.api.Me(ctx, tok)
	if err != nil {
		return a.authFailed(ctx, err)
	}

	printUser(a.out, u)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	desc := strings.TrimSpace(strings.Join(args, " "))
	if desc == "" {
		return errors.New("usage: add <description...>")
	}

	tok, err := a.token(ctx)
	if err != nil {
		return err
	}

	t, err := a.api.CreateTask(ctx, tok, models.NewTask{Description: desc})
	if err != nil {
		return a.authFailed(ctx, err)
	}

	printTasks(a.out, []models.Task{*t})
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	q, err := parseListArgs(args)
	if err != nil {
		return err
	}

	tok, err := a.token(ctx)
	if err != nil {
		return err
	}

	tasks, err := a.api.ListTasks(ctx, tok, q)
	if err != nil {
		return a.authFailed(ctx, err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	printTasks(a.out, tasks)
	return nil
}

func (a *App) setCompleted(ctx context.Context, args []string, completed bool) error {
	if len(args) != 1 {
		return errors.New("usage: done|undo <id>")
	}

	tok, err := a.token(ctx)
	if err != nil {
		return err
	}

	t, err := a.api.UpdateTask(ctx, tok, args[0], models.TaskPatch{Completed: &completed})
	if err != nil {
		return a.authFailed(ctx, err)
	}

	printTasks(a.out, []models.Task{*t})
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: rm <id>")
	}

	tok, err := a.token(ctx)
	if err != nil {
		return err
	}

	t, err := a.api.DeleteTask(ctx, tok, args[0])
	if err != nil {
		return a.authFailed(ctx, err)
	}

	fmt.Fprintf(a.out, "Deleted %s\n", t.ID)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseListArgs reads the list filters. --completed accepts only true or
// false; --sort takes the same field:dir form as the sortBy query parameter.
func parseListArgs(args []string) (models.TaskQuery, error) {
	var q models.TaskQuery

	fs := newFlagSet("list")
	completed := fs.String("completed", "", "true or false")
	fs.IntVar(&q.Limit, "limit", 0, "maximum number of tasks")
	fs.IntVar(&q.Skip, "skip", 0, "number of tasks to skip")
	sort := fs.String("sort", "", "field:asc|desc")

	if err := fs.Parse(args); err != nil {
		return q, err
	}
	if fs.NArg() > 0 {
		return q, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if *completed != "" {
		c, err := strconv.ParseBool(*completed)
		if err != nil {
			return q, fmt.Errorf("invalid --completed value %q", *completed)
		}
		q.Completed = &c
	}
	if q.Limit < 0 || q.Skip < 0 {
		return q, errors.New("--limit and --skip must not be negative")
	}
	if *sort != "" {
		field, dir, _ := strings.Cut(*sort, ":")
		q.SortBy = field
		q.SortDesc = dir == "desc"
	}
	return q, nil
}
