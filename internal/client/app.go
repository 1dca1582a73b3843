package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/adapter"
	"github.com/MKhiriev/go-user-directory/internal/app"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/atotto/clipboard"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	directory adapter.DirectoryClient
	out       io.Writer

	// copyText puts text on the system clipboard.
	copyText func(text string) error

	commands map[string]command
	logger   *logger.Logger
}

func NewApp(directory adapter.DirectoryClient, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		directory: directory,
		out:       out,
		copyText:  clipboard.WriteAll,
		logger:    logger,
	}

	a.commands = map[string]command{
		"health":  {usage: "check that the server is up", run: a.health},
		"version": {usage: "print the server version", run: a.version},
		"login":   {usage: "-u NAME -p PASSWORD [-copy]  obtain a token", run: a.login},
		"profile": {usage: "show the authenticated user", run: a.profile},
		"users":   {usage: "[-page N] [-size N] [-query TEXT]  list users (ADMIN)", run: a.users},
		"update":  {usage: "-id ID [-role ROLE] [-active true|false]  change a user (ADMIN)", run: a.update},
		"stats":   {usage: "show directory statistics (ADMIN)", run: a.stats},
	}

	return a
}

// Run dispatches args[0] to its subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, titleStyle.Render("Usage: client COMMAND [FLAGS]"))
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-8s %s\n", name, helpStyle.Render(a.commands[name].usage))
	}
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) health(ctx context.Context, _ []string) error {
	if err := a.directory.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.directory.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, v)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	copyToken := fs.Bool("copy", false, "copy the token to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("%w: -u and -p", ErrMissingFlag)
	}

	token, err := a.directory.Login(ctx, *username, *password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)
	if *copyToken {
		if err := a.copyText(token); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(a.out, helpStyle.Render("token copied to the clipboard"))
	}
	return nil
}

func (a *App) profile(ctx context.Context, _ []string) error {
	p, err := a.directory.Profile(ctx)
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

func (a *App) users(ctx context.Context, args []string) error {
	fs := a.newFlagSet("users")
	page := fs.Int("page", 0, "zero-based page index")
	size := fs.Int("size", 10, "page size")
	query := fs.String("query", "", "username substring")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.directory.ListUsers(ctx, models.PageRequest{Page: *page, Size: *size, Query: *query})
	if err != nil {
		return err
	}
	renderUsers(a.out, resp)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	id := fs.String("id", "", "user ID")
	role := fs.String("role", "", "new role, USER or ADMIN")
	active := fs.String("active", "", "new activity flag, true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}

	var upd models.UserUpdate
	if *role != "" {
		r := strings.ToUpper(*role)
		upd.Role = &r
	}
	if *active != "" {
		v, err := strconv.ParseBool(*active)
		if err != nil {
			return fmt.Errorf("invalid -active value %q: %w", *active, err)
		}
		upd.IsActive = &v
	}
	if upd.Role == nil && upd.IsActive == nil {
		return ErrNothingToApply
	}

	user, err := a.directory.UpdateUser(ctx, *id, upd)
	if err != nil {
		return err
	}
	renderUser(a.out, user)
	return nil
}

func (a *App) stats(ctx context.Context, _ []string) error {
	s, err := a.directory.Stats(ctx)
	if err != nil {
		return err
	}
	renderStats(a.out, s)
	return nil
}

// Hint returns a suggestion for the user matching err, or "" when none fits.
func Hint(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized) && strings.Contains(err.Error(), app.MsgInvalidCredentials):
		return "check the username and password"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "log in first and export the token as CLIENT_TOKEN"
	case errors.Is(err, adapter.ErrForbidden):
		return "this command requires the ADMIN role"
	case errors.Is(err, ErrNoCommand), errors.Is(err, ErrUnknownCommand):
		return "pick one of the commands listed above"
	}
	return ""
}
