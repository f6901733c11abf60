// Package main is a terminal client for QuoteVault. It drives the same core
// as the local API against the configured backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/docopt/docopt-go"
	"golang.org/x/term"

	"github.com/quotevault/quotevault/internal/app"
	"github.com/quotevault/quotevault/internal/bootstrap"
	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// Version is injected via ldflags.
var Version = "dev"

const usage = `QuoteVault command line.

Usage:
    quotevaultctl feed
    quotevaultctl search [<term>] [--category=<category>]
    quotevaultctl favorites
    quotevaultctl favorite <quote_id> [<term>]
    quotevaultctl unfavorite <quote_id>
    quotevaultctl signin --email=<email> [--password=<password>]
    quotevaultctl signup --name=<name> --email=<email>
    quotevaultctl signout
    quotevaultctl whoami
    quotevaultctl remind
    quotevaultctl share <quote_id>
    quotevaultctl health
    quotevaultctl categories

Options:
    -h --help                  Show this screen.
    --version                  Show version.
    --category=<category>      One of All, Motivation, Love, Success, Wisdom, Humor [default: All].
    --email=<email>            Account email.
    --password=<password>      Account password. Prompted when omitted.
    --name=<name>              Full name for a new account.`

type command func(ctx context.Context, cli *client, opts docopt.Opts) error

var commands = []struct {
	name string
	run  command
}{
	{"feed", feed},
	{"search", search},
	{"favorites", favorites},
	{"favorite", favorite},
	{"unfavorite", unfavorite},
	{"signin", signIn},
	{"signup", signUp},
	{"signout", signOut},
	{"whoami", whoAmI},
	{"remind", remind},
	{"share", share},
	{"health", health},
	{"categories", categories},
}

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		panic(err)
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts docopt.Opts) error {
	cfg, err := bootstrap.LoadConfig(bootstrap.Profile())
	if err != nil {
		return err
	}

	// Stdout carries command output; logs go through the configured sink.
	logger := bootstrap.NewLogger(cfg)

	rt, err := bootstrap.New(ctx, bootstrap.Options{
		Config: cfg,
		Logger: logger,
		Prompt: confirm,
	})
	if err != nil {
		return err
	}

	cli := &client{rt: rt, out: os.Stdout, errOut: os.Stderr}

	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			logger.Error("closing runtime", slog.Any("error", closeErr))
		}

		cli.flushNotices()
	}()

	for _, c := range commands {
		if ok, _ := opts.Bool(c.name); ok {
			return c.run(ctx, cli, opts)
		}
	}

	return errors.New("no command given")
}

type client struct {
	rt     *bootstrap.Runtime
	out    io.Writer
	errOut io.Writer
}

func (c *client) core() *app.Core {
	return c.rt.Core
}

// flushNotices prints the notices raised while the command ran.
func (c *client) flushNotices() {
	for _, n := range c.core().Notices.Drain() {
		if n.Title != "" {
			fmt.Fprintf(c.errOut, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
			continue
		}

		fmt.Fprintf(c.errOut, "[%s] %s\n", n.Kind, n.Message)
	}
}

func (c *client) printQuotes(quotes []domain.Quote) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, q := range quotes {
		mark := " "
		if q.IsFavorite {
			mark = "*"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%q\t%s\n", mark, q.ID, q.Category, q.Content, q.Author)
	}

	_ = w.Flush()
}

func feed(ctx context.Context, c *client, _ docopt.Opts) error {
	screen := c.core().Feed
	if err := screen.Mount(ctx); err != nil {
		return err
	}

	snap := screen.Snapshot()
	if snap.Data.Daily != nil {
		fmt.Fprintln(c.out, "Quote of the day:")
		c.printQuotes([]domain.Quote{*snap.Data.Daily})
		fmt.Fprintln(c.out)
	}

	c.printQuotes(snap.Data.Quotes)

	return nil
}

func search(ctx context.Context, c *client, opts docopt.Opts) error {
	term, _ := opts.String("<term>")
	label, _ := opts.String("--category")

	category, err := domain.ParseCategory(label)
	if err != nil {
		return err
	}

	screen := c.core().Search
	screen.SetFilter(domain.Filter{Term: term, Category: category})

	if err := screen.Mount(ctx); err != nil {
		return err
	}
	defer screen.Unmount()

	c.printQuotes(screen.View().Results)

	return nil
}

func favorites(ctx context.Context, c *client, _ docopt.Opts) error {
	screen := c.core().Favorites
	if err := screen.Mount(ctx); err != nil {
		return err
	}

	c.printQuotes(screen.Snapshot().Data)

	return nil
}

// favorite saves a quote found on the feed, or among the search results for
// term when the feed's random selection does not include it. A quote that is
// already saved is left alone.
func favorite(ctx context.Context, c *client, opts docopt.Opts) error {
	id, _ := opts.String("<quote_id>")
	term, _ := opts.String("<term>")

	saved := c.core().Favorites
	if err := saved.Mount(ctx); err != nil {
		return err
	}

	if _, ok := saved.Find(id); ok {
		fmt.Fprintf(c.out, "%s is already in favorites.\n", id)
		return nil
	}

	defer c.core().Search.Unmount()

	q, toggle, err := c.locate(ctx, id, term)
	if err != nil {
		return err
	}

	if q.IsFavorite {
		fmt.Fprintf(c.out, "%s is already in favorites.\n", id)
		return nil
	}

	pending, err := toggle(ctx, id)
	if err != nil {
		return err
	}

	if err := pending.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Saved %s to favorites.\n", id)

	return nil
}

type toggleFunc func(ctx context.Context, quoteID string) (*app.Pending, error)

// locate finds id on the feed, then among the search results for term.
func (c *client) locate(ctx context.Context, id, term string) (domain.Quote, toggleFunc, error) {
	feed := c.core().Feed
	if err := feed.Mount(ctx); err != nil {
		return domain.Quote{}, nil, err
	}

	if q, ok := feed.Find(id); ok {
		return q, feed.ToggleFavorite, nil
	}

	search := c.core().Search
	search.SetFilter(domain.Filter{Term: term})

	if err := search.Mount(ctx); err != nil {
		return domain.Quote{}, nil, err
	}

	if q, ok := search.Find(id); ok {
		return q, search.ToggleFavorite, nil
	}

	return domain.Quote{}, nil, fmt.Errorf("quote %s is not on the feed or in the results for %q; pass a term that matches it", id, term)
}

func unfavorite(ctx context.Context, c *client, opts docopt.Opts) error {
	id, _ := opts.String("<quote_id>")

	screen := c.core().Favorites
	if err := screen.Mount(ctx); err != nil {
		return err
	}

	pending, err := screen.Remove(ctx, id)
	if err != nil {
		return err
	}

	if err := pending.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Removed %s from favorites.\n", id)

	return nil
}

func signIn(ctx context.Context, c *client, opts docopt.Opts) error {
	email, _ := opts.String("--email")

	password, _ := opts.String("--password")
	if password == "" {
		var err error
		if password, err = readPassword("Password: "); err != nil {
			return err
		}
	}

	session, err := c.core().Sessions.SignIn(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return errors.New(domain.UserMessage(err, err.Error()))
	}

	fmt.Fprintf(c.out, "Signed in as %s.\n", session.User.Email)

	return nil
}

func signUp(ctx context.Context, c *client, opts docopt.Opts) error {
	name, _ := opts.String("--name")
	email, _ := opts.String("--email")

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	confirmation, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}

	result, err := c.core().Sessions.SignUp(ctx, domain.SignUpRequest{
		FullName:        name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmation,
	})
	if err != nil {
		return errors.New(domain.UserMessage(err, err.Error()))
	}

	if result.PendingVerification {
		fmt.Fprintln(c.out, app.MsgVerifyEmail)
		return nil
	}

	fmt.Fprintf(c.out, "Signed in as %s.\n", result.Session.User.Email)

	return nil
}

func signOut(ctx context.Context, c *client, _ docopt.Opts) error {
	return c.core().SignOut(ctx)
}

func whoAmI(ctx context.Context, c *client, _ docopt.Opts) error {
	user, err := c.core().Sessions.User(ctx)
	if err != nil {
		return err
	}

	if user == nil {
		fmt.Fprintln(c.out, "Not signed in.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", user.ID)
	fmt.Fprintf(w, "email\t%s\n", user.Email)
	fmt.Fprintf(w, "name\t%s\n", user.FullName)

	return w.Flush()
}

func remind(ctx context.Context, c *client, _ docopt.Opts) error {
	scheduled, err := c.core().Reminders.ScheduleDailyQuote(ctx)
	if err != nil {
		return err
	}

	if !scheduled {
		fmt.Fprintln(c.out, "Reminder not scheduled.")
	}

	return nil
}

// share loads the screens that may hold the quote, then shares it.
func share(ctx context.Context, c *client, opts docopt.Opts) error {
	id, _ := opts.String("<quote_id>")

	if _, err := c.core().FindQuote(id); domain.IsNotFound(err) {
		if err := c.core().Feed.Mount(ctx); err != nil {
			return err
		}
	}

	if _, err := c.core().FindQuote(id); domain.IsNotFound(err) {
		if err := c.core().Search.Mount(ctx); err != nil {
			return err
		}
		defer c.core().Search.Unmount()
	}

	path, err := c.core().ShareQuote(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Shared %s.\n", path)

	return nil
}

func health(ctx context.Context, c *client, _ docopt.Opts) error {
	ctx, cancel := context.WithTimeout(ctx, bootstrap.CheckTimeout)
	defer cancel()

	result := c.rt.Health.CheckAll(ctx)

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for name, check := range result.Checks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, check.Status, check.Duration, check.Message)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if result.Status != ports.HealthStatusHealthy {
		return fmt.Errorf("status %s", result.Status)
	}

	return nil
}

func categories(_ context.Context, c *client, _ docopt.Opts) error {
	for _, cat := range domain.Categories() {
		fmt.Fprintln(c.out, cat)
	}

	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(b), nil
}

// confirm asks the user to allow notifications.
func confirm(_ context.Context) (bool, error) {
	fmt.Fprint(os.Stderr, "Allow QuoteVault to send daily reminders? [y/N] ")

	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false, nil
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes", nil
}
