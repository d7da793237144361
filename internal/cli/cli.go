// Package cli is the command-line front end of the restaurant site. Each
// command parses its flags, calls the services and prints JSON to stdout.
// Failures go to stderr and leave stdout untouched.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"restaurant-site/internal/export"
	"restaurant-site/internal/listing"
	"restaurant-site/internal/service"

	"github.com/rs/zerolog"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Services bundles the backend services the commands use.
type Services struct {
	Reservations service.ReservationService
	Menu         service.MenuService
	Gallery      service.GalleryService
	Newsletter   service.NewsletterService
	About        service.AboutService
	Admin        service.AdminService
	Email        service.EmailService
}

// SessionChecker reports whether an admin session is cached locally.
type SessionChecker interface {
	IsLoggedIn(ctx context.Context) bool
}

// ImageUploader sends a picture straight to the image host.
type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Options configures an App. Zero values select sensible defaults.
type Options struct {
	Session        SessionChecker
	Sink           export.Sink
	Images         ImageUploader
	Stdin          io.Reader
	Stdout         io.Writer
	Stderr         io.Writer
	DebounceDelay  time.Duration
	MaxImageSizeMB int
}

// App dispatches command lines to handlers.
type App struct {
	svc        Services
	session    SessionChecker
	sink       export.Sink
	images     ImageUploader
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	debounce   time.Duration
	maxImageMB int
	logger     zerolog.Logger

	outMu sync.Mutex
}

type command func(ctx context.Context, args []string) error

// New creates a new CLI application.
func New(svc Services, opts Options, logger zerolog.Logger) *App {
	a := &App{
		svc:        svc,
		session:    opts.Session,
		sink:       opts.Sink,
		images:     opts.Images,
		stdin:      opts.Stdin,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		debounce:   opts.DebounceDelay,
		maxImageMB: opts.MaxImageSizeMB,
		logger:     logger.With().Str("component", "cli").Logger(),
	}
	if a.stdin == nil {
		a.stdin = os.Stdin
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	if a.debounce <= 0 {
		a.debounce = listing.DefaultDebounceDelay
	}
	if a.maxImageMB <= 0 {
		a.maxImageMB = 5
	}
	return a
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"health":    a.health,
		"menu":      a.menu,
		"gallery":   a.gallery,
		"about":     a.about,
		"reserve":   a.reserve,
		"lookup":    a.lookup,
		"cancel":    a.cancel,
		"subscribe": a.subscribe,
		"admin":     a.admin,
	}
}

// Run executes one command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage(a.commands())
		return ExitUsage
	}

	cmd, ok := a.commands()[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n", args[0])
		a.usage(a.commands())
		return ExitUsage
	}

	return a.exec(ctx, args[0], cmd, args[1:])
}

func (a *App) exec(ctx context.Context, name string, cmd command, args []string) int {
	if err := cmd(ctx, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitUsage
		}
		a.logger.Debug().Err(err).Str("command", name).Msg("command failed")
		a.writeError(err)
		return ExitError
	}
	return ExitOK
}

func (a *App) usage(cmds map[string]command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.stderr, "usage: restaurant <command> [flags]")
	fmt.Fprintln(a.stderr, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.stderr, "  %s\n", name)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}
