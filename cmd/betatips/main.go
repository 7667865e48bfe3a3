package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/betatips/internal/config"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := config.New()

	fs := flag.NewFlagSet("betatips", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", cfg.GetAPIURL(), "Backend API base URL")
	dataFolder := fs.String("data", cfg.GetDataFolder(), "Folder holding the saved session")
	store := fs.String("store", cfg.GetTokenStore(), "Session store: file or sqlite")
	plain := fs.Bool("plain", !isTerminal(stdout), "Disable colours and the banner")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", name)
	}

	a, err := newApp(cfg, appOptions{
		apiURL:     *apiURL,
		dataFolder: *dataFolder,
		store:      *store,
		plain:      *plain,
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cmd.restore {
		// An expired session has already been cleared and reported; carry on signed out.
		if _, err := a.session.Bootstrap(ctx); err != nil && !apperrors.Is(err, apperrors.ErrSessionExpired) {
			return err
		}
	}
	return cmd.run(ctx, a, fs.Args()[1:])
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	if !isTerminal(out) {
		fmt.Fprintln(out, "Beta Tips")
	} else {
		fmt.Fprintln(out, figure.NewFigure("Beta Tips", "cybermedium", true).String())
	}
	fmt.Fprintln(out, "Usage: betatips [flags] <command> [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fs.PrintDefaults()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// errUsage marks a command invoked with bad arguments.
var errUsage = errors.New("invalid arguments")
