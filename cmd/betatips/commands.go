package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jrsteele09/betatips/admin"
	"github.com/jrsteele09/betatips/api"
	"github.com/jrsteele09/betatips/community"
	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/payment"
	"github.com/jrsteele09/betatips/router"
	"github.com/jrsteele09/betatips/tips"
)

// matchTimeLayout is how admins type kick-off times, in local time.
const matchTimeLayout = "2006-01-02 15:04"

type command struct {
	summary string
	restore bool // resume the saved session before running
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":     {"Sign in and remember the session", false, runLogin},
	"register":  {"Create an account and sign in", false, runRegister},
	"logout":    {"Forget the saved session", false, runLogout},
	"whoami":    {"Show the signed-in user", true, runWhoAmI},
	"passwd":    {"Change your password", true, runPasswd},
	"tips":      {"Show the tips for a day", true, runTips},
	"stats":     {"Show the public track record", false, runStats},
	"admin":     {"Manage games and users (admins only)", true, runAdmin},
	"community": {"Read and write community posts", true, runCommunity},
	"pay":       {"Show how to pay for VIP access", true, runPay},
	"route":     {"Resolve an app path for the current session", true, runRoute},
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stdout)
	return fs
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "login")
	username := fs.String("u", "", "Username")
	password := fs.String("p", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, err := a.prompt("Username", *username)
	if err != nil {
		return err
	}
	pass, err := a.promptSecret("Password", *password)
	if err != nil {
		return err
	}
	snap, err := a.session.Login(ctx, name, pass)
	if err != nil {
		return err
	}
	a.printf("Signed in as %s%s\n", snap.Username(), roleSuffix(snap.IsAdmin(), snap.HasPaid()))
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "register")
	username := fs.String("u", "", "Username (at least 3 characters)")
	email := fs.String("e", "", "Email address")
	password := fs.String("p", "", "Password, at least 6 characters (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req api.RegisterRequest
	var err error
	if req.Username, err = a.prompt("Username", *username); err != nil {
		return err
	}
	if req.Email, err = a.prompt("Email", *email); err != nil {
		return err
	}
	if req.Password, err = a.promptSecret("Password", *password); err != nil {
		return err
	}
	snap, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}
	a.printf("Signed in as %s\n", snap.Username())
	return nil
}

func runLogout(_ context.Context, a *app, _ []string) error {
	return a.session.Logout()
}

func runWhoAmI(_ context.Context, a *app, _ []string) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated() {
		a.printf("Not signed in\n")
		return nil
	}
	u := snap.User
	a.printf("%s%s\n", u.Username, roleSuffix(u.IsAdmin, u.HasPaid))
	if u.Email != "" {
		a.printf("Email:    %s\n", u.Email)
	}
	if label := u.VIPExpiryLabel(); label != "" {
		a.printf("VIP until %s\n", label)
	}
	if !snap.TokenExpiry.IsZero() {
		a.printf("Session expires %s\n", humanize.RelTime(snap.TokenExpiry, a.nowTime(), "ago", "from now"))
	}
	return nil
}

func runPasswd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "passwd")
	current := fs.String("current", "", "Current password (prompted when omitted)")
	next := fs.String("new", "", "New password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireSignedIn(a); err != nil {
		return err
	}

	cur, err := a.promptSecret("Current password", *current)
	if err != nil {
		return err
	}
	newPass, err := a.promptSecret("New password", *next)
	if err != nil {
		return err
	}
	confirm := newPass
	if *next == "" {
		if confirm, err = a.promptSecret("Confirm new password", ""); err != nil {
			return err
		}
	}
	return a.session.ChangePassword(ctx, cur, newPass, confirm)
}

func runTips(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "tips")
	date := fs.String("date", "", "Day to show, YYYY-MM-DD")
	day := fs.String("day", "", "Quick pick: yesterday, today or tomorrow")
	next := fs.Int("next", 0, "Move this many days forward from the selected day")
	prev := fs.Int("prev", 0, "Move this many days back from the selected day")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireSignedIn(a); err != nil {
		return err
	}

	nav := a.newNavigator()
	switch strings.ToLower(*day) {
	case "", "today":
	case "yesterday":
		nav.Yesterday()
	case "tomorrow":
		nav.Tomorrow()
	default:
		return fmt.Errorf("%w: -day must be yesterday, today or tomorrow", errUsage)
	}
	if *date != "" {
		if _, err := nav.SelectKey(*date); err != nil {
			return err
		}
	}
	for i := 0; i < *prev; i++ {
		nav.Prev()
	}
	for i := 0; i < *next; i++ {
		if _, err := nav.Next(); err != nil {
			return err
		}
	}

	loader, err := a.newLoader()
	if err != nil {
		return err
	}
	set, err := loader.Load(ctx, nav.Selected())
	if err != nil {
		return err
	}
	renderTips(a, nav.Label(), set, tips.Cards(set, a.session.Snapshot()))
	return nil
}

func runStats(ctx context.Context, a *app, _ []string) error {
	stats, err := tips.LoadStats(ctx, a.api)
	if err != nil {
		return err
	}
	renderStats(a, stats)
	return nil
}

func runAdmin(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: admin games|add|delete|result|users|vip|block", errUsage)
	}
	panel, err := admin.NewPanel(a.api, a.session, admin.WithNotifier(a.notifier), admin.WithLogger(a.logger))
	if err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "games":
		list, err := panel.Games(ctx)
		if err != nil {
			return err
		}
		renderAdminGames(a, list)
		return nil
	case "add":
		req, err := parseNewGame(a, rest)
		if err != nil {
			return err
		}
		created, err := panel.CreateGame(ctx, req)
		if err != nil {
			return err
		}
		a.printf("%s  %s\n", created.ID, created.Matchup())
		return nil
	case "delete":
		id, err := oneArg(rest, "admin delete <game-id>")
		if err != nil {
			return err
		}
		return panel.DeleteGame(ctx, id)
	case "result":
		if len(rest) != 2 {
			return fmt.Errorf("%w: admin result <game-id> win|loss", errUsage)
		}
		result, err := games.ParseResult(rest[1])
		if err != nil {
			return err
		}
		_, err = panel.SetResult(ctx, rest[0], result)
		return err
	case "users":
		list, summary, err := panel.Users(ctx)
		if err != nil {
			return err
		}
		renderUsers(a, list, summary)
		return nil
	case "vip":
		id, err := oneArg(rest, "admin vip <user-id|username>")
		if err != nil {
			return err
		}
		_, err = panel.ToggleVIP(ctx, id)
		return err
	case "block":
		id, err := oneArg(rest, "admin block <user-id|username>")
		if err != nil {
			return err
		}
		_, err = panel.ToggleActive(ctx, id)
		return err
	}
	return fmt.Errorf("%w: unknown admin command %q", errUsage, sub)
}

func parseNewGame(a *app, args []string) (games.NewGame, error) {
	fs := newFlagSet(a, "admin add")
	home := fs.String("home", "", "Home team")
	away := fs.String("away", "", "Away team")
	prediction := fs.String("prediction", "", "Prediction, e.g. \"Over 2.5\"")
	odds := fs.String("odds", "", "Decimal odds, greater than 1.0")
	category := fs.String("category", "all", "all, sure, over/under, bonus or vip")
	kickoff := fs.String("time", "", "Kick-off in local time, \""+matchTimeLayout+"\"")
	if err := fs.Parse(args); err != nil {
		return games.NewGame{}, err
	}

	req := games.NewGame{HomeTeam: *home, AwayTeam: *away, Prediction: *prediction}
	var err error
	if req.Category, err = games.LookupCategory(*category); err != nil {
		return games.NewGame{}, err
	}
	if *odds != "" {
		if req.Odds, err = strconv.ParseFloat(*odds, 64); err != nil {
			return games.NewGame{}, fmt.Errorf("%w: odds %q is not a number", errUsage, *odds)
		}
	}
	if *kickoff != "" {
		if req.MatchTime, err = time.ParseInLocation(matchTimeLayout, *kickoff, a.nowTime().Location()); err != nil {
			return games.NewGame{}, fmt.Errorf("%w: time must look like %q", errUsage, matchTimeLayout)
		}
	}
	return req, nil
}

func runCommunity(ctx context.Context, a *app, args []string) error {
	board, err := community.NewBoard(a.api, a.session, a.notifier)
	if err != nil {
		return err
	}
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		list, err := board.Posts(ctx)
		if err != nil {
			return err
		}
		renderPosts(a, list)
		return nil
	case "post":
		_, err := board.Post(ctx, strings.Join(args, " "))
		return err
	case "reply":
		if len(args) < 1 {
			return fmt.Errorf("%w: community reply <post-id> <text>", errUsage)
		}
		_, err := board.Reply(ctx, args[0], strings.Join(args[1:], " "))
		return err
	case "delete":
		id, err := oneArg(args, "community delete <post-id>")
		if err != nil {
			return err
		}
		return board.Delete(ctx, id)
	}
	return fmt.Errorf("%w: unknown community command %q", errUsage, sub)
}

func runPay(_ context.Context, a *app, _ []string) error {
	if err := requireSignedIn(a); err != nil {
		return err
	}
	snap := a.session.Snapshot()
	if snap.HasPaid() {
		a.printf("You already have VIP access")
		if label := snap.User.VIPExpiryLabel(); label != "" {
			a.printf(" until %s", label)
		}
		a.printf("\n")
		return nil
	}
	renderPayment(a, payment.For(a.cfg, snap.Username()))
	return nil
}

func runRoute(_ context.Context, a *app, args []string) error {
	path := router.PathHome
	if len(args) > 0 {
		path = args[0]
	}
	d := router.Resolve(path, a.session.Snapshot())
	if d.Redirected() {
		a.printf("%s -> %s (%s)\n", d.Path, d.Redirect, d.View)
		return nil
	}
	a.printf("%s (%s)\n", d.Path, d.View)
	return nil
}

func requireSignedIn(a *app) error {
	if !a.session.Snapshot().Authenticated() {
		a.printf("Please log in first: betatips login\n")
		return apperrors.ErrNotAuthenticated
	}
	return nil
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: %s", errUsage, usage)
	}
	return args[0], nil
}

func roleSuffix(isAdmin, hasPaid bool) string {
	var tags []string
	if isAdmin {
		tags = append(tags, "admin")
	}
	if hasPaid {
		tags = append(tags, "VIP")
	}
	if len(tags) == 0 {
		return ""
	}
	return " (" + strings.Join(tags, ", ") + ")"
}
