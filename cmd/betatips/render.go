package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jrsteele09/betatips/games"
	"github.com/jrsteele09/betatips/internal/utils"
	"github.com/jrsteele09/betatips/payment"
	"github.com/jrsteele09/betatips/posts"
	"github.com/jrsteele09/betatips/tips"
	"github.com/jrsteele09/betatips/users"
)

func (a *app) colour(colour, s string) string {
	if a.plain {
		return s
	}
	return utils.Colourise(colour, s)
}

func (a *app) heading(s string) {
	a.printf("%s\n", a.colour(utils.Cyan, s))
	a.printf("%s\n", strings.Repeat("=", len([]rune(s))))
}

func (a *app) resultLabel(r games.Result) string {
	switch r {
	case games.ResultWin:
		return a.colour(utils.Green, "WIN")
	case games.ResultLoss:
		return a.colour(utils.Red, "LOSS")
	}
	return ""
}

func renderTips(a *app, label string, set tips.BucketSet, cards []tips.Card) {
	a.heading(label)
	for _, card := range cards {
		a.printf("\n%s\n", a.colour(utils.Yellow, card.Title))
		switch {
		case card.Locked:
			a.printf("  🔒 %s\n", card.Paywall)
			a.printf("  Run \"betatips pay\" to upgrade.\n")
		case card.Empty():
			a.printf("  %s\n", tips.MsgNoGames)
		default:
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, g := range card.Games {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t@%.2f\t%s\n",
					g.MatchTime.Local().Format("15:04"),
					g.Matchup(),
					g.Prediction,
					g.Odds,
					a.resultLabel(g.Result),
				)
			}
			_ = tw.Flush()
		}
	}
	if n := len(set.Quarantined); n > 0 {
		a.printf("\n%s\n", a.colour(utils.Gray, fmt.Sprintf("%d tip(s) with an unrecognised category not shown", n)))
	}
}

func renderStats(a *app, s games.Stats) {
	a.heading("Track Record")
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total tips\t%s\n", humanize.Comma(int64(s.TotalTips)))
	fmt.Fprintf(tw, "Wins\t%s\n", humanize.Comma(int64(s.Wins)))
	fmt.Fprintf(tw, "Losses\t%s\n", humanize.Comma(int64(s.Losses)))
	fmt.Fprintf(tw, "Pending\t%s\n", humanize.Comma(int64(s.Pending)))
	fmt.Fprintf(tw, "Win rate\t%.1f%%\n", s.WinRate)
	_ = tw.Flush()
}

func renderAdminGames(a *app, list []games.Game) {
	a.heading(fmt.Sprintf("Games (%d)", len(list)))
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKICK-OFF\tMATCH\tPREDICTION\tODDS\tCATEGORY\tRESULT")
	for _, g := range list {
		kickoff := g.MatchTime.Local().Format(matchTimeLayout)
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s\t%s\t%.2f\t%s\t%s\n",
			g.ID, kickoff, humanize.RelTime(g.MatchTime, a.nowTime(), "ago", "from now"),
			g.Matchup(), g.Prediction, g.Odds, utils.FirstNonEmpty(g.RawCategory, g.Category.String()), g.Result.Label())
	}
	_ = tw.Flush()
}

func renderUsers(a *app, list []users.User, s users.Summary) {
	a.heading(fmt.Sprintf("Users: %d total, %d VIP, %d active, %d blocked", s.Total, s.VIP, s.Active, s.Blocked))
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tVIP\tSTATUS\tJOINED")
	for i := range list {
		u := &list[i]
		vip := "-"
		if u.HasPaid {
			vip = utils.FirstNonEmpty(u.VIPExpiryLabel(), "yes")
		}
		status := "active"
		if !u.IsActive {
			status = a.colour(utils.Red, "blocked")
		}
		joined := ""
		if !u.CreatedAt.IsZero() {
			joined = humanize.Time(u.CreatedAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, vip, status, joined)
	}
	_ = tw.Flush()
}

func renderPosts(a *app, list []posts.Post) {
	a.heading("Community")
	if len(list) == 0 {
		a.printf("No posts yet. Be the first to share!\n")
		return
	}
	for _, p := range list {
		a.printf("\n%s  %s  %s\n", a.colour(utils.Yellow, authorName(p.Author)), a.colour(utils.Gray, humanize.Time(p.CreatedAt)), a.colour(utils.Gray, p.ID))
		a.printf("  %s\n", p.Content)
		if label := p.ReplyCountLabel(); label != "" {
			a.printf("  %s\n", a.colour(utils.Gray, label))
		}
		for _, r := range p.Replies {
			a.printf("    ↳ %s: %s\n", authorName(r.Author), r.Content)
		}
	}
}

func authorName(au posts.Author) string {
	if au.HasPaid {
		return au.Username + " ⭐"
	}
	return au.Username
}

func renderPayment(a *app, in payment.Instructions) {
	a.heading(fmt.Sprintf("VIP Access: %s / %s", in.Price, in.Duration))
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Bank\t%s\n", in.BankName)
	fmt.Fprintf(tw, "Account number\t%s\n", in.AccountNumber)
	fmt.Fprintf(tw, "Account name\t%s\n", in.AccountName)
	for _, alt := range in.Alternatives {
		fmt.Fprintf(tw, "%s\t%s (%s)\n", alt.Method, alt.Number, alt.Name)
	}
	_ = tw.Flush()

	a.printf("\nAfter paying:\n")
	for i, step := range in.Steps {
		a.printf("  %d. %s\n", i+1, step)
	}
	a.printf("\nWhatsApp: %s\n", in.WhatsAppLink)
	a.printf("Telegram: %s\n", in.TelegramLink)
}
