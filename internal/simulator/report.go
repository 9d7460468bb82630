package simulator

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	playerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

// WriteSummary renders the aggregate as a styled console report.
func WriteSummary(w io.Writer, r *Results) {
	fmt.Fprintf(w, "%s %d\n\n", headerStyle.Render("seed"), r.Seed)

	fmt.Fprintf(w, "%s\n", headerStyle.Render("outcomes"))
	fmt.Fprintf(w, "  won out  %4d  %s\n", r.WonOut, winStyle.Render(percent(r.WonOut, r.Matches)))
	fmt.Fprintf(w, "  blocked  %4d  %s\n", r.Blocked, numberStyle.Render(percent(r.Blocked, r.Matches)))
	fmt.Fprintf(w, "  tied     %4d  %s\n\n", r.Ties, tieStyle.Render(percent(r.Ties, r.Matches)))

	fmt.Fprintf(w, "%s\n", headerStyle.Render("turns"))
	fmt.Fprintf(w, "  mean %.1f, median %.1f, std dev %.1f\n",
		r.MeanTurns(), r.MedianTurns(), r.StdDevTurns())
	fmt.Fprintf(w, "  min %d, max %d, p95 %.1f\n\n", r.MinTurns, r.MaxTurns, r.PercentileTurns(0.95))

	// Rank players by wins, seat order breaking ties
	names := make([]string, len(r.names()))
	copy(names, r.names())
	sort.SliceStable(names, func(i, j int) bool {
		return r.Players[names[i]].Wins > r.Players[names[j]].Wins
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("player"),
		headerStyle.Render("wins"),
		headerStyle.Render("win"),
		headerStyle.Render("95% ci"),
		headerStyle.Render("shared"),
		headerStyle.Render("avg pips"),
		headerStyle.Render("worst"))

	for _, name := range names {
		stats := r.Players[name]
		low, high := stats.WinRateCI95()

		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\t%d\n",
			playerStyle.Render(stats.Name),
			stats.Wins,
			winStyle.Render(fmt.Sprintf("%.1f%%", stats.WinRate()*100)),
			numberStyle.Render(fmt.Sprintf("[%.1f%%, %.1f%%]", low*100, high*100)),
			stats.SharedWins,
			numberStyle.Render(fmt.Sprintf("%.1f", stats.MeanScore())),
			stats.WorstScore)
	}

	tw.Flush()

	if r.Elapsed > 0 {
		perSec := float64(r.Matches) / r.Elapsed.Seconds()
		fmt.Fprintf(w, "\n%d matches in %v (%.0f matches/sec)\n",
			r.Matches, r.Elapsed.Truncate(time.Millisecond), perSec)
	} else {
		fmt.Fprintf(w, "\n%d matches\n", r.Matches)
	}
}

func percent(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
