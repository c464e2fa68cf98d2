package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/arcade/internal/domain/types"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case UserResult:
		o.printUser(v.User)
	case ScoreResult:
		o.printScore(v)
	case LeaderboardResult:
		o.printLeaderboard(v)
	case GamesResult:
		o.printGames(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case SimulationReport:
		o.printReport(v)
	default:
		o.printJSON(data)
	}
}

// UserResult is the envelope of /register and /login.
type UserResult struct {
	Success bool       `json:"success"`
	User    types.User `json:"user"`
}

// ScoreResult is the envelope of POST /scores.
type ScoreResult struct {
	Success   bool   `json:"success"`
	ID        string `json:"id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// LeaderboardResult is the envelope of GET /leaderboard.
type LeaderboardResult struct {
	Success     bool        `json:"success"`
	Leaderboard []types.Row `json:"leaderboard"`
}

// GamesResult is the envelope of GET /games.
type GamesResult struct {
	Success bool         `json:"success"`
	Games   []types.Game `json:"games"`
	Strict  bool         `json:"strict"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u types.User) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", u.Name, u.ID)
	fmt.Fprintf(o.w, "Email: %s\n", u.Email)
	if u.Phone != "" {
		fmt.Fprintf(o.w, "Phone: %s\n", u.Phone)
	}
}

func (o *Output) printScore(s ScoreResult) {
	if s.Duplicate {
		fmt.Fprintln(o.w, "Duplicate submission; nothing recorded")
		return
	}
	fmt.Fprintf(o.w, "Recorded: %s\n", s.ID)
}

func (o *Output) printLeaderboard(l LeaderboardResult) {
	if len(l.Leaderboard) == 0 {
		fmt.Fprintln(o.w, "No scores yet")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tGAME\tSCORE\tDATE")
	for i, r := range l.Leaderboard {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i+1, r.Name, r.Game, r.Score, r.Date)
	}
	_ = tw.Flush()
}

func (o *Output) printGames(g GamesResult) {
	mode := "open"
	if g.Strict {
		mode = "strict"
	}
	fmt.Fprintf(o.w, "Games (%d, %s):\n", len(g.Games), mode)
	for _, game := range g.Games {
		fmt.Fprintf(o.w, "  - %s\n", game.Name)
	}
}

func (o *Output) printReport(r SimulationReport) {
	fmt.Fprintf(o.w, "Players registered: %d\n", r.Players)
	fmt.Fprintf(o.w, "Scores submitted:   %d (recorded %d, duplicate %d, failed %d)\n",
		r.Submitted, r.Recorded, r.Duplicates, r.Failed)
	fmt.Fprintf(o.w, "Boards verified:    %d\n", r.BoardsChecked)
	fmt.Fprintf(o.w, "Duration:           %s\n", r.Duration)
	if len(r.Problems) == 0 {
		fmt.Fprintln(o.w, "Result: OK")
		return
	}
	fmt.Fprintf(o.w, "Result: %d problem(s)\n", len(r.Problems))
	for _, p := range r.Problems {
		fmt.Fprintf(o.w, "  - %s\n", p)
	}
}
