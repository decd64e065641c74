package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case Visit:
		o.printVisit(v)
	case VisitList:
		o.printVisitList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	FID           int64     `json:"fid"`
	WalletAddress string    `json:"wallet_address"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     string    `json:"avatar_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players"`
}

// Visit response type
type Visit struct {
	ID           string    `json:"id"`
	VisitorFID   int64     `json:"visitor_fid"`
	HomeownerFID int64     `json:"homeowner_fid"`
	Message      string    `json:"message"`
	Matched      bool      `json:"matched"`
	Seen         bool      `json:"seen"`
	CreatedAt    time.Time `json:"created_at"`
}

// VisitList response type
type VisitList struct {
	Visits []Visit `json:"visits"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (fid %d)\n", p.DisplayName, p.FID)
	if p.WalletAddress != "" {
		fmt.Printf("Wallet: %s\n", p.WalletAddress)
	}
	if p.AvatarURL != "" {
		fmt.Printf("Avatar: %s\n", p.AvatarURL)
	}
	fmt.Printf("Joined: %s\n", p.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printPlayerList(l PlayerList) {
	fmt.Printf("Players (%d):\n", len(l.Players))
	for _, p := range l.Players {
		name := p.DisplayName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  - %s (fid %d)\n", name, p.FID)
	}
}

func (o *Output) printVisit(v Visit) {
	fmt.Printf("Visit: %s\n", v.ID)
	fmt.Printf("Visitor: %d -> Homeowner: %d\n", v.VisitorFID, v.HomeownerFID)
	fmt.Printf("Message: %s\n", v.Message)
	status := "undecided"
	if v.Seen {
		if v.Matched {
			status = "matched"
		} else {
			status = "declined"
		}
	}
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Created: %s\n", v.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printVisitList(l VisitList) {
	fmt.Printf("Visits (%d):\n", len(l.Visits))
	for _, v := range l.Visits {
		fmt.Printf("  - %s: visitor %d says %q\n", v.ID, v.VisitorFID, v.Message)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
