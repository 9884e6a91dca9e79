package cli

import (
	"encoding/json"
	"fmt"
	"os"
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

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
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
	case AuthResult:
		o.printAuthResult(v)
	case GameInfo:
		o.printGameInfo(v)
	case ResultHandle:
		o.printResultHandle(v)
	case Reveal:
		o.printReveal(v)
	case GameCount:
		o.printGameCount(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// GameInfo response type
type GameInfo struct {
	ID               uint64  `json:"id"`
	Player1          string  `json:"player1"`
	Player2          *string `json:"player2"`
	Solo             bool    `json:"solo"`
	Player1Submitted bool    `json:"player1_submitted"`
	Player2Submitted bool    `json:"player2_submitted"`
	ResultComputed   bool    `json:"result_computed"`
}

// SealedMove response type
type SealedMove struct {
	Ciphertext string `json:"ciphertext"`
	Proof      string `json:"proof"`
}

// ResultHandle response type
type ResultHandle struct {
	Handle string `json:"handle"`
}

// Reveal response type
type Reveal struct {
	Raw     uint64 `json:"raw"`
	Outcome string `json:"outcome"`
}

// GameCount response type
type GameCount struct {
	Count uint64 `json:"count"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameInfo(g GameInfo) {
	fmt.Printf("Game: %d\n", g.ID)
	fmt.Printf("Player 1: %s\n", g.Player1)
	if g.Solo {
		fmt.Println("Player 2: (house)")
	} else if g.Player2 != nil {
		fmt.Printf("Player 2: %s\n", *g.Player2)
	}

	submitted := func(b bool) string {
		if b {
			return "submitted"
		}
		return "waiting"
	}
	fmt.Printf("Move 1: %s\n", submitted(g.Player1Submitted))
	fmt.Printf("Move 2: %s\n", submitted(g.Player2Submitted))

	if g.ResultComputed {
		fmt.Println("Result: computed (use 'rpsctl game reveal' to decrypt)")
	} else {
		fmt.Println("Result: pending")
	}
}

func (o *Output) printResultHandle(r ResultHandle) {
	fmt.Printf("Encrypted result handle: %s\n", r.Handle)
}

func (o *Output) printReveal(r Reveal) {
	fmt.Printf("Outcome: %s\n", r.Outcome)
}

func (o *Output) printGameCount(c GameCount) {
	fmt.Printf("Games created: %d\n", c.Count)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
