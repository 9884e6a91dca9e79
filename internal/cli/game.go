package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameSubmitCmd())
	cmd.AddCommand(newGameResultCmd())
	cmd.AddCommand(newGameRevealCmd())
	cmd.AddCommand(newGameCountCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var opponent string
	var solo bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Long: `Create a new game against another player (--opponent <player-id>)
or against the house (--solo).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if solo == (opponent != "") {
				return fmt.Errorf("exactly one of --opponent or --solo is required")
			}

			req := map[string]any{}
			if solo {
				req["solo"] = true
			} else {
				req["opponent"] = opponent
			}

			var result GameInfo
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opponent, "opponent", "", "Opponent player id")
	cmd.Flags().BoolVar(&solo, "solo", false, "Play against the house")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get game info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result GameInfo
			if err := client.Get(fmt.Sprintf("/api/v1/games/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id> <move>",
		Short: "Submit an encrypted move",
		Long: `Seal a move (rock, paper, or scissors) through the server's crypto
helper and submit the resulting ciphertext and proof to the game.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			// Seal the move first
			var sealed SealedMove
			if err := client.Post("/api/v1/crypto/moves", map[string]string{"move": args[1]}, &sealed); err != nil {
				return err
			}

			var result GameInfo
			req := map[string]string{
				"ciphertext": sealed.Ciphertext,
				"proof":      sealed.Proof,
			}
			if err := client.Post(fmt.Sprintf("/api/v1/games/%d/moves", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Get the encrypted result handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result ResultHandle
			if err := client.Get(fmt.Sprintf("/api/v1/games/%d/result", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <id>",
		Short: "Decrypt and decode the result of a completed game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result Reveal
			if err := client.Post("/api/v1/crypto/reveal", map[string]uint64{"game_id": id}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show the number of games ever created",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameCount
			if err := client.Get("/api/v1/games/count", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func parseGameID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("game id must be a non-negative integer: %q", s)
	}
	return id, nil
}
