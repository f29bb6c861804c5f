package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var rollCmd = &cobra.Command{
	Use:   "roll [d100|d10|d6|notation]",
	Short: "Roll dice on the server",
	Long: `Roll a single die or dice notation. Examples:

  roll d100
  roll d6
  roll 3d6`,
	Args: cobra.ExactArgs(1),
	RunE: roll,
}

type rollResponse struct {
	Roll int `json:"roll"`
}

type notationResponse struct {
	Notation string `json:"notation"`
	Dice     []int  `json:"dice"`
	Total    int    `json:"total"`
}

func roll(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	arg := strings.ToLower(args[0])
	switch arg {
	case "d100", "d10", "d6":
		var resp rollResponse
		if err := call(ctx, http.MethodPost, "/api/roll-"+arg, nil, &resp); err != nil {
			return fmt.Errorf("failed to roll %s: %w", arg, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", arg, resp.Roll)
		return nil
	}

	var resp notationResponse
	if err := call(ctx, http.MethodPost, "/api/roll", map[string]string{"notation": arg}, &resp); err != nil {
		return fmt.Errorf("failed to roll %s: %w", arg, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %v = %d\n", resp.Notation, resp.Dice, resp.Total)
	return nil
}
