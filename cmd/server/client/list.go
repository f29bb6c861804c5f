package client

import (
	"context"
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
)

var listWeaponsCmd = &cobra.Command{
	Use:   "list-weapons",
	Short: "List all weapons",
	RunE:  listWeapons,
}

var listEnemiesCmd = &cobra.Command{
	Use:   "list-enemies",
	Short: "List all enemies",
	RunE:  listEnemies,
}

func listWeapons(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var weapons []wfrp.Weapon
	if err := call(ctx, http.MethodGet, "/api/weapons", nil, &weapons); err != nil {
		return fmt.Errorf("failed to list weapons: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDAMAGE\tTRAITS")
	for _, weapon := range weapons {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", weapon.ID, weapon.Name, weapon.Damage, weapon.Traits)
	}
	return w.Flush()
}

func listEnemies(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var enemies []wfrp.Enemy
	if err := call(ctx, http.MethodGet, "/api/enemies", nil, &enemies); err != nil {
		return fmt.Errorf("failed to list enemies: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tWS\tS\tT\tW\tWEAPON")
	for _, e := range enemies {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d/%d\t%s\n",
			e.ID, e.Name,
			e.Stats.WeaponSkill, e.Stats.Strength, e.Stats.Toughness,
			e.CurrentWounds, e.Stats.Wounds,
			e.WeaponName,
		)
	}
	return w.Flush()
}
