package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default weapons and enemies if they are absent",
	Long:  `Creates any missing collection documents with the built-in defaults. Existing documents are left alone.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().String("storage", "", "storage backend (file or redis)")
	seedCmd.Flags().String("data-dir", "", "data directory for the file backend")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, changedOnly(cmd, flagBindings{
		"storage.backend": "storage",
		"storage.dir":     "data-dir",
	}))
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	return seedAll(cmd.Context(), a, func(name string, out *collection.SeedOutput) {
		state := "exists"
		if out.Seeded {
			state = "seeded"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-7s %d records\n", name, state, out.Count)
	})
}

// seedAll seeds both collections, reporting each through report when non-nil
func seedAll(ctx context.Context, a *app, report func(name string, out *collection.SeedOutput)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	seeders := []struct {
		name string
		seed func(context.Context, *collection.SeedInput) (*collection.SeedOutput, error)
	}{
		{name: collection.DocumentWeapons, seed: a.weapons.Seed},
		{name: collection.DocumentEnemies, seed: a.enemies.Seed},
	}

	for _, s := range seeders {
		out, err := s.seed(ctx, &collection.SeedInput{})
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", s.name, err)
		}

		a.logger.Info("collection ready",
			zap.String("document", s.name),
			zap.Bool("seeded", out.Seeded),
			zap.Int("count", out.Count),
		)
		if report != nil {
			report(s.name, out)
		}
	}
	return nil
}
