package collection_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
)

func newFileCollections(t require.TestingT, dir string) (collection.WeaponService, collection.EnemyService) {
	repo, err := document.NewFile(&document.FileConfig{Dir: dir})
	require.NoError(t, err)

	deps := collection.Deps{Repository: repo, IDGenerator: idgen.NewUUID("")}

	weapons, err := collection.NewWeapons(deps)
	require.NoError(t, err)
	enemies, err := collection.NewEnemies(deps)
	require.NoError(t, err)

	return weapons, enemies
}

func names[T interface{ *wfrp.Weapon | *wfrp.Enemy }](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		switch v := any(r).(type) {
		case *wfrp.Weapon:
			out = append(out, v.Name)
		case *wfrp.Enemy:
			out = append(out, v.Name)
		}
	}
	return out
}

func TestFreshDirectoryListsDefaults(t *testing.T) {
	ctx := context.Background()
	weapons, enemies := newFileCollections(t, t.TempDir())

	w, err := weapons.List(ctx, &collection.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Short Sword", "Spear", "Crossbow", "Club", "Hand Weapon"}, names(w.Records))

	e, err := enemies.List(ctx, &collection.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Goblin", "Orc", "Skaven Clanrat"}, names(e.Records))
	for _, enemy := range e.Records {
		assert.Equal(t, enemy.Stats.Wounds, enemy.CurrentWounds, enemy.Name)
	}
}

func TestSeedOnlyWritesMissingDocuments(t *testing.T) {
	ctx := context.Background()
	weapons, _ := newFileCollections(t, t.TempDir())

	first, err := weapons.Seed(ctx, &collection.SeedInput{})
	require.NoError(t, err)
	assert.True(t, first.Seeded)
	assert.Equal(t, 5, first.Count)

	_, err = weapons.Delete(ctx, &collection.DeleteInput{ID: "club"})
	require.NoError(t, err)

	second, err := weapons.Seed(ctx, &collection.SeedInput{})
	require.NoError(t, err)
	assert.False(t, second.Seeded)
	assert.Equal(t, 4, second.Count)
}

func TestEnemyWoundsRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, enemies := newFileCollections(t, t.TempDir())

	created, err := enemies.Create(ctx, &collection.CreateInput[*wfrp.Enemy]{
		Record: &wfrp.Enemy{Name: "Beastman", Stats: wfrp.StatBlock{Wounds: 3, Attacks: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Record.CurrentWounds)

	updated, err := enemies.Update(ctx, &collection.UpdateInput[*wfrp.Enemy]{
		ID:     created.Record.ID,
		Record: &wfrp.Enemy{Name: "Beastman", Stats: wfrp.StatBlock{Wounds: 3, Attacks: 1}, CurrentWounds: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Record.CurrentWounds)

	got, err := enemies.Get(ctx, &collection.GetInput{ID: created.Record.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Record.CurrentWounds)
	assert.False(t, got.Record.IsAlive())
}

func TestUpdateUnknownLeavesDocumentUnchanged(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	_, enemies := newFileCollections(t, dir)

	_, err := enemies.Seed(ctx, &collection.SeedInput{})
	require.NoError(t, err)

	path := filepath.Join(dir, collection.DocumentEnemies+".json")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = enemies.Update(ctx, &collection.UpdateInput[*wfrp.Enemy]{
		ID:     "no-such-enemy",
		Record: &wfrp.Enemy{Name: "Ghost", Stats: wfrp.NewStatBlock()},
	})
	assert.True(t, errors.IsNotFound(err))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTruncatedDocumentMasksSavedRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	weapons, _ := newFileCollections(t, dir)

	_, err := weapons.Create(ctx, &collection.CreateInput[*wfrp.Weapon]{
		Record: &wfrp.Weapon{Name: "Dagger", Damage: 1},
	})
	require.NoError(t, err)

	path := filepath.Join(dir, collection.DocumentWeapons+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o644))

	out, err := weapons.List(ctx, &collection.ListInput{})
	require.NoError(t, err)
	assert.NotContains(t, names(out.Records), "Dagger")
	assert.Len(t, out.Records, 5)
}

// Creates append in order with unique IDs, and deletes keep the order of what remains.
func TestCollectionOrderingProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp("", "collection-*")
		require.NoError(rt, err)
		defer func() { _ = os.RemoveAll(dir) }()

		ctx := context.Background()
		weapons, _ := newFileCollections(rt, dir)

		base, err := weapons.List(ctx, &collection.ListInput{})
		require.NoError(rt, err)
		expected := names(base.Records)

		n := rapid.IntRange(1, 8).Draw(rt, "creates")
		seen := map[string]bool{}
		for _, w := range base.Records {
			seen[w.ID] = true
		}
		var created []string
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("weapon-%d", i)
			out, err := weapons.Create(ctx, &collection.CreateInput[*wfrp.Weapon]{
				Record: &wfrp.Weapon{Name: name, Damage: rapid.IntRange(0, 5).Draw(rt, "damage")},
			})
			require.NoError(rt, err)
			require.NotEmpty(rt, out.Record.ID)
			require.False(rt, seen[out.Record.ID], "duplicate id %s", out.Record.ID)
			seen[out.Record.ID] = true
			created = append(created, out.Record.ID)
			expected = append(expected, name)
		}

		victim := rapid.IntRange(0, len(created)-1).Draw(rt, "victim")
		_, err = weapons.Delete(ctx, &collection.DeleteInput{ID: created[victim]})
		require.NoError(rt, err)
		expected = append(expected[:len(base.Records)+victim], expected[len(base.Records)+victim+1:]...)

		after, err := weapons.List(ctx, &collection.ListInput{})
		require.NoError(rt, err)
		assert.Equal(rt, expected, names(after.Records))
	})
}

func TestNonObjectElementSurvivesWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	weapons, _ := newFileCollections(t, dir)

	path := filepath.Join(dir, collection.DocumentWeapons+".json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"keep","name":"Heirloom","damage":3,"traits":""}, 5]`), 0o644))

	_, err := weapons.List(ctx, &collection.ListInput{})
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
	assert.Equal(t, 1, errors.GetMeta(err)["index"])

	created, err := weapons.Create(ctx, &collection.CreateInput[*wfrp.Weapon]{
		Record: &wfrp.Weapon{Name: "Dagger", Damage: 1},
	})
	require.NoError(t, err)

	got, err := weapons.Get(ctx, &collection.GetInput{ID: "keep"})
	require.NoError(t, err)
	assert.Equal(t, "Heirloom", got.Record.Name)

	_, err = weapons.Delete(ctx, &collection.DeleteInput{ID: created.Record.ID})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"keep","name":"Heirloom","damage":3,"traits":""}, 5]`, string(data))
}

func TestNonArrayDocumentFailsWithoutRewrite(t *testing.T) {
	for _, raw := range []string{`{}`, `null`, `"x"`} {
		t.Run(raw, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			weapons, _ := newFileCollections(t, dir)

			path := filepath.Join(dir, collection.DocumentWeapons+".json")
			require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

			_, err := weapons.List(ctx, &collection.ListInput{})
			assert.True(t, errors.IsInternal(err))

			_, err = weapons.Create(ctx, &collection.CreateInput[*wfrp.Weapon]{
				Record: &wfrp.Weapon{Name: "Dagger", Damage: 1},
			})
			assert.True(t, errors.IsInternal(err))

			_, err = weapons.Delete(ctx, &collection.DeleteInput{ID: "club"})
			assert.True(t, errors.IsInternal(err))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, raw, string(data))
		})
	}
}

// overlappingRepository holds every Save until two Loads have completed, then
// applies the Saves one at a time.
type overlappingRepository struct {
	document.Repository
	loaded sync.WaitGroup
	mu     sync.Mutex
}

func (r *overlappingRepository) Load(ctx context.Context, input document.LoadInput) (*document.LoadOutput, error) {
	defer r.loaded.Done()
	return r.Repository.Load(ctx, input)
}

func (r *overlappingRepository) Save(ctx context.Context, input document.SaveInput) (*document.SaveOutput, error) {
	r.loaded.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Repository.Save(ctx, input)
}

func TestOverlappingCreatesLoseAnUpdate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seeded, _ := newFileCollections(t, dir)
	_, err := seeded.Seed(ctx, &collection.SeedInput{})
	require.NoError(t, err)

	repo, err := document.NewFile(&document.FileConfig{Dir: dir})
	require.NoError(t, err)
	overlapping := &overlappingRepository{Repository: repo}
	overlapping.loaded.Add(2)

	weapons, err := collection.NewWeapons(collection.Deps{Repository: overlapping, IDGenerator: idgen.NewUUID("")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, name := range []string{"Dagger", "Sling"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := weapons.Create(ctx, &collection.CreateInput[*wfrp.Weapon]{
				Record: &wfrp.Weapon{Name: name, Damage: 1},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	after, err := seeded.List(ctx, &collection.ListInput{})
	require.NoError(t, err)
	assert.Len(t, after.Records, 6, "both creates succeeded but only the later save survives")

	got := names(after.Records)
	assert.NotEqual(t, slices.Contains(got, "Dagger"), slices.Contains(got, "Sling"))
}
