package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
)

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := idgen.NewUUID("")

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 200).Draw(rt, "n")
		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			id := gen.Generate()
			assert.NotEmpty(rt, id)
			_, dup := seen[id]
			assert.False(rt, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	})
}

func TestUUIDGenerator_Prefix(t *testing.T) {
	id := idgen.NewUUID("weapon").Generate()
	assert.True(t, strings.HasPrefix(id, "weapon_"))
	assert.Len(t, id, len("weapon_")+36)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("enemy")
	assert.Equal(t, "enemy_1", gen.Generate())
	assert.Equal(t, "enemy_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}
