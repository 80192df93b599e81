package engine_test

import (
	"testing"
	"time"

	"github.com/plus3/roadrush/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noState struct{}

func newCollisionGame(t *testing.T) *engine.Game[noState] {
	t.Helper()
	g := engine.New[noState](engine.WithSeed(1))
	require.NoError(t, g.Start(noState{}))
	return g
}

func step(t *testing.T, g *engine.Game[noState]) []engine.CollisionEvent {
	t.Helper()
	require.NoError(t, g.Step(16*time.Millisecond))
	return g.Engine().DrainCollisionEvents()
}

func TestCollisionBeginAndEnd(t *testing.T) {
	g := newCollisionGame(t)
	player := g.AddSprite("player", engine.RacingCarBlue)
	player.Collision = true
	enemy := g.AddSprite("enemy0", engine.RacingCarYellow)
	enemy.Collision = true
	enemy.Translation = engine.NewVec2(500, 0)

	assert.Empty(t, step(t, g))

	enemy.Translation = engine.NewVec2(10, 0)
	events := step(t, g)
	require.Len(t, events, 1)
	assert.Equal(t, engine.CollisionBegin, events[0].State)
	assert.Equal(t, engine.CollisionPair{"enemy0", "player"}, events[0].Pair)
	assert.True(t, events[0].Pair.OneStartsWith("player"))

	// Still overlapping: no repeat.
	assert.Empty(t, step(t, g))

	enemy.Translation = engine.NewVec2(500, 0)
	events = step(t, g)
	require.Len(t, events, 1)
	assert.Equal(t, engine.CollisionEnd, events[0].State)
}

func TestCollisionIgnoresSpritesWithoutCollision(t *testing.T) {
	g := newCollisionGame(t)
	g.AddSprite("player", engine.RacingCarBlue).Collision = true
	g.AddSprite("decor", engine.RacingConeStraight)

	assert.Empty(t, step(t, g))
}

func TestCollisionRemovedSpriteEndsSilently(t *testing.T) {
	g := newCollisionGame(t)
	g.AddSprite("player", engine.RacingCarBlue).Collision = true
	g.AddSprite("enemy0", engine.RacingCarYellow).Collision = true

	require.Len(t, step(t, g), 1)

	g.Engine().Sprites.Remove("enemy0")
	assert.Empty(t, step(t, g))
}

func TestCollisionEventsAreOrdered(t *testing.T) {
	g := newCollisionGame(t)
	for _, label := range []string{"enemy2", "player", "enemy1", "enemy0"} {
		g.AddSprite(label, engine.RacingCarYellow).Collision = true
	}

	events := step(t, g)
	require.Len(t, events, 6)
	assert.Equal(t, engine.CollisionPair{"enemy0", "enemy1"}, events[0].Pair)
	assert.Equal(t, engine.CollisionPair{"enemy0", "enemy2"}, events[1].Pair)
	assert.Equal(t, engine.CollisionPair{"enemy2", "player"}, events[5].Pair)
}

func TestCollisionRadiusScales(t *testing.T) {
	g := newCollisionGame(t)
	a := g.AddSprite("a", engine.RacingConeStraight)
	a.Collision = true
	b := g.AddSprite("b", engine.RacingConeStraight)
	b.Collision = true
	b.Translation = engine.NewVec2(30, 0)

	assert.Empty(t, step(t, g))

	b.Scale = 2
	assert.Len(t, step(t, g), 1)
}

func TestCollisionPairHelpers(t *testing.T) {
	pair := engine.NewCollisionPair("player", "enemy3")
	assert.Equal(t, engine.CollisionPair{"enemy3", "player"}, pair)
	assert.True(t, pair.EitherEquals("player"))
	assert.False(t, pair.BothStartWith("enemy"))
	assert.True(t, engine.NewCollisionPair("enemy1", "enemy2").BothStartWith("enemy"))
	assert.Equal(t, "Begin(enemy3, player)", engine.CollisionEvent{State: engine.CollisionBegin, Pair: pair}.String())
}
