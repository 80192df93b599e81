package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/roadrush/ecs"
)

type CollisionState int

const (
	CollisionBegin CollisionState = iota
	CollisionEnd
)

func (s CollisionState) String() string {
	if s == CollisionBegin {
		return "Begin"
	}
	return "End"
}

// CollisionPair holds the labels of two colliding sprites in sorted order.
type CollisionPair [2]string

// NewCollisionPair orders a and b so equal pairs compare equal.
func NewCollisionPair(a, b string) CollisionPair {
	if b < a {
		a, b = b, a
	}
	return CollisionPair{a, b}
}

// OneStartsWith reports whether either label has the given prefix.
func (p CollisionPair) OneStartsWith(prefix string) bool {
	return strings.HasPrefix(p[0], prefix) || strings.HasPrefix(p[1], prefix)
}

// BothStartWith reports whether both labels have the given prefix.
func (p CollisionPair) BothStartWith(prefix string) bool {
	return strings.HasPrefix(p[0], prefix) && strings.HasPrefix(p[1], prefix)
}

// EitherEquals reports whether label is a member of the pair.
func (p CollisionPair) EitherEquals(label string) bool {
	return p[0] == label || p[1] == label
}

// CollisionEvent reports that two sprites started or stopped overlapping.
type CollisionEvent struct {
	State CollisionState
	Pair  CollisionPair
}

func (e CollisionEvent) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.State, e.Pair[0], e.Pair[1])
}

// CollisionSystem detects overlaps between sprites that have Collision set and
// queues Begin and End events on the engine. Colliders are circles of the
// preset radius times the sprite scale.
type CollisionSystem struct {
	Sprites ecs.Query[struct{ *Sprite }]

	engine    *Engine
	active    map[CollisionPair]struct{}
	colliders []*Sprite
}

func NewCollisionSystem(engine *Engine) *CollisionSystem {
	return &CollisionSystem{
		engine: engine,
		active: make(map[CollisionPair]struct{}),
	}
}

func (c *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	colliders := c.colliders[:0]
	for item := range c.Sprites.Values() {
		if item.Sprite.Collision {
			colliders = append(colliders, item.Sprite)
		}
	}
	slices.SortFunc(colliders, func(a, b *Sprite) int {
		return strings.Compare(a.Label, b.Label)
	})
	c.colliders = colliders

	current := make(map[CollisionPair]struct{}, len(c.active))
	for i, a := range colliders {
		for _, b := range colliders[i+1:] {
			if a.Translation.Distance(b.Translation) >= a.Radius()+b.Radius() {
				continue
			}
			pair := CollisionPair{a.Label, b.Label}
			current[pair] = struct{}{}
			if _, ok := c.active[pair]; !ok {
				c.engine.QueueCollisionEvent(CollisionEvent{State: CollisionBegin, Pair: pair})
			}
		}
	}

	var ended []CollisionPair
	for pair := range c.active {
		if _, ok := current[pair]; ok {
			continue
		}
		// A removed sprite ends its pairs without an event.
		if !c.engine.Sprites.Has(pair[0]) || !c.engine.Sprites.Has(pair[1]) {
			continue
		}
		ended = append(ended, pair)
	}
	slices.SortFunc(ended, func(a, b CollisionPair) int {
		if n := strings.Compare(a[0], b[0]); n != 0 {
			return n
		}
		return strings.Compare(a[1], b[1])
	})
	for _, pair := range ended {
		c.engine.QueueCollisionEvent(CollisionEvent{State: CollisionEnd, Pair: pair})
	}

	c.active = current
}

// ActivePairs returns the number of pairs overlapping as of the last run.
func (c *CollisionSystem) ActivePairs() int {
	return len(c.active)
}
