package ecs

import (
	"math"

	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// MorphEventType is the Donburi event type for morph state changes.
// Subscribe to this in your ECS systems to react to toggles.
var MorphEventType = events.NewEventType[evergreen.MorphEvent]()

// GroupData attaches an animated group to an entity.
type GroupData struct {
	Group evergreen.Group
}

// Group is the component carrying an animated group.
var Group = donburi.NewComponentType[GroupData]()

// MorphData is the most recent morph state seen by the store.
type MorphData struct {
	State   evergreen.MorphState
	Toggles uint64
	Elapsed float64
}

// Morph is the singleton component mirroring the morph state.
var Morph = donburi.NewComponentType[MorphData]()

var (
	groupQuery = donburi.NewQuery(filter.Contains(Group))
	morphQuery = donburi.NewQuery(filter.Contains(Morph))
)

// Register creates one entity per group of tree plus the Morph singleton,
// initialized to the tree's current state. It returns the group entities in
// update order.
func Register(world donburi.World, tree *evergreen.Tree) []donburi.Entity {
	groups := tree.Groups()
	entities := make([]donburi.Entity, 0, len(groups))
	for _, g := range groups {
		e := world.Create(Group)
		Group.SetValue(world.Entry(e), GroupData{Group: g})
		entities = append(entities, e)
	}
	if morphQuery.Count(world) == 0 {
		e := world.Create(Morph)
		Morph.SetValue(world.Entry(e), MorphData{
			State:   tree.State(),
			Toggles: tree.Morph().Toggles(),
			Elapsed: tree.Elapsed(),
		})
	}
	return entities
}

// CurrentMorph returns the mirrored morph state, or false if Register has
// not created the singleton.
func CurrentMorph(world donburi.World) (MorphData, bool) {
	entry, ok := morphQuery.First(world)
	if !ok {
		return MorphData{}, false
	}
	return *Morph.Get(entry), true
}

// AnimateSystem updates every entity carrying a Group component. It keeps
// its own clock so a world can be driven without Tree.Step.
type AnimateSystem struct {
	elapsed float64
}

// Update advances the clock by dt and updates each group against state.
// Negative, NaN or infinite dt is treated as zero.
func (a *AnimateSystem) Update(world donburi.World, dt float64, state evergreen.MorphState) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	a.elapsed += dt
	groupQuery.Each(world, func(entry *donburi.Entry) {
		Group.Get(entry).Group.Update(dt, a.elapsed, state)
	})
}

// Elapsed returns the system's accumulated time in seconds.
func (a *AnimateSystem) Elapsed() float64 {
	return a.elapsed
}

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Morph
// events are published to MorphEventType and can be consumed with
// events.Subscribe and ProcessEvents; the Morph singleton, if registered,
// is updated immediately.
func NewDonburiStore(world donburi.World) evergreen.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitMorph(event evergreen.MorphEvent) {
	if entry, ok := morphQuery.First(s.world); ok {
		Morph.SetValue(entry, MorphData{
			State:   event.State,
			Toggles: event.Toggles,
			Elapsed: event.Elapsed,
		})
	}
	MorphEventType.Publish(s.world, event)
}
