package ecs

import (
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/matrixcolor"
)

// MatrixColor is the component holding an entity's current color matrix.
var MatrixColor = donburi.NewComponentType[matrixcolor.Matrix]()

// Tween is the component holding an entity's in-flight matrix animation.
var Tween = donburi.NewComponentType[*matrixcolor.MatrixTween]()

// TweenFinished is published when an entity's tween completes.
type TweenFinished struct {
	Entity donburi.Entity
	Matrix matrixcolor.Matrix
}

// TweenFinishedEventType is the Donburi event type for finished tweens.
var TweenFinishedEventType = events.NewEventType[TweenFinished]()

var tweening = donburi.NewQuery(filter.Contains(MatrixColor, Tween))

// StartTween animates entry's MatrixColor to the target matrix over
// duration seconds. Entities without a MatrixColor start from the identity.
// An existing tween is replaced.
func StartTween(entry *donburi.Entry, to matrixcolor.Matrix, duration float32, fn ease.TweenFunc) {
	if !entry.HasComponent(MatrixColor) {
		id := matrixcolor.Identity()
		donburi.Add(entry, MatrixColor, &id)
	}
	tw := matrixcolor.NewMatrixTween(*MatrixColor.Get(entry), to, duration, fn)
	if entry.HasComponent(Tween) {
		Tween.SetValue(entry, tw)
		return
	}
	donburi.Add(entry, Tween, &tw)
}

// UpdateTweens advances every tween by dt seconds and writes the result to
// the entity's MatrixColor. Finished tweens are removed and announced via
// TweenFinishedEventType; call ProcessEvents to deliver them.
func UpdateTweens(world donburi.World, dt float32) {
	var finished []donburi.Entity
	tweening.Each(world, func(entry *donburi.Entry) {
		tw := *Tween.Get(entry)
		if tw == nil {
			finished = append(finished, entry.Entity())
			return
		}
		MatrixColor.SetValue(entry, tw.Update(dt))
		if tw.Done {
			finished = append(finished, entry.Entity())
		}
	})

	// Components are removed after the query so archetypes don't change
	// mid-iteration.
	for _, e := range finished {
		entry := world.Entry(e)
		entry.RemoveComponent(Tween)
		TweenFinishedEventType.Publish(world, TweenFinished{
			Entity: e,
			Matrix: *MatrixColor.Get(entry),
		})
	}
}

// Apply transforms c by entry's MatrixColor, or returns c unchanged if the
// entity has none.
func Apply(entry *donburi.Entry, c matrixcolor.Color) matrixcolor.Color {
	if !entry.HasComponent(MatrixColor) {
		return c
	}
	return MatrixColor.Get(entry).Apply(c)
}
