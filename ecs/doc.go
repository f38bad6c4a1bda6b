// Package ecs provides ECS adapters for matrixcolor.
//
// Entities carry their current color matrix in the [MatrixColor] component.
// [StartTween] attaches a [Tween] that [UpdateTweens] advances each frame;
// when a tween finishes it is removed and a [TweenFinished] event is
// published to [TweenFinishedEventType].
//
// Usage:
//
//	e := world.Create(ecs.MatrixColor)
//	entry := world.Entry(e)
//	ecs.StartTween(entry, matrixcolor.Sepia(), 0.5, ease.OutQuad)
//	// each frame:
//	ecs.UpdateTweens(world, dt)
//
// See [Donburi].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
