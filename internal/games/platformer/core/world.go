package core

import (
	"math"
	"math/rand"
)

// Driver timing. The engine does not use these itself; they are the
// contract between the engine and whatever loop calls Step.
const (
	MaxStep    = 0.1 // Largest dt a frame driver may pass to Step
	LingerTime = 1.0 // Seconds a terminal world keeps animating before teardown
)

// Status is the outcome of a level attempt.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is won or lost.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// World is one immutable snapshot of a level attempt.
// Step produces a new World; older snapshots remain valid for rendering.
type World struct {
	level  *Level
	actors []Actor
	status Status
}

// NewWorld creates the initial world for a level. rng seeds the wobble phase
// of each collectible; a nil rng starts every collectible at phase 0.
func NewWorld(level *Level, rng *rand.Rand) (*World, error) {
	if !level.HasPlayer() {
		return nil, ErrMissingPlayer
	}

	actors := make([]Actor, 0, len(level.spawns))
	for _, s := range level.spawns {
		switch s.Kind {
		case KindPlayer:
			actors = append(actors, NewPlayer(s.Pos))
		case KindCoin:
			phase := 0.0
			if rng != nil {
				phase = rng.Float64() * 2 * math.Pi
			}
			actors = append(actors, NewCoin(s.Pos, phase))
		case KindHazard:
			actors = append(actors, NewHazard(s.Pos, s.Char))
		}
	}

	return &World{level: level, actors: actors, status: StatusPlaying}, nil
}

// Level returns the shared level.
func (w *World) Level() *Level {
	return w.level
}

// Status returns the world status.
func (w *World) Status() Status {
	return w.status
}

// Actors returns a copy of the actor list in update order.
func (w *World) Actors() []Actor {
	out := make([]Actor, len(w.actors))
	copy(out, w.actors)
	return out
}

// Player returns the player actor.
func (w *World) Player() Actor {
	for _, a := range w.actors {
		if a.Kind == KindPlayer {
			return a
		}
	}
	// Unreachable for worlds built by NewWorld.
	return Actor{Kind: KindPlayer, Size: PlayerSize}
}

// CoinsLeft returns the number of collectibles still in the world.
func (w *World) CoinsLeft() int {
	n := 0
	for _, a := range w.actors {
		if a.Kind == KindCoin {
			n++
		}
	}
	return n
}

// Step advances every actor by dt and resolves lava, hazard and collectible
// contact with the player. Once the status is terminal only the actor
// motion continues; the status never changes again.
func (w *World) Step(dt float64, keys KeyState) *World {
	actors := make([]Actor, len(w.actors))
	for i, a := range w.actors {
		actors[i] = a.Update(dt, w, keys)
	}

	next := &World{level: w.level, actors: actors, status: w.status}
	if w.status != StatusPlaying {
		return next
	}

	player := next.Player()
	if w.Touches(player, CellLava) {
		next.status = StatusLost
		return next
	}

	remaining := make([]Actor, 0, len(actors))
	collected := false
	lost := false
	for _, a := range actors {
		if a.Kind == KindPlayer || !Overlap(a, player) {
			remaining = append(remaining, a)
			continue
		}
		switch a.Kind {
		case KindCoin:
			collected = true
		case KindHazard:
			lost = true
			remaining = append(remaining, a)
		}
	}
	next.actors = remaining

	switch {
	case lost:
		next.status = StatusLost
	case collected && next.CoinsLeft() == 0:
		next.status = StatusWon
	}
	return next
}
