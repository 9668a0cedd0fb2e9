package core

import "math"

// Physics constants. The motion of every actor is tuned against these
// values together with the floor/ceil grid test in Level.Touches.
const (
	Gravity      = 30.0 // Downward acceleration, units/s²
	PlayerXSpeed = 7.0  // Horizontal run speed, units/s
	JumpSpeed    = 17.0 // Upward impulse applied when jumping off a surface
	WobbleSpeed  = 8.0  // Collectible wobble angular speed, rad/s
	WobbleDist   = 0.07 // Collectible wobble amplitude, units

	HazardSpeedHoriz = 2.0 // '=' hazards
	HazardSpeedVert  = 2.0 // '|' hazards
	HazardSpeedDrip  = 3.0 // 'v' hazards

	PlayerSpawnLift = 1.5 // Player spawns this far above its marker cell
)

// Actor sizes, fixed at creation.
var (
	PlayerSize = V(0.8, 1.5)
	CoinSize   = V(0.6, 0.6)
	HazardSize = V(1, 1)
)

// ActorKind tags the closed set of actor variants.
type ActorKind uint8

const (
	KindPlayer ActorKind = iota
	KindCoin
	KindHazard
)

// String returns the string representation of an actor kind.
func (k ActorKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCoin:
		return "coin"
	case KindHazard:
		return "lava"
	default:
		return "unknown"
	}
}

// KeyState is the snapshot of the four directional keys for one step.
// The zero value means nothing is pressed.
type KeyState struct {
	Left, Right, Up, Down bool
}

// Actor is an immutable value covering all three variants.
// Fields that do not belong to an actor's Kind stay at their zero value.
type Actor struct {
	Kind ActorKind
	Char rune // Legend character the actor was spawned from
	Pos  Vec
	Size Vec

	// Player and hazard.
	Speed Vec

	// Coin.
	BasePos Vec
	Wobble  float64

	// Drip hazard: snaps back to ResetPos instead of bouncing.
	HasReset bool
	ResetPos Vec
}

// NewPlayer creates a player standing on the marker cell at pos.
func NewPlayer(pos Vec) Actor {
	return Actor{
		Kind: KindPlayer,
		Char: CharPlayer,
		Pos:  pos.Add(V(0, -PlayerSpawnLift)),
		Size: PlayerSize,
	}
}

// NewCoin creates a collectible anchored at pos with the given wobble phase.
func NewCoin(pos Vec, phase float64) Actor {
	return Actor{
		Kind:    KindCoin,
		Char:    CharCoin,
		Pos:     pos,
		Size:    CoinSize,
		BasePos: pos,
		Wobble:  phase,
	}
}

// NewHazard creates a moving lava block for one of the '=', '|' or 'v'
// legend characters. Any other character yields a dripping hazard.
func NewHazard(pos Vec, ch rune) Actor {
	a := Actor{
		Kind: KindHazard,
		Char: ch,
		Pos:  pos,
		Size: HazardSize,
	}
	switch ch {
	case CharLavaHoriz:
		a.Speed = V(HazardSpeedHoriz, 0)
	case CharLavaVert:
		a.Speed = V(0, HazardSpeedVert)
	default:
		a.Char = CharLavaDrip
		a.Speed = V(0, HazardSpeedDrip)
		a.HasReset = true
		a.ResetPos = pos
	}
	return a
}

// Update returns the actor advanced by dt seconds against the given world.
// The receiver is never modified.
func (a Actor) Update(dt float64, w *World, keys KeyState) Actor {
	switch a.Kind {
	case KindPlayer:
		return a.updatePlayer(dt, w.level, keys)
	case KindCoin:
		return a.updateCoin(dt)
	case KindHazard:
		return a.updateHazard(dt, w.level)
	default:
		return a
	}
}

// updatePlayer resolves horizontal motion first, then vertical motion from
// the horizontally resolved position.
func (a Actor) updatePlayer(dt float64, level *Level, keys KeyState) Actor {
	xSpeed := 0.0
	if keys.Left {
		xSpeed -= PlayerXSpeed
	}
	if keys.Right {
		xSpeed += PlayerXSpeed
	}
	if level.Touches(a.Pos.Add(V(xSpeed*dt, 0)), a.Size, CellWall) {
		xSpeed = 0
	}
	pos := a.Pos.Add(V(xSpeed*dt, 0))

	ySpeed := a.Speed.Y + Gravity*dt
	if level.Touches(pos.Add(V(0, ySpeed*dt)), a.Size, CellWall) {
		if keys.Up && ySpeed > 0 {
			ySpeed = -JumpSpeed
		} else {
			ySpeed = 0
		}
	}
	pos = pos.Add(V(0, ySpeed*dt))

	a.Pos = pos
	a.Speed = V(xSpeed, ySpeed)
	return a
}

func (a Actor) updateCoin(dt float64) Actor {
	a.Wobble += dt * WobbleSpeed
	a.Pos = a.BasePos.Add(V(0, math.Sin(a.Wobble)*WobbleDist))
	return a
}

// updateHazard moves the block along its velocity. On wall contact a drip
// hazard respawns at ResetPos; other hazards stay put and reverse.
func (a Actor) updateHazard(dt float64, level *Level) Actor {
	next := a.Pos.Add(a.Speed.Scale(dt))
	if !level.Touches(next, a.Size, CellWall) {
		a.Pos = next
		return a
	}
	if a.HasReset {
		a.Pos = a.ResetPos
		return a
	}
	a.Speed = a.Speed.Scale(-1)
	return a
}
