// Package deck is a small card-and-movement engine: the player walks on a
// plane, plays cards from a hand and interacts with the deck at the origin.
// It advances in fixed steps accumulated from frame deltas.
package deck

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"

	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/system"
	"github.com/younwookim/webgames/internal/domain/input"
)

// UpdateDuration is the length of one simulation step in seconds
const UpdateDuration = 1.0 / 180.0

const (
	tileWidth  = 2.0
	tileRadius = tileWidth / 2
)

var (
	colorPlayer   = color.RGBA{255, 255, 255, 255}
	colorDeck     = color.RGBA{90, 70, 140, 255}
	colorHealthBG = color.RGBA{0, 0, 0, 255}
	colorHealthFG = color.RGBA{255, 0, 0, 255}
	colorProgress = color.RGBA{240, 200, 80, 255}
	colorText     = color.RGBA{230, 230, 230, 255}
)

// Card is an entry in the player's hand
type Card struct {
	Name     string
	TimeCost float64
}

// Engine implements engine.Engine
type Engine struct {
	constants engine.Constants
	logger    *log.Logger
	host      engine.Host

	posX, posY  float64
	velX, velY  float64
	health      int
	maxHealth   int
	hand        []Card
	discard     []Card
	interacting *interaction
	begun       input.ActionID
	played      int

	time        float64
	accumulated float64
}

// New creates a deck engine reading tunables from constants
func New(constants engine.Constants, logger *log.Logger) *Engine {
	return &Engine{
		constants: constants,
		logger:    logger.WithPrefix("deck"),
	}
}

// Initialize sets up the starting game
func (e *Engine) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.maxHealth = int(e.constants.Get("player_max_health", 100))
	e.health = e.maxHealth
	e.hand = []Card{
		{Name: "Build conveyor", TimeCost: 2},
		{Name: "Build tower", TimeCost: 3},
		{Name: "Patch up", TimeCost: 1},
	}
	e.discard = nil
	return nil
}

// Init stores the host
func (e *Engine) Init(host engine.Host) {
	e.host = host
}

// Step runs as many fixed updates as the accumulated time allows and draws
func (e *Engine) Step(in engine.FrameInput) error {
	if e.host == nil {
		return fmt.Errorf("deck: step before init")
	}

	e.accumulated += in.Delta.Seconds()
	for e.time < e.accumulated {
		e.update(in.Intent)
		e.time += UpdateDuration
	}

	e.draw(in.Geometry)
	return nil
}

func (e *Engine) update(intent system.Intent) {
	interact, isInteract := intent.(system.InteractIntent)

	if isInteract && e.begun != interact.Action && e.standingStill() {
		if a := e.actionFor(interact.Action); a != nil {
			e.interacting = &interaction{intent: interact.Action, action: a}
			e.begun = interact.Action
		}
	}
	// holding the same intent after an interaction ends must not restart it
	if !isInteract || interact.Action != e.begun {
		e.begun = input.ActionID{}
	}

	if e.interacting != nil {
		e.updateInteraction(intent)
		return
	}
	e.updateMovement(intent)
}

func (e *Engine) standingStill() bool {
	return e.interacting == nil && e.velX == 0 && e.velY == 0
}

func (e *Engine) updateInteraction(intent system.Intent) {
	in := e.interacting
	if intent != (system.InteractIntent{Action: in.intent}) {
		in.canceled = true
	}

	done, fire := in.update(UpdateDuration)
	if fire {
		e.apply(in.action)
	}
	if done {
		e.interacting = nil
		e.velX, e.velY = 0, 0
	}
}

func (e *Engine) updateMovement(intent system.Intent) {
	acceleration := e.constants.Get("player_acceleration", 8.0)
	maxSpeed := e.constants.Get("player_max_speed", 1.4) * tileWidth

	var targetX, targetY float64
	if move, ok := intent.(system.MoveIntent); ok {
		targetX, targetY = limitMagnitude(float64(move.Horizontal), float64(move.Vertical), 1)
		targetX *= maxSpeed
		targetY *= maxSpeed
	}

	// turning against the current velocity decelerates faster
	bonus := 1.0
	const epsilon = 0.00001
	ax, ay := targetX-e.velX, targetY-e.velY
	if an := math.Hypot(ax, ay); an > epsilon {
		if vn := math.Hypot(e.velX, e.velY); vn > epsilon {
			dot := (ax/an)*(e.velX/vn) + (ay/an)*(e.velY/vn)
			bonus += math.Max(-dot, 0) * e.constants.Get("player_decelerate_bonus", 0.5)
		}
	}

	e.velX, e.velY = moveTowards(e.velX, e.velY, targetX, targetY, acceleration*bonus*UpdateDuration)
	e.velX, e.velY = limitMagnitude(e.velX, e.velY, maxSpeed)
	e.posX += e.velX * UpdateDuration
	e.posY += e.velY * UpdateDuration
}

// actionFor returns the action an intent starts, or nil when none is available
func (e *Engine) actionFor(id input.ActionID) *action {
	switch id.Kind {
	case input.ActionPlayCard:
		n := int(id.Card)
		if n >= len(e.hand) {
			return nil
		}
		c := e.hand[n]
		return &action{name: c.Name, timeCost: c.TimeCost, effect: effectPlayCard, card: n}
	case input.ActionInteractLeft:
		if !e.onDeck() || len(e.discard) == 0 {
			return nil
		}
		return &action{name: "Draw", timeCost: e.constants.Get("draw_time", 1), effect: effectDraw}
	case input.ActionInteractRight:
		if !e.onDeck() || len(e.discard) == 0 {
			return nil
		}
		return &action{name: "Reshuffle", timeCost: e.constants.Get("reshuffle_time", 2), effect: effectReshuffle}
	}
	return nil
}

func (e *Engine) onDeck() bool {
	return math.Abs(e.posX) <= tileRadius && math.Abs(e.posY) <= tileRadius
}

func (e *Engine) apply(a *action) {
	switch a.effect {
	case effectPlayCard:
		if a.card >= len(e.hand) {
			return
		}
		c := e.hand[a.card]
		e.hand = append(e.hand[:a.card], e.hand[a.card+1:]...)
		e.discard = append(e.discard, c)
		e.played++
		e.logger.Debug("card played", "card", c.Name)
	case effectDraw:
		if len(e.discard) == 0 {
			return
		}
		e.hand = append(e.hand, e.discard[0])
		e.discard = e.discard[1:]
	case effectReshuffle:
		e.hand = append(e.hand, e.discard...)
		e.discard = nil
	}
}

func (e *Engine) draw(geo system.Geometry) {
	e.host.Clear()

	scale := e.constants.Get("draw_scale", 24) * geo.DevicePixelRatio
	cx, cy := float64(geo.Physical.W)/2, float64(geo.Physical.H)/2
	toCanvas := func(x, y float64) (float64, float64) {
		return cx + x*scale, cy - y*scale
	}

	dx, dy := toCanvas(0, 0)
	e.host.DrawRect(dx, dy, tileWidth*scale, tileWidth*scale, colorDeck)

	px, py := toCanvas(e.posX, e.posY)
	size := tileWidth * 0.4 * scale
	e.host.DrawRect(px, py, size, size, colorPlayer)

	// the deck canvas turns rects a quarter, so extents are (tall, wide)
	hx, hy := toCanvas(e.posX+tileRadius*0.5, e.posY)
	barW, barH := tileRadius*0.25*scale, tileWidth*scale
	e.host.DrawRect(hx, hy, barH, barW, colorHealthBG)
	ratio := float64(e.health) / float64(max(e.maxHealth, 1))
	e.host.DrawRect(hx, hy+barH*(1-ratio)/2, barH*ratio, barW, colorHealthFG)

	if in := e.interacting; in != nil {
		w := tileWidth * scale * in.action.fraction()
		e.host.DrawRect(px, py-size, size*0.2, w, colorProgress)
	}

	textSize := 14 * geo.DevicePixelRatio
	for i, c := range e.hand {
		line := fmt.Sprintf("%d: %s", i+1, c.Name)
		e.host.DrawText(8*geo.DevicePixelRatio, (8+float64(i)*18)*geo.DevicePixelRatio, textSize, colorText, line)
	}
	status := fmt.Sprintf("played %d  discard %d", e.played, len(e.discard))
	e.host.DrawText(8*geo.DevicePixelRatio, float64(geo.Physical.H)-24*geo.DevicePixelRatio, textSize, colorText, status)
}

// Position returns the player position in world units
func (e *Engine) Position() (float64, float64) {
	return e.posX, e.posY
}

// Hand returns the cards currently in hand
func (e *Engine) Hand() []Card {
	return e.hand
}

// Played returns how many cards have been played
func (e *Engine) Played() int {
	return e.played
}

// Interacting returns the intent of the running interaction, if any
func (e *Engine) Interacting() (input.ActionID, bool) {
	if e.interacting == nil {
		return input.ActionID{}, false
	}
	return e.interacting.intent, true
}

// SimTime returns the simulated time in seconds
func (e *Engine) SimTime() float64 {
	return e.time
}

func limitMagnitude(x, y, limit float64) (float64, float64) {
	m := math.Hypot(x, y)
	if m > limit && m > 0 {
		return x * limit / m, y * limit / m
	}
	return x, y
}

func moveTowards(x, y, tx, ty, step float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	d := math.Hypot(dx, dy)
	if d <= step || d == 0 {
		return tx, ty
	}
	return x + dx*step/d, y + dy*step/d
}
