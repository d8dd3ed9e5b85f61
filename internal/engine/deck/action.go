package deck

import "github.com/younwookim/webgames/internal/domain/input"

type effect int

const (
	effectNone effect = iota
	effectPlayCard
	effectDraw
	effectReshuffle
)

// action is a timed player interaction. It becomes uncancellable once
// three quarters of its time cost has elapsed.
type action struct {
	name     string
	timeCost float64
	effect   effect
	card     int

	progress       float64
	cancelProgress float64
	applied        bool
}

func (a *action) finishTime() float64 { return a.timeCost * 0.75 }
func (a *action) cooldownTime() float64 { return a.timeCost * 0.25 }
func (a *action) finished() bool { return a.progress > a.finishTime() }

// fraction returns completion progress in [0, 1]
func (a *action) fraction() float64 {
	if a.timeCost <= 0 {
		return 1
	}
	f := a.progress / a.timeCost
	if f > 1 {
		return 1
	}
	return f
}

// interaction is an action the player is performing, started by intent
type interaction struct {
	intent   input.ActionID
	action   *action
	canceled bool
}

// update advances the action by dt. It reports whether the action is done
// and, separately, whether its effect fired during this step.
func (i *interaction) update(dt float64) (done, fire bool) {
	a := i.action
	if i.canceled && !a.finished() {
		a.cancelProgress += dt
		return a.cancelProgress >= a.cooldownTime(), false
	}

	wasFinished := a.finished()
	a.progress += dt
	if a.finished() && !wasFinished && !a.applied {
		a.applied = true
		fire = true
	}
	return a.progress >= a.timeCost, fire
}
