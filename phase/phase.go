// Package phase drives the game through loading, playing and level transitions. The
// state machine itself is the pure Transition function; Controller runs its effects.
package phase

import (
	"errors"

	"github.com/automoto/tilehop/shared/leveldata"
)

// State is the game-wide phase.
type State int

const (
	Loading State = iota
	Playing
	Transitioning
	// Finished is the end of the level chain: no tiles, no further transitions.
	Finished
	// Failed is terminal. Controller.Err holds the cause.
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Transitioning:
		return "transitioning"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// LoadStatus is what a non-blocking asset poll reports.
type LoadStatus int

const (
	LoadPending LoadStatus = iota
	LoadDone
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadDone:
		return "done"
	case LoadFailed:
		return "failed"
	}
	return "unknown"
}

// Event is an input to Transition.
type Event interface {
	eventName() string
}

// Boot starts asset loading.
type Boot struct{}

// LoadProgress carries one poll of the asset loader.
type LoadProgress struct {
	Status LoadStatus
	Err    error
}

// ForceTransition ends the current level.
type ForceTransition struct{}

// Advance carries the finished level's successor, if it has one.
type Advance struct {
	Next    string
	HasNext bool
}

// Fault reports an error raised while running an effect.
type Fault struct {
	Err error
}

func (Boot) eventName() string            { return "boot" }
func (LoadProgress) eventName() string    { return "load_progress" }
func (ForceTransition) eventName() string { return "force_transition" }
func (Advance) eventName() string         { return "advance" }
func (Fault) eventName() string           { return "fault" }

// Effect is work Transition asks the runtime to do, in order.
type Effect interface {
	effectName() string
}

type Preload struct{}

// BuildRegistry parses the manifest and makes its first entry the current level.
type BuildRegistry struct{}

type SpawnLevel struct{}

type DespawnLevel struct{}

// SelectLevel makes the named manifest entry the current level.
type SelectLevel struct {
	Level string
}

type ReportFailure struct {
	Err error
}

func (Preload) effectName() string       { return "preload" }
func (BuildRegistry) effectName() string { return "build_registry" }
func (SpawnLevel) effectName() string    { return "spawn_level" }
func (DespawnLevel) effectName() string  { return "despawn_level" }
func (SelectLevel) effectName() string   { return "select_level" }
func (ReportFailure) effectName() string { return "report_failure" }

// errLoadFailed stands in when the loader reports failure without a cause.
var errLoadFailed = errors.New("asset loading failed")

// Transition returns the next state and the effects to run for ev in s. Events that do
// not apply to s leave it unchanged with no effects.
func Transition(s State, ev Event) (State, []Effect) {
	if f, ok := ev.(Fault); ok {
		switch s {
		case Failed:
			return s, nil
		case Loading:
			return Failed, []Effect{ReportFailure{Err: f.Err}}
		default:
			return Failed, []Effect{DespawnLevel{}, ReportFailure{Err: f.Err}}
		}
	}

	switch s {
	case Loading:
		switch ev := ev.(type) {
		case Boot:
			return Loading, []Effect{Preload{}}
		case LoadProgress:
			switch ev.Status {
			case LoadDone:
				return Playing, []Effect{BuildRegistry{}, SpawnLevel{}}
			case LoadFailed:
				return Failed, []Effect{ReportFailure{Err: assetLoadFailure(ev.Err)}}
			}
		}

	case Playing:
		if _, ok := ev.(ForceTransition); ok {
			return Transitioning, []Effect{DespawnLevel{}}
		}

	case Transitioning:
		if ev, ok := ev.(Advance); ok {
			if !ev.HasNext {
				return Finished, nil
			}
			return Playing, []Effect{SelectLevel{Level: ev.Next}, SpawnLevel{}}
		}
	}

	return s, nil
}

func assetLoadFailure(err error) error {
	if err == nil {
		err = errLoadFailed
	}
	if errors.Is(err, leveldata.ErrAssetLoadFailure) {
		return err
	}
	return leveldata.AssetLoadError("", err)
}
