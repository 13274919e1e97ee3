package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/Adda-Baaj/hasi/internal/domain"
	"github.com/Adda-Baaj/hasi/internal/model"
)

// ErrCleared is returned by GetJoke once the view model has been cleared.
var ErrCleared = errors.New("view model cleared")

// TextCallback is the render sink of the UI. ProvideText runs on the model's
// fetch goroutine while delivery is locked: it may call GetJoke or Init, but
// calling Clear from inside ProvideText deadlocks. Hand the text off to the
// UI's own goroutine first.
type TextCallback interface {
	ProvideText(text string)
}

// TextFunc adapts a function to TextCallback.
type TextFunc func(text string)

func (f TextFunc) ProvideText(text string) { f(text) }

// State is the lifecycle state of a ViewModel.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateCleared
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateCleared:
		return "cleared"
	default:
		return "idle"
	}
}

// JokeModel is the model surface the view model drives.
type JokeModel interface {
	Init(cb model.ResultCallback)
	GetJoke(ctx context.Context) error
	InFlight() bool
	Clear()
}

// ViewModel turns model outcomes into display text for a single UI.
type ViewModel struct {
	model  JokeModel
	lookup domain.MessageLookup

	mu      sync.Mutex
	ui      TextCallback
	cleared bool
}

// New builds a view model over m, resolving failure messages through lookup.
func New(m JokeModel, lookup domain.MessageLookup) *ViewModel {
	return &ViewModel{model: m, lookup: lookup}
}

// Init registers the UI callback and subscribes to the model.
func (v *ViewModel) Init(ui TextCallback) {
	v.mu.Lock()
	v.ui = ui
	v.mu.Unlock()

	v.model.Init(model.Callbacks{
		OnSuccess: func(joke domain.Joke) { v.provide(joke.Render()) },
		OnError:   func(failure domain.Failure) { v.provide(failure.Message(v.lookup)) },
	})
}

// GetJoke forwards to the model. Callers should wait for the previous text
// before triggering again; an overlapping call returns model.ErrRequestInFlight.
func (v *ViewModel) GetJoke(ctx context.Context) error {
	v.mu.Lock()
	cleared := v.cleared
	v.mu.Unlock()
	if cleared {
		return ErrCleared
	}
	return v.model.GetJoke(ctx)
}

// Clear detaches the UI and clears the model. The view model is unusable afterwards.
func (v *ViewModel) Clear() {
	v.mu.Lock()
	v.ui = nil
	v.cleared = true
	v.mu.Unlock()

	v.model.Clear()
}

// State reports the current lifecycle state.
func (v *ViewModel) State() State {
	v.mu.Lock()
	cleared := v.cleared
	v.mu.Unlock()

	switch {
	case cleared:
		return StateCleared
	case v.model.InFlight():
		return StateFetching
	default:
		return StateIdle
	}
}

func (v *ViewModel) provide(text string) {
	v.mu.Lock()
	ui := v.ui
	v.mu.Unlock()

	if ui != nil {
		ui.ProvideText(text)
	}
}
