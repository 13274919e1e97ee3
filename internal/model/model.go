package model

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Adda-Baaj/hasi/internal/domain"
	"github.com/Adda-Baaj/hasi/internal/logger"
	"github.com/Adda-Baaj/hasi/pkg/jokeservice"
)

// ErrRequestInFlight is returned by GetJoke while an earlier request is outstanding.
var ErrRequestInFlight = errors.New("joke request already in flight")

// ResultCallback receives exactly one outcome per accepted GetJoke call.
type ResultCallback interface {
	ProvideSuccess(joke domain.Joke)
	ProvideError(failure domain.Failure)
}

// Callbacks adapts a pair of functions to ResultCallback. Nil fields are skipped.
type Callbacks struct {
	OnSuccess func(domain.Joke)
	OnError   func(domain.Failure)
}

func (c Callbacks) ProvideSuccess(joke domain.Joke) {
	if c.OnSuccess != nil {
		c.OnSuccess(joke)
	}
}

func (c Callbacks) ProvideError(failure domain.Failure) {
	if c.OnError != nil {
		c.OnError(failure)
	}
}

// Result is the outcome of a single fetch. Err is nil on success.
type Result struct {
	Joke    domain.Joke
	Failure domain.Failure
	Err     error
}

// OK reports whether the fetch produced a joke.
func (r Result) OK() bool { return r.Err == nil }

// Model runs joke fetches off the caller's goroutine and hands each outcome to
// the registered callback. At most one fetch is outstanding at a time.
//
// Callbacks run on the fetch goroutine with the delivery lock held; they may
// call Init or GetJoke but must not call Clear synchronously.
type Model struct {
	service jokeservice.Service
	decoder jokeservice.Decoder
	log     logger.Logger

	// deliverMu serialises callback invocation against Clear.
	deliverMu sync.Mutex

	mu         sync.Mutex
	callback   ResultCallback
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc

	wg sync.WaitGroup
}

// New wires a model. A nil decoder defaults to the JSON decoder.
func New(service jokeservice.Service, decoder jokeservice.Decoder, log logger.Logger) *Model {
	if decoder == nil {
		decoder, _ = jokeservice.NewDecoder(jokeservice.FormatJSON, jokeservice.DecoderOptions{})
	}
	return &Model{
		service: service,
		decoder: decoder,
		log:     logger.Ensure(log),
	}
}

// Init registers cb as the single active callback, replacing any previous one.
// A fetch already in flight delivers to cb.
func (m *Model) Init(cb ResultCallback) {
	m.mu.Lock()
	m.callback = cb
	m.mu.Unlock()
}

// GetJoke starts one fetch and returns immediately.
func (m *Model) GetJoke(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrRequestInFlight
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	m.inFlight = true
	m.cancel = cancel
	gen := m.generation
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(fetchCtx, cancel, gen)
	return nil
}

// InFlight reports whether a fetch is outstanding.
func (m *Model) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// Clear drops the callback and cancels any outstanding fetch. Once Clear
// returns no further delivery happens for fetches started before it.
func (m *Model) Clear() {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	m.callback = nil
	m.generation++
	m.inFlight = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()
}

// Wait blocks until every fetch goroutine started so far has exited.
func (m *Model) Wait() {
	m.wg.Wait()
}

// Fetch performs one synchronous fetch and maps it to a domain Result.
func (m *Model) Fetch(ctx context.Context) Result {
	start := time.Now()

	body, err := m.service.GetJoke(ctx)
	if err != nil {
		failure := domain.FailureFor(jokeservice.Classify(err))
		m.log.WarnObj("joke fetch failed", "fetch_error", map[string]any{
			"failure":    failure.Kind.String(),
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return Result{Failure: failure, Err: err}
	}

	joke, err := m.decoder.Decode(body)
	if err != nil {
		failure := domain.Failure{Kind: domain.FailureServiceUnavailable}
		m.log.WarnObj("joke payload rejected", "decode_error", map[string]any{
			"error": err.Error(),
		})
		return Result{Failure: failure, Err: err}
	}

	m.log.DebugObj("joke fetched", "fetch_meta", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return Result{Joke: joke}
}

func (m *Model) run(ctx context.Context, cancel context.CancelFunc, gen uint64) {
	defer m.wg.Done()
	defer cancel()

	res := m.Fetch(ctx)

	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	current := m.generation == gen
	if current {
		m.inFlight = false
		m.cancel = nil
	}
	cb := m.callback
	m.mu.Unlock()

	if !current || cb == nil {
		m.log.DebugObj("joke result dropped", "delivery_meta", map[string]any{
			"cleared":  !current,
			"callback": cb != nil,
		})
		return
	}

	if res.OK() {
		cb.ProvideSuccess(res.Joke)
		return
	}
	cb.ProvideError(res.Failure)
}
