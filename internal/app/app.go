package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Adda-Baaj/hasi/internal/config"
	"github.com/Adda-Baaj/hasi/internal/logger"
	"github.com/Adda-Baaj/hasi/internal/messages"
	"github.com/Adda-Baaj/hasi/internal/model"
	"github.com/Adda-Baaj/hasi/internal/viewmodel"
	"github.com/Adda-Baaj/hasi/pkg/httpclient"
	"github.com/Adda-Baaj/hasi/pkg/jokeservice"
	"github.com/Adda-Baaj/hasi/pkg/sinks"
)

// App is the terminal front end. It owns the view model and is the single
// execution context in which triggers are handled and texts are rendered.
type App struct {
	cfg          *config.Config
	log          logger.Logger
	model        *model.Model
	vm           *viewmodel.ViewModel
	fanout       *sinks.Fanout
	in           io.Reader
	texts        chan string
	done         chan struct{}
	shutdownOnce sync.Once
}

// Option customises App construction.
type Option func(*options)

type options struct {
	in      io.Reader
	service jokeservice.Service
	sinks   []sinks.Sink
}

// WithInput sets the trigger source (defaults to stdin).
func WithInput(r io.Reader) Option { return func(o *options) { o.in = r } }

// WithService overrides the configured joke service.
func WithService(s jokeservice.Service) Option { return func(o *options) { o.service = s } }

// WithSinks overrides the configured display sinks.
func WithSinks(s ...sinks.Sink) Option { return func(o *options) { o.sinks = s } }

// New builds the app runtime from config.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	o := options{in: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	catalog, err := messages.Load(cfg.MessagesFile, cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	log.InfoObj("messages loaded", "messages_meta", map[string]any{
		"file":   cfg.MessagesFile,
		"locale": catalog.Locale(),
	})

	service, format := o.service, cfg.ResponseFormat
	if service == nil {
		service, format = buildService(cfg)
	}
	decoder, err := jokeservice.NewDecoder(format, jokeservice.DecoderOptions{
		SetupSelector:     cfg.SetupSelector,
		PunchlineSelector: cfg.PunchlineSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}
	log.InfoObj("joke service configured", "service_meta", map[string]any{
		"mode":            cfg.ServiceMode,
		"url":             cfg.JokeURL,
		"response_format": format,
	})

	built := o.sinks
	if built == nil {
		built, err = buildSinks(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
	}
	fanout := sinks.NewFanout(built)
	if fanout.Size() == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}

	m := model.New(service, decoder, log)

	return &App{
		cfg:    cfg,
		log:    log,
		model:  m,
		vm:     viewmodel.New(m, catalog),
		fanout: fanout,
		in:     o.in,
		texts:  make(chan string, 1),
		done:   make(chan struct{}),
	}, nil
}

func buildService(cfg *config.Config) (jokeservice.Service, string) {
	if cfg.ServiceMode == config.ServiceModeDemo {
		return jokeservice.NewCyclingService(cfg.DemoDelay), jokeservice.FormatJSON
	}
	client := httpclient.NewRestyClient(cfg.RequestTimeout, httpclient.WithUserAgent(cfg.AppName))
	return jokeservice.NewHTTPService(cfg.JokeURL, client), cfg.ResponseFormat
}

func buildSinks(ctx context.Context, cfg *config.Config, log logger.Logger) ([]sinks.Sink, error) {
	cfgs := sinks.DefaultConfigs()
	if cfg.SinksFile != "" {
		reg, err := sinks.LoadRegistry(cfg.SinksFile)
		if err != nil {
			return nil, fmt.Errorf("load sinks registry: %w", err)
		}
		cfgs = reg.Enabled()
	}

	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), cfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(cfgs))
	for _, c := range cfgs {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("sinks configured", "sinks_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})
	return built, nil
}

// Run handles triggers until the input ends (and the last fetch has been
// rendered) or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.vm == nil {
		return fmt.Errorf("app is not initialized")
	}
	defer a.shutdown()

	a.vm.Init(viewmodel.TextFunc(a.provideText))

	triggers := a.triggers(ctx)
	inputDone, pending := false, false

	a.log.InfoObj("joke loop starting", "app_state", map[string]any{
		"sinks_count":      a.fanout.Size(),
		"trigger_interval": a.cfg.TriggerInterval.String(),
		"once":             a.cfg.Once,
	})

	for {
		select {
		case <-ctx.Done():
			a.log.InfoObj("joke loop exiting", "reason", ctx.Err())
			return nil
		case _, ok := <-triggers:
			if !ok {
				triggers, inputDone = nil, true
				if !pending {
					return nil
				}
				continue
			}
			if a.trigger(ctx) {
				pending = true
			}
		case text := <-a.texts:
			pending = false
			a.render(ctx, text)
			if inputDone {
				return nil
			}
		}
	}
}

func (a *App) trigger(ctx context.Context) bool {
	err := a.vm.GetJoke(ctx)
	switch {
	case err == nil:
		a.log.DebugObj("joke requested", "vm_state", a.vm.State().String())
		return true
	case errors.Is(err, model.ErrRequestInFlight):
		a.log.WarnObj("joke request still in flight", "vm_state", a.vm.State().String())
	default:
		a.log.ErrorObj("joke request failed", "error", err)
	}
	return false
}

func (a *App) render(ctx context.Context, text string) {
	evt := sinks.NewEvent(a.cfg.AppName, text)
	delivered, err := a.fanout.Deliver(ctx, evt)
	if err != nil {
		a.log.ErrorObj("sink delivery failed", "delivery_error", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
}

// provideText runs on the model's fetch goroutine and hands text over to Run.
func (a *App) provideText(text string) {
	select {
	case a.texts <- text:
	case <-a.done:
	}
}

func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		close(a.done)
		a.vm.Clear()

		waited := make(chan struct{})
		go func() {
			a.model.Wait()
			close(waited)
		}()
		select {
		case <-waited:
		case <-time.After(a.cfg.RequestTimeout + time.Second):
			a.log.WarnObj("in-flight fetch did not stop in time", "timeout", a.cfg.RequestTimeout.String())
		}

		if err := a.fanout.Close(); err != nil {
			a.log.ErrorObj("sink close failed", "error", err)
		}
	})
}
