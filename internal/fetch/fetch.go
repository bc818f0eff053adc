// Package fetch owns the lifecycle of loading one phrase document: at most one
// request in flight per Controller, last request wins, cancellation is silent.
//
// Controller state is only mutated by the caller's event loop (Load, Refetch,
// Apply, Close). The blocking part of a fetch is Request.Run, which callers
// execute off the loop and feed back through Apply.
package fetch

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/phrasebook/internal/phrases"
)

// State is the observable fetch state.
type State struct {
	Data    *phrases.Collection
	Loading bool
	Err     string
}

// Hooks are optional lifecycle callbacks.
type Hooks struct {
	// BeforeRequest vetoes the request when it returns true.
	BeforeRequest func(url string) bool
	OnSuccess     func(*phrases.Collection)
	OnError       func(error)
	// OnComplete runs after OnSuccess or OnError for every applied result.
	OnComplete func()
}

// Request is one issued fetch. Run it off the event loop.
type Request struct {
	URL     string
	seq     uint64
	ctx     context.Context
	fetcher phrases.Fetcher
}

// Result is the outcome of Request.Run, to be passed to Controller.Apply.
type Result struct {
	URL  string
	Data *phrases.Collection
	Err  error
	seq  uint64
}

// Run performs the fetch. It blocks until the fetcher returns or the request
// is cancelled.
func (r Request) Run() Result {
	res := Result{URL: r.URL, seq: r.seq}
	if r.fetcher == nil || r.ctx == nil {
		res.Err = errors.New("fetch request not initialised")
		return res
	}
	res.Data, res.Err = r.fetcher.FetchCollection(r.ctx, r.URL)
	if res.Err == nil && r.ctx.Err() != nil {
		// Completed after being superseded; treat like a cancellation.
		res.Data, res.Err = nil, r.ctx.Err()
	}
	return res
}

// Controller drives State for one consumer.
type Controller struct {
	fetcher phrases.Fetcher
	hooks   Hooks
	log     zerolog.Logger

	url    string
	seq    uint64
	cancel context.CancelFunc
	state  State
}

// New returns a Controller in the initial loading state.
func New(fetcher phrases.Fetcher, hooks Hooks, log zerolog.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		hooks:   hooks,
		log:     log,
		state:   State{Loading: true},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// URL returns the resource the controller is bound to.
func (c *Controller) URL() string {
	return c.url
}

// InFlight reports whether a request is outstanding.
func (c *Controller) InFlight() bool {
	return c.cancel != nil
}

// Load binds the controller to url and issues a request. It returns false
// when BeforeRequest vetoed it, in which case State is unchanged.
func (c *Controller) Load(ctx context.Context, url string) (Request, bool) {
	c.url = strings.TrimSpace(url)
	return c.start(ctx)
}

// Refetch reissues the request for the current URL.
func (c *Controller) Refetch(ctx context.Context) (Request, bool) {
	return c.start(ctx)
}

// SetHooks replaces the lifecycle callbacks and reissues the request, since
// a hook change can change what the request should do.
func (c *Controller) SetHooks(ctx context.Context, hooks Hooks) (Request, bool) {
	c.hooks = hooks
	return c.start(ctx)
}

func (c *Controller) start(ctx context.Context) (Request, bool) {
	// Anything started earlier is stale from here on, vetoed or not.
	c.abort()

	if c.hooks.BeforeRequest != nil && c.hooks.BeforeRequest(c.url) {
		c.log.Debug().Str("url", c.url).Msg("fetch vetoed")
		return Request{}, false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.Loading = true
	c.state.Err = ""

	c.log.Debug().Str("url", c.url).Uint64("seq", c.seq).Msg("fetch issued")
	return Request{URL: c.url, seq: c.seq, ctx: reqCtx, fetcher: c.fetcher}, true
}

// Apply folds a result into State. It returns false when the result belongs
// to a superseded or cancelled request and was discarded.
func (c *Controller) Apply(res Result) bool {
	if res.seq != c.seq || c.cancel == nil {
		c.log.Debug().Str("url", res.URL).Msg("discarding stale fetch result")
		return false
	}
	if res.Err != nil && isCancellation(res.Err) {
		return false
	}
	c.cancel()
	c.cancel = nil

	c.state.Loading = false
	if res.Err != nil {
		c.state.Err = errorMessage(res.Err)
		c.state.Data = nil
		c.log.Warn().Err(res.Err).Str("url", res.URL).Msg("fetch failed")
		if c.hooks.OnError != nil {
			c.hooks.OnError(res.Err)
		}
	} else {
		c.state.Err = ""
		c.state.Data = res.Data
		c.log.Debug().Str("url", res.URL).Int("phrases", res.Data.Len()).Msg("fetch applied")
		if c.hooks.OnSuccess != nil {
			c.hooks.OnSuccess(res.Data)
		}
	}
	if c.hooks.OnComplete != nil {
		c.hooks.OnComplete()
	}
	return true
}

// Close cancels any outstanding request. Results arriving afterwards are
// discarded.
func (c *Controller) Close() {
	c.abort()
}

func (c *Controller) abort() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

func errorMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Unknown error occurred"
	}
	return msg
}
