// Package view holds the per-page state machines driven by the HTTP handlers.
// Every page tracks one Status per action and renders an immutable snapshot.
package view

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/metrics"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrActionInFlight rejects a second invocation of an action that is still loading.
var ErrActionInFlight = errors.New("action already in progress")

// actionLockTTL bounds how long a crashed request can block its action.
const actionLockTTL = 30 * time.Second

// Locker guards an action across requests and processes.
type Locker interface {
	AcquireActionLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseActionLock(ctx context.Context, key string) error
}

type Option func(*pageOptions)

type pageOptions struct {
	locker Locker
}

func WithLocker(locker Locker) Option {
	return func(o *pageOptions) {
		o.locker = locker
	}
}

func applyOptions(opts []Option) pageOptions {
	var o pageOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// actions tracks idle -> loading -> success|error per action name.
// The owning page holds its mutex around every call.
type actions struct {
	page    string
	status  map[string]Status
	started map[string]time.Time
}

func newActions(page string, names ...string) *actions {
	a := &actions{
		page:    page,
		status:  make(map[string]Status, len(names)),
		started: make(map[string]time.Time, len(names)),
	}
	for _, name := range names {
		a.status[name] = StatusIdle
	}
	return a
}

func (a *actions) begin(name string) error {
	if a.status[name] == StatusLoading {
		return a.reject(name)
	}
	a.status[name] = StatusLoading
	a.started[name] = time.Now()
	return nil
}

func (a *actions) reject(name string) error {
	metrics.PageActionsRejected.WithLabelValues(a.page, name).Inc()
	return ErrActionInFlight
}

// lock takes the shared lock for key and returns its release func. A failing
// locker is logged and the action goes ahead unguarded.
func (a *actions) lock(ctx context.Context, locker Locker, name, key string) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	log := logging.FromContext(ctx).WithField("lock", key)

	ok, err := locker.AcquireActionLock(ctx, key, actionLockTTL)
	if err != nil {
		log.WithError(err).Warn("could not take action lock")
		return func() {}, nil
	}
	if !ok {
		return nil, a.reject(name)
	}
	return func() {
		if err := locker.ReleaseActionLock(context.WithoutCancel(ctx), key); err != nil {
			log.WithError(err).Warn("could not release action lock")
		}
	}, nil
}

func (a *actions) finish(name string, err error) {
	outcome := StatusSuccess
	if err != nil {
		outcome = StatusError
	}
	a.status[name] = outcome

	metrics.PageActions.WithLabelValues(a.page, name, string(outcome)).Inc()
	if started, ok := a.started[name]; ok {
		metrics.PageActionDuration.WithLabelValues(a.page, name).Observe(time.Since(started).Seconds())
		delete(a.started, name)
	}
}

func (a *actions) get(name string) Status {
	if st, ok := a.status[name]; ok {
		return st
	}
	return StatusIdle
}
