// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/apperr"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

// ErrorHandler writes the client response for err. The dispatcher calls it
// at most once per request and only while the response is not yet started.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// PrepareFunc runs once per request before the first stage, after the
// RequestContext exists. It may return a derived request.
type PrepareFunc func(w http.ResponseWriter, r *http.Request) *http.Request

// Dispatcher is an [http.Handler] that runs stages in order, then the
// terminal handler, and funnels every failure into one ErrorHandler.
type Dispatcher struct {
	stages   []Stage
	terminal http.Handler
	onError  ErrorHandler
	prepare  PrepareFunc

	now func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPrepare installs a per-request preparation hook.
func WithPrepare(prepare PrepareFunc) Option {
	return func(d *Dispatcher) {
		d.prepare = prepare
	}
}

// NewDispatcher returns a Dispatcher running stages in the given order and
// then terminal. onError must not be nil.
func NewDispatcher(stages []Stage, terminal http.Handler, onError ErrorHandler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		stages:   append([]Stage(nil), stages...),
		terminal: terminal,
		onError:  onError,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := d.now()

	rw := &responseWriter{ResponseWriter: w}
	rc := NewRequestContext()
	r = r.WithContext(WithRequestContext(r.Context(), rc))

	if d.prepare != nil {
		r = d.prepare(rw, r)
	}

	r, err := d.run(rw, r)
	if err == nil {
		err = rc.Err()
	}
	if err != nil {
		d.fail(rw, r, err)
	}

	rc.complete(Completion{
		Request:  r,
		Status:   rw.statusOrOK(),
		Size:     rw.size,
		Duration: d.now().Sub(start),
		Err:      err,
	})
}

// run executes the stages and the terminal handler. It returns the last
// request seen so that error handling and completion hooks observe
// everything stages attached to it. A panic becomes an internal error.
func (d *Dispatcher) run(w http.ResponseWriter, r *http.Request) (last *http.Request, err error) {
	last = r

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		logger.FromRequest(last).Error().
			Bytes("stack", debug.Stack()).
			Msgf("recovered panic: %v", rec)
		err = apperr.Internal(fmt.Errorf("panic: %v", rec))
	}()

	for _, stage := range d.stages {
		next, stageErr := stage(w, last)
		if stageErr != nil {
			return last, stageErr
		}
		if next == nil {
			return last, nil
		}
		last = next
	}

	d.terminal.ServeHTTP(w, last)
	return last, nil
}

func (d *Dispatcher) fail(w *responseWriter, r *http.Request, err error) {
	if w.wroteHeader {
		logger.FromRequest(r).Error().Err(err).
			Int("status", w.status).
			Msg("error after response was started")
		return
	}
	d.onError(w, r, err)
}
