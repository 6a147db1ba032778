// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHandler      = errors.New("no http handler is provided")
	errListen         = errors.New("cannot bind listener")
	errServe          = errors.New("http server stopped unexpectedly")
	errShutdown       = errors.New("graceful shutdown failed")
	errAlreadyRunning = errors.New("server is already running")
)
