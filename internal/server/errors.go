// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrListen is returned when a server cannot bind its address.
	ErrListen = errors.New("error listening")

	errNotListening = errors.New("server is not listening")
)
