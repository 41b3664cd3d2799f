package orrery

import "errors"

var (
	// ErrInit wraps the backend error when Start cannot bring the backend
	// up. The runtime stays Idle.
	ErrInit = errors.New("orrery: backend initialization failed")

	// ErrPresent wraps the backend error that ended the frame loop.
	ErrPresent = errors.New("orrery: present failed")

	// ErrNoLoader is returned by resource constructors when the backend
	// does not implement backend.Loader.
	ErrNoLoader = errors.New("orrery: backend cannot load resources")
)
