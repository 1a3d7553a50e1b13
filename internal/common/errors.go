package common

import "errors"

var (
	// ErrorNotConnected is returned when an operation needs a registered
	// server address and there is none.
	ErrorNotConnected = errors.New("not connected")

	// ErrorNotLoggedIn is returned when no credentials are stored.
	ErrorNotLoggedIn = errors.New("not logged in")

	// ErrorEmptyAddress is returned for a blank server address.
	ErrorEmptyAddress = errors.New("empty server address")
)
