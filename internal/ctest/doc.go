// Package ctest implements the reachability check ("ctest") shared by the
// nasomail server and client.
//
// The server exposes its per-process verification token at common.CTestPath.
// A checker issues GET <addr><CTestPath> and classifies what came back:
//
//	Unreachable       the HTTP exchange did not happen (DNS, connect, timeout)
//	UnexpectedStatus  a response arrived with a status other than 200
//	BadBody           the body could not be read
//	EmptyBody         200 with a blank body (Probe only)
//	TokenMismatch     200 with a body that is not the expected token (Verify only)
//	Success           everything the caller asked for holds
//
// Probe is the client's liveness check: any non-empty token will do. Verify
// is the server's self-test: the trimmed body must equal the expected token
// byte for byte. A token regenerated on every start keeps Verify from passing
// against a stale process still bound to the same public address.
package ctest
