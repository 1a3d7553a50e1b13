// Package common contains constants and types shared by the nasomail client
// and server.
package common

// CTestPath is the HTTP path of the reachability token endpoint. The server
// answers it with its per-process verification token as plain text.
const CTestPath = "/api/ctest"

// ChecksPath lists the server's most recent self-test outcomes as JSON.
const ChecksPath = "/api/checks"
