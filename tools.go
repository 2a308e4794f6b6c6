//go:build tools
// +build tools

// Package tools pins the lint tooling used by this module.
package tools

import (
	// for linting.
	_ "github.com/edaniels/golinters/cmd/combined"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
