//go:build mage

// Package main provides build targets for the toolbox project using Mage.
//
// Usage:
//
//	mage build          Compile the toolbox binary to bin/
//	mage serve          Build and serve the web shell on 127.0.0.1:8080
//	mage test:all       Run all tests
//	mage test:unit      Run tests without network-dependent cases
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Write a coverage profile to bin/coverage.out
//	mage vet            Run go vet
//	mage lint           Run go vet and golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install toolbox to GOPATH/bin
//	mage stats          Print catalog counts per category and widget package sizes
package main

const (
	binGo      = "go"
	binaryName = "toolbox"
	binaryDir  = "bin"
	cmdDir     = "./cmd/toolbox"
)
