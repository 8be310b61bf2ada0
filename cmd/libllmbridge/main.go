// Package main builds the c-shared native bridge library. A managed
// runtime (JVM, Dart, .NET) loads the resulting shared object and calls
// the exported functions in exports.go; this file owns the
// process-global bridge those exports delegate to.
package main

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"llmbridge/internal/bridge"
	"llmbridge/internal/registry"
)

var (
	initOnce sync.Once
	gBridge  *bridge.Bridge
	gFacade  *bridge.Facade
)

// shared returns the process-global bridge and facade, constructing
// them on first use. Explicit lifecycle: built here, torn down by the
// legacy cleanup export.
func shared() (*bridge.Bridge, *bridge.Facade) {
	initOnce.Do(func() {
		log := zerolog.New(os.Stderr).With().Timestamp().Str("lib", "llmbridge").Logger()
		if lvl, err := zerolog.ParseLevel(os.Getenv("LLMBRIDGE_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
			log = log.Level(lvl)
		}
		gBridge = bridge.New(registry.New(), bridge.NewKeywordEngine(), log)
		gFacade = bridge.NewFacade(gBridge, log)
	})
	return gBridge, gFacade
}

// main is required for c-shared build mode but never runs when the
// artifact is loaded as a library.
func main() {}
