package main

import (
	"fmt"
	"time"
)

// Depth selects the latency/thoroughness tradeoff of a search.
type Depth string

const (
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// Profile is the execution policy for one depth. An empty ReasoningEffort
// means the parameter is left out of the request.
type Profile struct {
	Depth           Depth
	Model           string
	ReasoningEffort string
	Timeout         time.Duration
}

var profiles = map[Depth]Profile{
	DepthStandard: {
		Depth:   DepthStandard,
		Model:   "grok-4-1-fast-non-reasoning",
		Timeout: 120 * time.Second,
	},
	DepthDeep: {
		Depth:           DepthDeep,
		Model:           "grok-4-1-fast-reasoning",
		ReasoningEffort: "high",
		Timeout:         600 * time.Second,
	},
}

// ProfileFor returns the policy for depth. The empty depth is standard.
func ProfileFor(depth Depth) (Profile, error) {
	if depth == "" {
		depth = DepthStandard
	}
	profile, ok := profiles[depth]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidDepth, depth, DepthStandard, DepthDeep)
	}
	return profile, nil
}
