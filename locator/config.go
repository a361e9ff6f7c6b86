package locator

import (
	"io"
	"log/slog"

	"pinpoint/dom"
)

// Config enumerates every recognised locator option. Zero values are
// replaced by the defaults from DefaultConfig.
type Config struct {
	// Scope limits structural queries to a subtree; nil means the document.
	Scope *dom.Node

	// AscentLevels is the ancestor budget of the path synthesizer.
	AscentLevels int
	// CandidateCap stops the ascent once this many unique paths are known.
	CandidateCap int
	// FrontierCap bounds the cross-product carried to the next level,
	// keeping the lowest-penalty paths.
	FrontierCap int
	// AnchorDepth is the depth budget of the anchored ordered path.
	AnchorDepth int
	// MinSeedLength drops id, class and attribute seeds with shorter values.
	MinSeedLength int

	AcceptClass func(string) bool
	AcceptTag   func(string) bool
	GenericIDs  []string

	// LCALevels is how many ancestors above the parent the LCA search visits.
	LCALevels int
	// MinSimilarForLCA is the same-tag descendant count a container needs.
	MinSimilarForLCA int
	// ImprovementThreshold is the relative gain LCA needs over wildcards.
	ImprovementThreshold float64

	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AscentLevels:         5,
		CandidateCap:         10,
		FrontierCap:          1024,
		AnchorDepth:          6,
		MinSeedLength:        1,
		AcceptClass:          DefaultAcceptClass,
		AcceptTag:            DefaultAcceptTag,
		GenericIDs:           DefaultGenericIDs,
		LCALevels:            5,
		MinSimilarForLCA:     15,
		ImprovementThreshold: 0.30,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AscentLevels <= 0 {
		c.AscentLevels = d.AscentLevels
	}
	if c.CandidateCap <= 0 {
		c.CandidateCap = d.CandidateCap
	}
	if c.FrontierCap <= 0 {
		c.FrontierCap = d.FrontierCap
	}
	if c.AnchorDepth <= 0 {
		c.AnchorDepth = d.AnchorDepth
	}
	if c.MinSeedLength <= 0 {
		c.MinSeedLength = d.MinSeedLength
	}
	if c.AcceptClass == nil {
		c.AcceptClass = d.AcceptClass
	}
	if c.AcceptTag == nil {
		c.AcceptTag = d.AcceptTag
	}
	if c.GenericIDs == nil {
		c.GenericIDs = d.GenericIDs
	}
	if c.LCALevels <= 0 {
		c.LCALevels = d.LCALevels
	}
	if c.MinSimilarForLCA <= 0 {
		c.MinSimilarForLCA = d.MinSimilarForLCA
	}
	if c.ImprovementThreshold <= 0 {
		c.ImprovementThreshold = d.ImprovementThreshold
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
