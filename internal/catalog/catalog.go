// SPDX-License-Identifier: MPL-2.0

// Package catalog holds the curated list of published collections and
// describes them from their remote manifests.
package catalog

import (
	"slices"

	"github.com/fpgawars/icm/pkg/collection"
)

const (
	// ChannelStable lists collections with tagged releases.
	ChannelStable Channel = "stable"
	// ChannelDev lists collections only available from their main branch.
	ChannelDev Channel = "dev"
)

// Channel groups catalog collections by maturity.
type Channel string

//nolint:gochecknoglobals // Curated, read-only; exposed through Stable and Dev.
var (
	stable = []collection.CollectionName{
		"iceK",
		"iceWires",
		"iceIO",
		"iceGates",
		"iceMux",
		"iceCoders",
		"iceFF",
		"iceRegs",
		"iceSRegs",
	}

	// Several dev repositories predate the alphanumeric naming rule; they
	// can be listed but not installed by reference.
	dev = []collection.CollectionName{
		"iceBoards",
		"iceComp",
		"iceArith",
		"iceCounters",
		"iceSignals",
		"icePLL",
		"iceLEDOscope",
		"iceLEDs",
		"iceHearts",
		"iceInputs",
		"iceRok",
		"iceMachines",
		"iceSerial",
		"iceMem",
		"iceMeassure",
		"iceStack",
		"iceFlash",
		"iceBus",
		"iceLCD",
		"iceSynth",
		"icecrystal",
		"icebreaker",
		"Collection-stdio",
		"LOVE-FPGA-Collection",
		"Collection-Jedi",
		"CT11-collection",
		"collection-generic",
		"collection-logic",
		"ice-chips-verilog",
		"Icestudio-ArithmeticBlocks",
	}
)

// Stable returns the stable collections in catalog order.
func Stable() []collection.CollectionName { return slices.Clone(stable) }

// Dev returns the development collections in catalog order.
func Dev() []collection.CollectionName { return slices.Clone(dev) }

// Names returns the collections of ch, or nil for an unknown channel.
func Names(ch Channel) []collection.CollectionName {
	switch ch {
	case ChannelStable:
		return Stable()
	case ChannelDev:
		return Dev()
	}
	return nil
}

// Channels returns every channel in display order.
func Channels() []Channel { return []Channel{ChannelStable, ChannelDev} }

// String returns the string representation of the Channel.
func (c Channel) String() string { return string(c) }
