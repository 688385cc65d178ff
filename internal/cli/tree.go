package cli

import (
	"github.com/aretw0/parley/internal/samples"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
)

// TreeSource selects where a command reads its tree from.
// File wins over JSON; with neither set the built-in village sample is used.
type TreeSource struct {
	File string
	JSON string
}

// Load resolves the source into a tree.
func (s TreeSource) Load() (*domain.Tree, error) {
	switch {
	case s.File != "":
		return codec.LoadFile(s.File)
	case s.JSON != "":
		return codec.Deserialize([]byte(s.JSON))
	}
	return samples.Village(), nil
}

// Describe names the source for log and summary lines.
func (s TreeSource) Describe() string {
	switch {
	case s.File != "":
		return s.File
	case s.JSON != "":
		return "inline tree"
	}
	return "built-in sample (" + samples.VillageTreeID + ")"
}
