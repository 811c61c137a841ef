package sdf

import (
	"fmt"
	"strings"

	"github.com/scigolib/sdf/internal/format"
)

// cpuBlockPrefix marks rank-layout bookkeeping blocks, which never
// belong in a dataset.
const cpuBlockPrefix = "CPU"

// metadataBlockNames lists the blocks merged into dataset attributes,
// in merge order: a later block overwrites clashing keys of an earlier
// one, and constants overwrite both.
var metadataBlockNames = []string{"Header", "Run_info"}

// partition is the classified view of a file's blocks: attribute
// sources merged into one ordered set, plus the meshes and variables
// that form the dataset.
type partition struct {
	attrs     *format.Metadata
	meshes    []*format.Mesh
	variables []*format.Variable
}

// classify splits blocks into the partition. Every name in drop must
// exist in byName, and dropped blocks are removed before any other rule
// applies. CPU bookkeeping blocks and block types the reader does not
// decode are skipped silently.
func classify(blocks []format.Block, byName map[string]format.Block, drop []string) (*partition, error) {
	for _, name := range drop {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q is not in this file", ErrUnknownVariable, name)
		}
	}
	dropped := make(map[string]bool, len(drop))
	for _, name := range drop {
		dropped[name] = true
	}

	p := &partition{attrs: format.NewMetadata("attributes")}

	merged := map[string]bool{}
	for _, name := range metadataBlockNames {
		if dropped[name] {
			continue
		}
		md, ok := byName[name].(*format.Metadata)
		if !ok {
			continue
		}
		for _, key := range md.Keys {
			p.attrs.Set(key, md.Fields[key])
		}
		merged[name] = true
	}

	for _, b := range blocks {
		h := b.Header()
		if dropped[h.Name] || merged[h.Name] || strings.HasPrefix(h.Name, cpuBlockPrefix) {
			continue
		}
		switch blk := b.(type) {
		case *format.Constant:
			p.attrs.Set(h.Name, blk.Value)
		case *format.Mesh:
			p.meshes = append(p.meshes, blk)
		case *format.Variable:
			p.variables = append(p.variables, blk)
		}
	}
	return p, nil
}
