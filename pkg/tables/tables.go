// Package tables loads and validates the static configuration tables that
// drive the decode engine: morphological part tables, the instruction-class
// lookup table, the class to macro-state map, the hazard-pair table, and
// the kernel alphabet.
//
// Tables are versioned data, not code. Defaults are embedded in the binary;
// every file can be overridden individually by pointing Load at a directory
// containing a file of the same name. A loaded Set is immutable and safe to
// share across goroutines.
package tables

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaults embed.FS

// Table file names. Override directories use the same names.
const (
	FileArticulators = "articulators.yaml"
	FilePrefixes     = "prefixes.yaml"
	FileSuffixes     = "suffixes.yaml"
	FileMiddles      = "middles.yaml"
	FileClasses      = "classes.yaml"
	FileStates       = "states.yaml"
	FileHazards      = "hazards.yaml"
	FileKernel       = "kernel.yaml"
)

// SuffixPresence is the third component of the composite classification
// key: whether the decomposition carries a suffix.
type SuffixPresence string

const (
	SuffixPresent SuffixPresence = "present"
	SuffixAbsent  SuffixPresence = "absent"
)

// ClassRow is one row of the instruction-class lookup table.
// Declaration order is significant: it is the tie-break for the coarse
// (prefix, suffix-presence) fallback probe.
type ClassRow struct {
	ID     string         `yaml:"id" json:"id"`
	Role   string         `yaml:"role" json:"role"`
	Prefix string         `yaml:"prefix" json:"prefix"`
	Middle string         `yaml:"middle" json:"middle"`
	Suffix SuffixPresence `yaml:"suffix" json:"suffix"`
}

// HazardRow is one directional forbidden transition. Prev and Next are
// instruction-class IDs; the reverse direction is forbidden only if it
// appears as its own row.
type HazardRow struct {
	Category string `yaml:"category" json:"category"`
	Prev     string `yaml:"prev" json:"prev"`
	Next     string `yaml:"next" json:"next"`
}

// KernelSpec holds the kernel-character alphabet and the paragraph
// marker characters used by the structural grouper.
type KernelSpec struct {
	Alphabet         []string `yaml:"alphabet" json:"alphabet"`
	ParagraphMarkers []string `yaml:"paragraph_markers" json:"paragraph_markers"`
}

// Set is the full immutable table set the engine runs against.
// Slice order everywhere reflects file declaration order.
type Set struct {
	Articulators []string
	Prefixes     []string
	Suffixes     []string
	Middles      []string
	Classes      []ClassRow
	States       map[string]string // class ID -> macro-state name
	Hazards      []HazardRow
	Kernel       KernelSpec
}

// entryList is the YAML shape of the simple part tables.
type entryList struct {
	Entries []string `yaml:"entries"`
}

type classFile struct {
	Classes []ClassRow `yaml:"classes"`
}

type stateFile struct {
	States map[string]string `yaml:"states"`
}

type hazardFile struct {
	Hazards []HazardRow `yaml:"hazards"`
}

// Load reads the table set. overrideDir may be empty, in which case only
// the embedded defaults are used; otherwise any file present in the
// directory replaces the embedded one wholesale. A Set that fails
// validation is never returned.
func Load(overrideDir string) (*Set, error) {
	s := &Set{}

	var arts, prefs, sufs, mids entryList
	var cls classFile
	var sts stateFile
	var haz hazardFile
	var kern KernelSpec

	steps := []struct {
		name string
		dst  any
	}{
		{FileArticulators, &arts},
		{FilePrefixes, &prefs},
		{FileSuffixes, &sufs},
		{FileMiddles, &mids},
		{FileClasses, &cls},
		{FileStates, &sts},
		{FileHazards, &haz},
		{FileKernel, &kern},
	}
	for _, st := range steps {
		raw, err := readTable(overrideDir, st.name)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, st.dst); err != nil {
			return nil, fmt.Errorf("failed to parse table %s: %w", st.name, err)
		}
	}

	s.Articulators = arts.Entries
	s.Prefixes = prefs.Entries
	s.Suffixes = sufs.Entries
	s.Middles = mids.Entries
	s.Classes = cls.Classes
	s.States = sts.States
	s.Hazards = haz.Hazards
	s.Kernel = kern

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// readTable reads a single table file, preferring the override directory.
func readTable(overrideDir, name string) ([]byte, error) {
	if overrideDir != "" {
		path := filepath.Join(overrideDir, name)
		if _, err := os.Stat(path); err == nil {
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read table override %s: %w", path, err)
			}
			return raw, nil
		}
	}
	raw, err := defaults.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("embedded table %s missing: %w", name, err)
	}
	return raw, nil
}
