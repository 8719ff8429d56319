// Package flagfile loads declarative flag manifests from YAML and registers
// them on a feature registry at boot time. A manifest looks like:
//
//	flags:
//	  - name: beta-banner
//	  - name: legacy-checkout
//	    enabled: false
//	  - name: maintenance-mode
//	    persist: true
//	    enabled: false
//
// Plain entries become code-defined flags: no enabled key means
// unconditionally active, an explicit enabled value becomes a constant
// evaluator. Entries marked persist are written to the registry's store
// instead, so operators can toggle them live after boot.
package flagfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flagkit/flagkit/pkg/feature"
)

// Predefined errors for the flagfile package.
var (
	ErrInvalidManifest = errors.New("invalid flag manifest")
	ErrUnnamedFlag     = errors.New("flag manifest entry missing name")
)

// Entry describes one flag in a manifest.
type Entry struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled,omitempty"`
	Persist bool   `yaml:"persist,omitempty"`
}

// Manifest is a parsed flag manifest.
type Manifest struct {
	Flags []Entry `yaml:"flags"`
}

// Parse reads a YAML manifest. Entries without a name are rejected up
// front so a broken manifest fails at boot rather than at first evaluation.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Join(ErrInvalidManifest, err)
	}

	for i, entry := range m.Flags {
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrUnnamedFlag, i)
		}
	}
	return &m, nil
}

// ParseFile reads a YAML manifest from a file.
func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidManifest, err)
	}
	defer f.Close()

	return Parse(f)
}

// Apply registers every manifest entry on the registry. Persisted entries
// default to enabled when the manifest gives no value, matching
// DefineAndStore's contract; store failures propagate unchanged.
func (m *Manifest) Apply(ctx context.Context, reg *feature.Registry) error {
	for _, entry := range m.Flags {
		if entry.Persist {
			value := true
			if entry.Enabled != nil {
				value = *entry.Enabled
			}
			if err := reg.DefineAndStore(ctx, entry.Name, value); err != nil {
				return err
			}
			continue
		}

		if entry.Enabled == nil {
			reg.Define(entry.Name, nil)
			continue
		}
		reg.Define(entry.Name, feature.Bool(*entry.Enabled))
	}
	return nil
}
