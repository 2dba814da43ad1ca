// Package manifest declares a project's permissions and groups in YAML and
// reconciles the store against it.
//
//	project:
//	  name: Billing
//	  description: Invoices and payments
//	permissions:
//	  - key: invoice.read
//	    description: Read invoices
//	groups:
//	  - name: Admins
//	    permissions: [invoice.read]
//
// Applying a manifest never deletes anything. Permissions or groups that
// exist in the store but not in the manifest are left alone.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Project struct {
	Name        string  `yaml:"name"`
	Description *string `yaml:"description,omitempty"`
}

type Permission struct {
	Key         string  `yaml:"key"`
	Description *string `yaml:"description,omitempty"`
}

type Group struct {
	Name string `yaml:"name"`
	// Permissions lists the keys enabled for the group
	Permissions []string `yaml:"permissions"`
}

// Manifest is the desired state of one project
type Manifest struct {
	Project     Project      `yaml:"project"`
	Permissions []Permission `yaml:"permissions"`
	Groups      []Group      `yaml:"groups"`
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks names and keys are present and unique and that groups
// only reference declared permissions.
func (m *Manifest) Validate() error {
	if m.Project.Name == "" {
		return errors.New("project.name is required")
	}

	keys := make(map[string]bool, len(m.Permissions))
	for i, p := range m.Permissions {
		if p.Key == "" {
			return fmt.Errorf("permissions[%d].key is required", i)
		}
		if keys[p.Key] {
			return fmt.Errorf("permission %q is declared twice", p.Key)
		}
		keys[p.Key] = true
	}

	names := make(map[string]bool, len(m.Groups))
	for i, g := range m.Groups {
		if g.Name == "" {
			return fmt.Errorf("groups[%d].name is required", i)
		}
		if names[g.Name] {
			return fmt.Errorf("group %q is declared twice", g.Name)
		}
		names[g.Name] = true

		for _, key := range g.Permissions {
			if !keys[key] {
				return fmt.Errorf("group %q enables undeclared permission %q", g.Name, key)
			}
		}
	}
	return nil
}

func (g Group) enables(key string) bool {
	for _, k := range g.Permissions {
		if k == key {
			return true
		}
	}
	return false
}
