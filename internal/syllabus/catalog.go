// Package syllabus provides the catalog of PSLE Science themes offered to students.
package syllabus

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var defaultCatalog []byte

// Topic is one syllabus theme.
type Topic struct {
	Name        string `yaml:"name"        json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Catalog is an immutable, ordered set of topics.
type Catalog struct {
	Default string  `yaml:"default"`
	Items   []Topic `yaml:"topics"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// MustLoad is like Load but panics on error. The embedded file is covered by tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog document. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse syllabus: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse syllabus: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse syllabus: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("parse syllabus: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Items) == 0 {
		return errors.New("no topics")
	}
	seen := make(map[string]struct{}, len(c.Items))
	for i, t := range c.Items {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("topics[%d]: name is required", i)
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("topics[%d]: duplicate topic %q", i, name)
		}
		seen[key] = struct{}{}
		c.Items[i].Name = name
	}
	if c.Default == "" {
		c.Default = c.Items[0].Name
	}
	if !c.Contains(c.Default) {
		return fmt.Errorf("default topic %q is not in the catalog", c.Default)
	}
	return nil
}

// Topics returns a copy of the topics in display order.
func (c *Catalog) Topics() []Topic {
	return append([]Topic(nil), c.Items...)
}

// DefaultTopic returns the topic preselected for a new session.
func (c *Catalog) DefaultTopic() string {
	return c.Default
}

// Contains reports whether name is a catalog topic, ignoring case.
func (c *Catalog) Contains(name string) bool {
	for _, t := range c.Items {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
