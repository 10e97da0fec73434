// Package climsg provides the localized message catalog used by the flag
// definitions in this module.
//
// Messages are keyed by id and loaded from a flat YAML document. Message
// bodies are fmt format strings; arguments passed to Render are substituted
// positionally. A default catalog is embedded in the binary so callers never
// need to ship message files alongside their plugin.
package climsg

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var embeddedMessages []byte

// Catalog resolves message ids to localized text.
type Catalog struct {
	messages map[string]string
}

// Load reads a catalog from r. The document must be a flat YAML mapping of
// message id to message body.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message catalog: %w", err)
	}
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}
	if messages == nil {
		messages = make(map[string]string)
	}
	return &Catalog{messages: messages}, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(embeddedMessages))
		if err != nil {
			// The embedded catalog is covered by tests; a parse failure here
			// means the binary itself is broken.
			panic(fmt.Sprintf("climsg: embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Has reports whether the catalog contains the given message id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.messages[id]
	return ok
}

// Render resolves id and substitutes args positionally. An unknown id renders
// as a visible placeholder rather than an empty string, so a missing catalog
// entry never hides the message that referenced it.
func (c *Catalog) Render(id string, args ...any) string {
	body, ok := c.messages[id]
	if !ok {
		return fmt.Sprintf("!missing message %s!", id)
	}
	return fmt.Sprintf(body, args...)
}
