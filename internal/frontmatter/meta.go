package frontmatter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PostMeta is the frontmatter schema of a blog post source file.
// title and date are required; the loader enforces that.
type PostMeta struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Excerpt string `yaml:"excerpt,omitempty"`
	Author  string `yaml:"author,omitempty"`
	Tags    Tags   `yaml:"tags,omitempty"`
	Updated string `yaml:"updated,omitempty"`
}

// Tags is an ordered tag list. A bare scalar ("tags: news") decodes as a
// one-element list.
type Tags []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			*t = Tags{}
			return nil
		}
		*t = Tags{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = list
		return nil
	default:
		return fmt.Errorf("tags: line %d: expected a list of strings", value.Line)
	}
}
