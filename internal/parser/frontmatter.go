package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// splitFrontmatter separates an optional leading "---" delimited YAML
// metadata block from the document body. Documents without a block return
// nil metadata and the full content. A block that fails to parse as YAML is
// dropped rather than failing the document.
func splitFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---") {
		return nil, content
	}

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return nil, content
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return nil, parts[2]
	}
	return meta, parts[2]
}

// metaString reads a string value from frontmatter metadata.
func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}

// metaStringSlice reads a list of strings from frontmatter metadata.
// YAML lists decode as []any, so each element is converted individually.
func metaStringSlice(meta map[string]any, key string) []string {
	if meta == nil {
		return nil
	}
	switch v := meta[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
