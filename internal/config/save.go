package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/battletracker/battletracker/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of Config. Durations are written as
// strings so the file stays hand-editable.
type fileConfig struct {
	Version     int           `yaml:"version"`
	ServerIDs   []string      `yaml:"server_ids"`
	API         fileAPI       `yaml:"api"`
	Refresh     RefreshConfig `yaml:"refresh"`
	HistorySize int           `yaml:"history_size"`
	Grid        GridConfig    `yaml:"grid"`
	AboutURL    string        `yaml:"about_url"`
}

type fileAPI struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	out := fileConfig{
		Version:     cfg.Version,
		ServerIDs:   cfg.ServerIDs,
		API:         fileAPI{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout.String()},
		Refresh:     cfg.Refresh,
		HistorySize: cfg.HistorySize,
		Grid:        cfg.Grid,
		AboutURL:    cfg.AboutURL,
	}
	if out.ServerIDs == nil {
		out.ServerIDs = []string{}
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	return writeFile(path, buf.String())
}

// SetServerIDs rewrites only the server_ids key of the config at path.
// It preserves the existing YAML structure and comments. If the file does
// not exist, a default config with the given IDs is written instead.
func SetServerIDs(path string, ids []string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.ServerIDs = ids
		return Save(path, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	seq := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Content: make([]*yaml.Node, 0, len(ids)),
	}
	for _, id := range ids {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Style: yaml.SingleQuotedStyle,
			Value: id,
		})
	}

	if !replaceMapValue(docNode, "server_ids", seq) {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: "server_ids",
		}
		docNode.Content = append(docNode.Content, keyNode, seq)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	return writeFile(path, buf.String())
}

// replaceMapValue swaps the value for key in a mapping node.
// Returns false if the key is not present.
func replaceMapValue(node *yaml.Node, key string, value *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			// Keep any head comment attached to the old value
			value.HeadComment = node.Content[i+1].HeadComment
			value.LineComment = node.Content[i+1].LineComment
			node.Content[i+1] = value
			return true
		}
	}

	return false
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't create config directory "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write config file "+path,
			"Check file permissions")
	}

	return nil
}
