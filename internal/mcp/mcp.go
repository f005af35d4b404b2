// Package mcp manages the project's .mcp.json: a catalog of known MCP
// (Model Context Protocol) servers and the configuration file that
// enables them.
//
// Credentials never land in the file. Server entries reference them as
// ${VAR} placeholders the host expands from the environment at launch.
package mcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// ConfigFile is the file name the host reads at the project root.
const ConfigFile = ".mcp.json"

// Server is one configured MCP server entry.
type Server struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// Config mirrors the .mcp.json document.
type Config struct {
	Servers map[string]Server `json:"mcpServers"`
}

// CatalogEntry describes an installable MCP server.
type CatalogEntry struct {
	ID          string
	Name        string
	Description string
	Command     string
	Args        []string
	EnvVars     []string
}

// catalog is the fixed set of servers herald knows how to configure.
var catalog = []CatalogEntry{
	{
		ID:          "firecrawl",
		Name:        "Firecrawl MCP",
		Description: "Web scraping and crawling",
		Command:     "npx",
		Args:        []string{"-y", "firecrawl-mcp"},
		EnvVars:     []string{"FIRECRAWL_API_KEY"},
	},
	{
		ID:          "github",
		Name:        "GitHub MCP",
		Description: "GitHub repository operations",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-github"},
		EnvVars:     []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
	},
	{
		ID:          "elevenlabs",
		Name:        "ElevenLabs MCP",
		Description: "Text-to-speech with ElevenLabs",
		Command:     "uvx",
		Args:        []string{"elevenlabs-mcp"},
		EnvVars:     []string{"ELEVENLABS_API_KEY"},
	},
	{
		ID:          "context7",
		Name:        "Context7 MCP",
		Description: "Up-to-date code documentation",
		Command:     "npx",
		Args:        []string{"-y", "@upstash/context7-mcp"},
	},
	{
		ID:          "serena",
		Name:        "Serena MCP",
		Description: "Coding agent toolkit with semantic retrieval",
		Command:     "uvx",
		Args:        []string{"--from", "git+https://github.com/oraios/serena", "serena-mcp-server"},
	},
}

// Catalog returns the known servers in stable order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// Find returns the catalog entry for id.
func Find(id string) (CatalogEntry, error) {
	for _, e := range catalog {
		if e.ID == id {
			return e, nil
		}
	}
	return CatalogEntry{}, fmt.Errorf("unknown MCP server %q", id)
}

// Load reads a config file. A missing file yields an empty config, not
// an error, so first use needs no setup step.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Servers: map[string]Server{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", filepath.Base(path), err)
	}
	if cfg.Servers == nil {
		cfg.Servers = map[string]Server{}
	}
	return &cfg, nil
}

// Save writes the config with a temp-file-then-rename so a concurrent
// reader never sees a half-written document.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mcp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// Add enables a cataloged server. Credentialed entries get ${VAR}
// placeholders rather than values.
func (c *Config) Add(entry CatalogEntry) {
	srv := Server{Command: entry.Command, Args: append([]string(nil), entry.Args...)}
	if len(entry.EnvVars) > 0 {
		srv.Env = make(map[string]string, len(entry.EnvVars))
		for _, v := range entry.EnvVars {
			srv.Env[v] = fmt.Sprintf("${%s}", v)
		}
	}
	c.Servers[entry.ID] = srv
}

// Remove disables a server. It reports whether the entry existed.
func (c *Config) Remove(id string) bool {
	if _, ok := c.Servers[id]; !ok {
		return false
	}
	delete(c.Servers, id)
	return true
}

// Enabled returns the configured server IDs, sorted.
func (c *Config) Enabled() []string {
	ids := make([]string, 0, len(c.Servers))
	for id := range c.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var placeholderRe = regexp.MustCompile(`\$\{(\w+)\}`)

// MissingEnv lists the ${VAR} placeholders in a server entry whose
// variables are unset in the current environment.
func (s Server) MissingEnv() []string {
	var missing []string
	for _, value := range s.Env {
		for _, m := range placeholderRe.FindAllStringSubmatch(value, -1) {
			if _, ok := os.LookupEnv(m[1]); !ok {
				missing = append(missing, m[1])
			}
		}
	}
	sort.Strings(missing)
	return missing
}
