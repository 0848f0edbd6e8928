// Package reflectmode implements the Configuration Probe (spec §4.8):
// resolving whether a given declaration should be reflected at all, from
// (in priority order) a doc-comment `@reflection` tag, a transformer-wide
// override, and the nearest ancestor project configuration file's
// `reflection` key, defaulting to `never` when nothing governs the node.
package reflectmode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"typegen/pkg/hostapi"
)

// Mode is the resolved reflection mode for one declaration.
type Mode int

const (
	// Never suppresses emission entirely: the node is returned unchanged,
	// with no `__type` payload attached anywhere in its subtree.
	Never Mode = iota
	// Default reflects the node using the transformer's ordinary rules.
	Default
	// Always is identical to Default today; the distinction exists for the
	// host runtime to treat always-reflected carriers specially (e.g.
	// skipping its own opt-in checks), which is outside this transformer's
	// concern.
	Always
)

func (m Mode) String() string {
	switch m {
	case Never:
		return "never"
	case Always:
		return "always"
	default:
		return "default"
	}
}

func parseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "never", "false":
		return Never, true
	case "always", "true":
		return Always, true
	case "default":
		return Default, true
	default:
		return Never, false
	}
}

// ProjectConfig is the subset of a project configuration file this probe
// reads. Implementations that read a broader manifest can embed this.
type ProjectConfig struct {
	Reflection string `yaml:"reflection"`
}

// ConfigFileNames lists the file names searched for in each ancestor
// directory, in priority order.
var ConfigFileNames = []string{"typegen.yaml", "typegen.yml"}

// FileSystem is the narrow filesystem slice the probe needs: reading a
// candidate config file's bytes, or reporting it doesn't exist. Kept
// separate from hostapi.ModuleGraph because config discovery walks parent
// directories, not module specifiers.
type FileSystem interface {
	ReadFile(path string) ([]byte, bool)
}

// Probe resolves reflection modes, caching project configuration by
// absolute directory path so a multi-declaration file doesn't re-walk and
// re-parse the same ancestor chain per node (spec §5, "configuration file
// contents are cached by absolute path").
type Probe struct {
	fs       FileSystem
	override *Mode
	cache    map[string]Mode
	warnings []string
}

// New creates a Probe reading project configuration through fs.
func New(fs FileSystem) *Probe {
	return &Probe{fs: fs, cache: map[string]Mode{}}
}

// WithOverride sets the transformer-wide override consulted when a node
// carries no `@reflection` doc tag.
func (p *Probe) WithOverride(m Mode) *Probe {
	p.override = &m
	return p
}

// Warnings returns the malformed-configuration warnings collected so far
// (spec §7: "Malformed project configuration. Log a warning; proceed as if
// the file did not set a reflection mode").
func (p *Probe) Warnings() []string {
	return p.warnings
}

// Resolve determines the reflection mode for a declaration found in file,
// given its doc comment (if any, via hostapi.Commented).
func (p *Probe) Resolve(file string, decl hostapi.Node) Mode {
	if commented, ok := decl.(hostapi.Commented); ok {
		if tag, found := hostapi.ParseDocTag(commented.DocComment(), "reflection"); found {
			if mode, ok := parseMode(tag); ok {
				return mode
			}
		}
	}

	if p.override != nil {
		return *p.override
	}

	return p.resolveFromProjectConfig(file)
}

func (p *Probe) resolveFromProjectConfig(file string) Mode {
	var visited []string
	dir := filepath.Dir(file)

	resolved := Never
	for {
		if mode, ok := p.cache[dir]; ok {
			resolved = mode
			break
		}
		visited = append(visited, dir)

		found := false
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			data, ok := p.fs.ReadFile(candidate)
			if !ok {
				continue
			}
			var cfg ProjectConfig
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				p.warnings = append(p.warnings, fmt.Sprintf("reflectmode: malformed config %s: %v", candidate, err))
				continue
			}
			if cfg.Reflection == "" {
				continue
			}
			mode, ok := parseMode(cfg.Reflection)
			if !ok {
				p.warnings = append(p.warnings, fmt.Sprintf("reflectmode: unrecognized reflection mode %q in %s", cfg.Reflection, candidate))
				continue
			}
			resolved = mode
			found = true
			break
		}
		if found {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	for _, d := range visited {
		p.cache[d] = resolved
	}
	return resolved
}
