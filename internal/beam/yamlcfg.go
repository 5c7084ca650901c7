package beam

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vk/latticego/internal/builder"
)

// Setting is one beam parameter from a YAML configuration: a bare number, a
// string, or a {value, unit} pair.
type Setting struct {
	Value  float64
	Unit   string
	Text   string
	isText bool
}

// UnmarshalYAML accepts either a scalar or a mapping with value/unit keys.
func (s *Setting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err == nil {
			s.Value = f
			return nil
		}
		var text string
		if err := node.Decode(&text); err != nil {
			return err
		}
		s.Text = text
		s.isText = true
		return nil
	case yaml.MappingNode:
		var pair struct {
			Value float64 `yaml:"value"`
			Unit  string  `yaml:"unit"`
		}
		if err := node.Decode(&pair); err != nil {
			return err
		}
		s.Value = pair.Value
		s.Unit = pair.Unit
		return nil
	default:
		return fmt.Errorf("beam setting must be a scalar or a value/unit mapping")
	}
}

// Config is the YAML shape of a beam configuration file.
type Config struct {
	Particle     string             `yaml:"particle"`
	Energy       *Setting           `yaml:"energy"`
	Distribution string             `yaml:"distribution"`
	Settings     map[string]Setting `yaml:"settings"`
}

// LoadConfig reads a beam configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading beam config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing beam config %s: %w", path, err)
	}
	return &cfg, nil
}

// FromConfig builds a beam from a parsed configuration. Settings are applied
// in sorted key order so construction is deterministic.
func FromConfig(cfg *Config) (*Beam, error) {
	b := New()
	if cfg.Distribution != "" {
		if err := b.SetDistributionType(cfg.Distribution); err != nil {
			return nil, err
		}
	}
	if cfg.Particle != "" {
		if err := b.SetParticleType(cfg.Particle); err != nil {
			return nil, err
		}
	}
	if cfg.Energy != nil {
		b.SetEnergy(cfg.Energy.Value, cfg.Energy.Unit)
	}

	keys := make([]string, 0, len(cfg.Settings))
	for k := range cfg.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, field := range keys {
		s := cfg.Settings[field]
		if s.isText {
			if err := b.SetFieldText(field, s.Text); err != nil {
				return nil, err
			}
			continue
		}
		if err := b.SetField(field, s.Value, s.Unit); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// baseFields are the centroid/timing parameters applicable to every
// distribution, addressable by field name.
var baseFields = map[string]bool{
	"X0": true, "Y0": true, "Z0": true,
	"Xp0": true, "Yp0": true, "Zp0": true,
	"S0": true, "T0": true,
}

// SetField sets a numeric beam field by name, routing through the same
// capability checks as the typed setters.
func (b *Beam) SetField(field string, v float64, unit string) error {
	switch {
	case field == "energy":
		b.SetEnergy(v, unit)
		return nil
	case field == "E0":
		b.SetE0(v, unit)
		return nil
	case baseFields[field]:
		b.setScalar(field, v, unit)
		return nil
	case field == "sigmaNM":
		return fmt.Errorf("%w: sigma matrix entries need explicit indices, use SetSigmaNM", builder.ErrValue)
	default:
		return b.checkedScalar(field, field, v, unit)
	}
}

// SetFieldText sets a string-valued beam field by name.
func (b *Beam) SetFieldText(field, text string) error {
	switch field {
	case "particle":
		return b.SetParticleType(text)
	case "xDistrType":
		return b.SetXDistrType(text)
	case "yDistrType":
		return b.SetYDistrType(text)
	case "zDistrType":
		return b.SetZDistrType(text)
	default:
		return b.checked(field, field, builder.Str(text))
	}
}
