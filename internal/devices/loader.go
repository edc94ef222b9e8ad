package devices

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"gopkg.in/yaml.v3"
)

var profileExtensions = []string{".json", ".yaml", ".yml"}

// ProfileLoader finds register profile overlays by name in its search paths.
type ProfileLoader struct {
	cache       sync.Map
	validator   *Validator
	searchPaths []string
}

func NewProfileLoader(searchPaths []string) (*ProfileLoader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	return &ProfileLoader{
		validator:   validator,
		searchPaths: searchPaths,
	}, nil
}

// Load resolves name (without extension) against the search paths.
func (l *ProfileLoader) Load(name string) (*types.RegisterProfile, error) {
	// Cache-Check
	if cached, ok := l.cache.Load(name); ok {
		return cached.(*types.RegisterProfile), nil
	}

	for _, searchPath := range l.searchPaths {
		for _, ext := range profileExtensions {
			fullPath := filepath.Join(searchPath, name+ext)
			if _, err := os.Stat(fullPath); err != nil {
				continue
			}
			profile, err := l.LoadFile(fullPath)
			if err != nil {
				return nil, err
			}
			l.cache.Store(name, profile)
			return profile, nil
		}
	}

	return nil, fmt.Errorf("profile not found: %s (searched in: %v)", name, l.searchPaths)
}

// LoadFile reads, validates and decodes one profile file. YAML files are
// converted to JSON before validation so one schema covers both formats.
func (l *ProfileLoader) LoadFile(path string) (*types.RegisterProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s to JSON: %w", path, err)
		}
	}

	if err := l.validator.ValidateProfile(data); err != nil {
		return nil, fmt.Errorf("validation failed for %s: %w", path, err)
	}

	var profile types.RegisterProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

func (l *ProfileLoader) ClearCache() {
	l.cache.Range(func(key, value interface{}) bool {
		l.cache.Delete(key)
		return true
	})
}

// ApplyProfiles overlays every profile onto base, in order.
func ApplyProfiles(base *sunspec.Registry, profiles ...*types.RegisterProfile) (*sunspec.Registry, error) {
	reg := base
	for _, p := range profiles {
		for _, m := range p.Models {
			fields := make([]sunspec.FieldDescriptor, 0, len(m.Registers))
			for _, r := range m.Registers {
				fields = append(fields, sunspec.FieldDescriptor{
					Offset: r.Offset,
					Length: r.Length,
					Decode: sunspec.DecodeType(r.Decode),
					Kind:   sunspec.ValueKind(r.Kind),
					Units:  r.Units,
					Access: sunspec.Access(r.Access),
					Name:   r.Name,
				})
			}

			next, err := reg.Overlay(sunspec.ModelID(m.Model), fields)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", p.Profile.ID, err)
			}
			reg = next
		}
	}
	return reg, nil
}
