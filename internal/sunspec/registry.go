package sunspec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps a model id to its ordered field descriptors.
// A Registry is immutable once built; overlays produce a new one.
type Registry struct {
	tables map[ModelID][]FieldDescriptor
	index  map[ModelID]map[string]FieldDescriptor
}

func builtinTables() map[ModelID][]FieldDescriptor {
	return map[ModelID][]FieldDescriptor{
		ModelCommon:         commonFields,
		ModelInverterSingle: inverterFields,
		ModelInverterSplit:  inverterFields,
		ModelInverterThree:  inverterFields,
		ModelOutBack:        outbackFields,
		ModelCC:             ccFields,
		ModelCCConfig:       ccConfigFields,
		ModelFX:             fxFields,
		ModelFXConfig:       fxConfigFields,
		ModelGSSplit:        gsSplitFields,
		ModelGSConfig:       gsConfigFields,
		ModelGSSingle:       gsSingleFields,
		ModelFLEXnetDC:      flexnetFields,
		ModelFLEXnetConfig:  flexnetConfigFields,
		ModelOutBackSystem:  outbackSystemFields,
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the built-in SunSpec and OutBack tables.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry(builtinTables())
		if err != nil {
			panic(fmt.Sprintf("sunspec: built-in register tables are invalid: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry validates tables and builds a name index per model.
func NewRegistry(tables map[ModelID][]FieldDescriptor) (*Registry, error) {
	r := &Registry{
		tables: make(map[ModelID][]FieldDescriptor, len(tables)),
		index:  make(map[ModelID]map[string]FieldDescriptor, len(tables)),
	}

	for model, fields := range tables {
		idx := make(map[string]FieldDescriptor, len(fields))
		for _, fd := range fields {
			if err := fd.validate(); err != nil {
				return nil, fmt.Errorf("model %d: %w", model, err)
			}
			if _, dup := idx[fd.Name]; dup {
				return nil, fmt.Errorf("model %d: duplicate field %s", model, fd.Name)
			}
			idx[fd.Name] = fd
		}
		r.tables[model] = append([]FieldDescriptor(nil), fields...)
		r.index[model] = idx
	}

	return r, nil
}

// Lookup returns the descriptor called name in model.
func (r *Registry) Lookup(model ModelID, name string) (FieldDescriptor, bool) {
	fd, ok := r.index[model][name]
	return fd, ok
}

// Fields returns the descriptors of model in table order.
func (r *Registry) Fields(model ModelID) []FieldDescriptor {
	return append([]FieldDescriptor(nil), r.tables[model]...)
}

// Has reports whether the registry carries a table for model.
func (r *Registry) Has(model ModelID) bool {
	_, ok := r.tables[model]
	return ok
}

// Models returns every model id with a table, ascending.
func (r *Registry) Models() []ModelID {
	models := make([]ModelID, 0, len(r.tables))
	for m := range r.tables {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i] < models[j] })
	return models
}

// Overlay returns a new registry where fields replace same-named descriptors of
// model and any new names are appended. Other models are shared unchanged.
func (r *Registry) Overlay(model ModelID, fields []FieldDescriptor) (*Registry, error) {
	tables := make(map[ModelID][]FieldDescriptor, len(r.tables)+1)
	for m, t := range r.tables {
		tables[m] = t
	}

	merged := append([]FieldDescriptor(nil), r.tables[model]...)
	pos := make(map[string]int, len(merged))
	for i, fd := range merged {
		pos[fd.Name] = i
	}
	for _, fd := range fields {
		if i, ok := pos[fd.Name]; ok {
			merged[i] = fd
			continue
		}
		pos[fd.Name] = len(merged)
		merged = append(merged, fd)
	}
	tables[model] = merged

	return NewRegistry(tables)
}
