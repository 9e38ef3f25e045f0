package lookup

import (
	"context"
	"strings"

	"github.com/lkarjala/curator/internal/errors"
)

// Strategy resolves identifiers of one entity type into canonical records.
type Strategy interface {
	Entity() EntityType
	SupportedIdentifierTypes() []IdentifierType
	SupportsIdentifierType(id IdentifierType) bool
	Lookup(ctx context.Context, id IdentifierType, value string) (*Response, error)
}

// Dispatcher routes lookups to the strategy registered for the entity type.
// The strategy table is built once at construction.
type Dispatcher struct {
	strategies map[EntityType]Strategy
}

// NewDispatcher registers the given strategies. A later strategy for the
// same entity type replaces the earlier one.
func NewDispatcher(strategies ...Strategy) *Dispatcher {
	table := make(map[EntityType]Strategy, len(strategies))
	for _, s := range strategies {
		table[s.Entity()] = s
	}
	return &Dispatcher{strategies: table}
}

// Lookup parses the raw entity and identifier type, validates them against
// the registered strategy and runs the lookup. Unsupported combinations are
// rejected before any network activity.
func (d *Dispatcher) Lookup(ctx context.Context, entity, identifierType, value string) (*Response, error) {
	entityType, err := ParseEntityType(entity)
	if err != nil {
		return nil, err
	}
	idType, err := ParseIdentifierType(identifierType)
	if err != nil {
		return nil, err
	}

	strategy, ok := d.strategies[entityType]
	if !ok {
		return nil, errors.NewValidationError("entityType", entity, d.registeredEntities()...)
	}
	if !strategy.SupportsIdentifierType(idType) {
		return nil, errors.NewValidationError("identifierType", identifierType,
			identifierTypeStrings(strategy.SupportedIdentifierTypes())...)
	}
	if strings.TrimSpace(value) == "" {
		return nil, errors.NewValidationError("identifierValue", value)
	}

	return strategy.Lookup(ctx, idType, value)
}

func (d *Dispatcher) registeredEntities() []string {
	out := make([]string, 0, len(d.strategies))
	for _, e := range entityTypes {
		if _, ok := d.strategies[e]; ok {
			out = append(out, string(e))
		}
	}
	return out
}
