// Package metadata maps tech tree entities to their stat records and localized
// strings.
package metadata

import (
	"errors"
	"fmt"
	"log"

	"github.com/ziadkadry99/techtree/internal/graph"
)

// ErrNotFound is returned when a stat record or localized string is missing.
// Callers degrade to a placeholder instead of failing the view.
var ErrNotFound = errors.New("metadata: not found")

// Placeholder is shown in place of a missing help text.
const Placeholder = "?"

const (
	TableUnits     = "units"
	TableBuildings = "buildings"
	TableTechs     = "techs"
)

// TableFor returns the data table holding entities of the given category.
func TableFor(c graph.Category) string {
	switch c {
	case graph.CategoryUnit, graph.CategoryUniqueUnit:
		return TableUnits
	case graph.CategoryTechnology:
		return TableTechs
	default:
		return TableBuildings
	}
}

// Resolver looks up records and strings for one loaded dataset and locale.
type Resolver struct {
	tables  Tables
	strings Strings
}

// NewResolver creates a resolver over the given tables and string table.
func NewResolver(tables Tables, strings Strings) *Resolver {
	return &Resolver{tables: tables, strings: strings}
}

func (r *Resolver) table(c graph.Category) map[string]*Record {
	switch TableFor(c) {
	case TableUnits:
		return r.tables.Units
	case TableTechs:
		return r.tables.Techs
	default:
		return r.tables.Buildings
	}
}

// Resolve returns the record of the entity rawID (node id without its category
// prefix). A variant suffix is removed before the lookup.
func (r *Resolver) Resolve(c graph.Category, rawID string) (*Record, error) {
	id := graph.StripVariant(rawID)
	rec, ok := r.table(c)[id]
	if !ok || rec == nil {
		log.Printf("metadata: no metadata found for %s %s", TableFor(c), id)
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, TableFor(c), id)
	}
	return rec, nil
}

// ResolveNode resolves a full node id such as "unit_93_copy".
func (r *Resolver) ResolveNode(c graph.Category, nodeID string) (*Record, error) {
	return r.Resolve(c, graph.RawID(nodeID))
}

// Has reports whether the entity exists, without logging a miss.
func (r *Resolver) Has(c graph.Category, rawID string) bool {
	rec, ok := r.table(c)[graph.StripVariant(rawID)]
	return ok && rec != nil
}

// String returns the localized string with the given id.
func (r *Resolver) String(id StringID) (string, error) {
	s, ok := r.strings[string(id)]
	if !ok {
		return "", fmt.Errorf("%w: string %s", ErrNotFound, id)
	}
	return s, nil
}

// StringOr returns the localized string or fallback when it is missing.
func (r *Resolver) StringOr(id StringID, fallback string) string {
	if s, err := r.String(id); err == nil {
		return s
	}
	return fallback
}

// HelpText returns the raw localized help template of a record.
func (r *Resolver) HelpText(rec *Record) (string, error) {
	if rec == nil {
		return "", ErrNotFound
	}
	return r.String(rec.LanguageHelpId)
}

// Name returns the localized display name of a record.
func (r *Resolver) Name(rec *Record) (string, error) {
	if rec == nil {
		return "", ErrNotFound
	}
	return r.String(rec.LanguageNameId)
}
