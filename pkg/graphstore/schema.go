package graphstore

// RelationshipType names one projected relationship type.
type RelationshipType string

// GraphSchema records the relationship types a graph store supports and
// which property keys each type carries.
type GraphSchema struct {
	types        []RelationshipType
	propertyKeys map[RelationshipType][]string
}

// NewGraphSchema builds a schema from the given supported types and their
// per-type property keys.
func NewGraphSchema(types []RelationshipType, propertyKeys map[RelationshipType][]string) *GraphSchema {
	return &GraphSchema{types: types, propertyKeys: propertyKeys}
}

// SupportedTypes returns every relationship type this schema knows about.
func (s *GraphSchema) SupportedTypes() []RelationshipType {
	return s.types
}

// HasType reports whether t is one of the schema's supported types.
func (s *GraphSchema) HasType(t RelationshipType) bool {
	for _, supported := range s.types {
		if supported == t {
			return true
		}
	}
	return false
}

// HasPropertyKey reports whether relationship type t carries property key.
func (s *GraphSchema) HasPropertyKey(t RelationshipType, key string) bool {
	for _, k := range s.propertyKeys[t] {
		if k == key {
			return true
		}
	}
	return false
}

func subsetOf(requested, supported []RelationshipType) bool {
	allowed := make(map[RelationshipType]bool, len(supported))
	for _, t := range supported {
		allowed[t] = true
	}
	for _, t := range requested {
		if !allowed[t] {
			return false
		}
	}
	return true
}
