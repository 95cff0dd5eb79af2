package schema

import "strings"

// RelationKind distinguishes singular from collection references.
type RelationKind string

const (
	// RelationOne covers one-to-one and one-to-many targets.
	RelationOne RelationKind = "isOneOf"
	// RelationMany covers many-to-many targets.
	RelationMany RelationKind = "areManyOf"
)

// Relation points a field at another model registered under Target.
type Relation struct {
	Kind   RelationKind
	Target string
}

// Rule returns the rule evaluated for relations of this kind.
func (k RelationKind) Rule() Rule {
	switch k {
	case RelationOne:
		return RuleIsOneOf
	case RelationMany:
		return RuleAreManyOf
	default:
		return ""
	}
}

// Many reports whether the relation holds a collection.
func (r *Relation) Many() bool {
	return r != nil && r.Kind == RelationMany
}

// ParseRelationKind accepts the canonical rule names plus the belongsTo /
// hasOne / hasMany / manyToMany spellings used by OpenAPI extensions.
func ParseRelationKind(raw string) (RelationKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "isoneof", "belongsto", "hasone", "one":
		return RelationOne, true
	case "aremanyof", "hasmany", "manytomany", "many":
		return RelationMany, true
	default:
		return "", false
	}
}

func cloneRelation(rel *Relation) *Relation {
	if rel == nil {
		return nil
	}
	cloned := *rel
	return &cloned
}
