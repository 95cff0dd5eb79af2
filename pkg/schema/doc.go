// Package schema describes data models declaratively. A Schema is an ordered,
// named list of Field values built with the fluent FieldBuilder; a Registry
// indexes schemas by model name so relation fields (isOneOf / areManyOf) can
// be resolved without capturing concrete model types.
//
// Fields are immutable values. Schema and Registry hand out copies, so callers
// never alias the canonical declaration. Build schemas once at startup and
// treat them as read-only afterwards; no locking is performed on reads.
//
// Each Field compiles into an ordered rule plan (see Field.Rules) whose names
// form the public violation vocabulary: required, min, max, minLength,
// maxLength, pattern, enum, fileType, maxSize, assert, isOneOf, areManyOf and
// the type rules named after FieldType values (email, integer, url, ...).
package schema
