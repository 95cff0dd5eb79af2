// Package validation executes the rule plan compiled by schema.Field against
// candidate values.
//
// Validate visits every field in declaration order. Fields that are neither
// required nor carry a value are skipped, which lets callers validate partial
// (PATCH style) payloads. For visited fields the rules run in plan order with
// required first, and the first failing rule becomes the field's violation.
// Failures are returned as data: a nil Violation means the values are valid.
// Unknown rules pass and panicking predicates fail only their own rule.
//
// Relation fields recurse into the target model resolved through a
// SchemaResolver (typically *schema.Registry). Nested objects are validated
// against the keys they carry; strings and numbers are treated as foreign
// keys and pass. Recursion depth is bounded by WithMaxDepth.
package validation
