// Package openapi exposes the contracts for turning OpenAPI documents into
// model schemas. Each object under components.schemas becomes a model;
// property $refs become isOneOf relations and arrays of $refs become
// areManyOf relations. The kin-openapi backed implementation lives under
// internal/openapi so consumers never import it directly.
package openapi
