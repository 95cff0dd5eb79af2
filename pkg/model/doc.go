// Package model provides Model, a live record bound to a schema. A Model keeps
// the current value of every declared field, accepts partial updates and
// delegates validation to a validation.Validator. Models satisfy
// validation.Record, so a Model stored in a relation field of another record
// is validated against its own schema.
package model
