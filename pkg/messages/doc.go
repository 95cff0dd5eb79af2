// Package messages turns validation violations into localized, user facing
// text. Rule names are the lookup keys: a Catalog resolves "rules.<rule>" or
// the field specific "fields.<field>.<rule>" for the best matching locale and
// interpolates field parameters such as {label}, {min} or {maxSize}.
//
// English and Spanish messages are built in; further locales load from YAML
// files named after their BCP 47 tag (for example "fr.yaml" or "pt-BR.yml").
package messages
