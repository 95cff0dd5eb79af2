// Package manifest decodes declarative schema manifests written in YAML or
// JSON into schema values.
//
// A manifest lists models and their fields. The order of the keys inside a
// field mapping is the declaration order of its attributes, and therefore the
// order in which the validator evaluates the resulting rules:
//
//	models:
//	  - name: user
//	    fields:
//	      - name: email
//	        type: email
//	        required: true
//	      - name: nickname
//	        minLength: 3
//	        pattern: "[a-z0-9_]+"
//	      - name: posts
//	        areManyOf: post
package manifest
