package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("record must be a JSON object")

// openRecord returns the record input; an empty name or "-" reads stdin.
func openRecord(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	return f, nil
}

// readRecord decodes a JSON object, optionally selected by a gjson path.
func readRecord(r io.Reader, path string) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("record: input is not valid JSON")
	}

	result := gjson.ParseBytes(data)
	if path != "" {
		result = result.Get(path)
		if !result.Exists() {
			return nil, fmt.Errorf("record: path %q matches nothing", path)
		}
	}
	if !result.IsObject() {
		return nil, errNotObject
	}
	values, ok := result.Value().(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return values, nil
}
