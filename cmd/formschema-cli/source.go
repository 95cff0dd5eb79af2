package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	formschema "github.com/goliatone/go-formschema"
	"github.com/goliatone/go-formschema/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const (
	formatAuto     = "auto"
	formatManifest = "manifest"
	formatOpenAPI  = "openapi"
)

// loadSchemas registers the models found at path. Directories are read as
// manifest sets, URLs as OpenAPI documents; single files are sniffed unless
// format names them.
func loadSchemas(ctx context.Context, engine *formschema.Engine, path, format string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("no schema path configured")
	}
	switch format {
	case formatAuto, formatManifest, formatOpenAPI:
	default:
		return fmt.Errorf("unknown schema format %q", format)
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if format == formatManifest {
			return fmt.Errorf("manifests are read from the filesystem, got %s", path)
		}
		if _, err := url.ParseRequestURI(path); err != nil {
			return fmt.Errorf("invalid schema url: %w", err)
		}
		log.Debugf("Loading OpenAPI document from %s", path)
		return engine.LoadOpenAPI(ctx, schema.SourceFromURL(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("schema path: %w", err)
	}
	if info.IsDir() {
		if format == formatOpenAPI {
			return fmt.Errorf("%s is a directory, expected an OpenAPI document", path)
		}
		log.Debugf("Loading manifests from %s", path)
		return engine.LoadManifest(os.DirFS(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("schema path: %w", err)
	}
	if format == formatAuto {
		format = formatManifest
		if pkgopenapi.Detect(data) {
			format = formatOpenAPI
		}
	}
	if format == formatOpenAPI {
		log.Debugf("Loading OpenAPI document %s", path)
		return engine.LoadOpenAPI(ctx, schema.SourceFromFile(path))
	}

	log.Debugf("Loading manifest %s", path)
	schemas, err := manifest.Parse(data, path)
	if err != nil {
		return err
	}
	return engine.Register(schemas...)
}
