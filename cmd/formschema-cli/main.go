// Command formschema-cli validates JSON records against models declared in
// manifests or OpenAPI documents.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	logpkg "github.com/echa/log"

	formschema "github.com/goliatone/go-formschema"
	"github.com/goliatone/go-formschema/internal/prompt"
	"github.com/goliatone/go-formschema/pkg/jsonschema"
	"github.com/goliatone/go-formschema/pkg/messages"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
	if err := loadConfig(opts); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
	opts.resolve()
	initLogging()

	switch {
	case opts.vtrace:
		setLogLevels(logpkg.LevelTrace)
	case opts.vdebug:
		setLogLevels(logpkg.LevelDebug)
	}

	code, err := execute(ctx, opts, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return code
}

func execute(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	if opts.model == "" {
		return exitError, errors.New("-model is required")
	}

	engine, err := newEngine(ctx, opts)
	if err != nil {
		return exitError, err
	}
	s, err := engine.Schema(opts.model)
	if err != nil {
		return exitError, err
	}

	if opts.export {
		data, err := jsonschema.Marshal(s, engine.Registry())
		if err != nil {
			return exitError, err
		}
		fmt.Fprintln(stdout, string(data))
		return exitOK, nil
	}

	var values map[string]any
	if opts.interactive {
		values, err = fill(ctx, engine, opts, stdin)
	} else {
		values, err = readInput(opts, stdin)
	}
	if err != nil {
		return exitError, err
	}

	violation, err := engine.Validate(opts.model, values)
	if err != nil {
		return exitError, err
	}
	if len(violation) > 0 {
		mapping, err := engine.Localize(opts.model, violation, opts.locale)
		if err != nil {
			return exitError, err
		}
		for _, name := range violation.Fields() {
			for _, message := range mapping.Fields[name] {
				fmt.Fprintf(stderr, "%s: %s\n", name, message)
			}
		}
		log.Debugf("%s record failed %d field(s)", opts.model, len(violation))
		return exitInvalid, nil
	}

	log.Infof("%s record is valid", opts.model)
	if opts.interactive {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return exitError, err
		}
		fmt.Fprintln(stdout, string(data))
		return exitOK, nil
	}
	fmt.Fprintln(stdout, "ok")
	return exitOK, nil
}

func newEngine(ctx context.Context, opts *options) (*formschema.Engine, error) {
	catalog := messages.NewCatalog()
	if opts.messages != "" {
		if err := catalog.LoadFS(os.DirFS(opts.messages)); err != nil {
			return nil, err
		}
		log.Debugf("Loaded message catalogs from %s", opts.messages)
	}

	engine := formschema.New(
		formschema.WithCatalog(catalog),
		formschema.WithMaxDepth(opts.maxDepth),
	)
	if err := loadSchemas(ctx, engine, opts.schemaPath, opts.format); err != nil {
		return nil, err
	}
	log.Debugf("Registered models %v", engine.Registry().Names())
	return engine, nil
}

func readInput(opts *options, stdin io.Reader) (map[string]any, error) {
	r, err := openRecord(opts.record, stdin)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readRecord(r, opts.jsonPath)
}

// fill prompts for every field. A record file, when given, seeds the
// answers.
func fill(ctx context.Context, engine *formschema.Engine, opts *options, stdin io.Reader) (map[string]any, error) {
	m, err := engine.NewModel(opts.model)
	if err != nil {
		return nil, err
	}
	if opts.record != "" && opts.record != "-" {
		seed, err := readInput(opts, stdin)
		if err != nil {
			return nil, err
		}
		m.SetValues(seed)
	}

	filler := prompt.New(
		prompt.WithMessages(engine.Messages(), opts.locale),
		prompt.WithMimeRegistry(engine.MimeRegistry()),
	)
	if err := filler.Fill(ctx, m); err != nil {
		return nil, err
	}
	return m.GetValues(), nil
}
