package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const schemaRoot = "schemas/events"

//go:embed schemas
var schemasFS embed.FS

var compiledSchemas map[string]*jsonschema.Schema

func init() {
	var err error
	compiledSchemas, err = compileSchemas(schemasFS)
	if err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}
}

// compileSchemas registers every schema as a resource first so $ref between them resolves.
func compileSchemas(fsys fs.FS) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, schemaRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", path, err)
		}
		key := keyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("schema path %s is not <event-name>/v<N>.json", path)
		}
		compiled[key] = schema
	}
	return compiled, nil
}

// keyFromPath maps "schemas/events/availability-changed/v1.json" to
// "AvailabilityChangedEvent/1.0.0".
func keyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, schemaRoot+"/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Event")
	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// ValidateEvent checks body against the schema registered for eventType and eventVersion.
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	key := eventType + "/" + eventVersion
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for event %q version %q not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
