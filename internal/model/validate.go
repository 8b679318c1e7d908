package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

var schemaLoader = gojsonschema.NewStringLoader(resumeSchema)

// Validate checks a resume against resume.schema.json.
func Validate(r *Resume) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(r))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
