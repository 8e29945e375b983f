package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config cfg.yaml openapi.yaml

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// BaseURL is the prefix every operation is served under.
const BaseURL = "/api/v1"

//go:embed openapi.yaml
var rawSpec []byte

var (
	loadOnce   sync.Once
	loaded     *openapi3.T
	loadFailed error
)

// GetSwagger parses and validates the embedded OpenAPI document. The result
// is shared; callers must not mutate it.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			loadFailed = fmt.Errorf("loading openapi document: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			loadFailed = fmt.Errorf("validating openapi document: %w", err)
			return
		}
		loaded = doc
	})
	return loaded, loadFailed
}

// swaggerDoc feeds the document to echo-swagger's doc.json endpoint.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	doc, err := GetSwagger()
	if err != nil {
		return "{}"
	}
	b, err := doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

// RegisterSwaggerDoc makes the document available under swag's default
// instance name.
func RegisterSwaggerDoc() {
	if _, err := swag.ReadDoc(swag.Name); err == nil {
		return
	}
	swag.Register(swag.Name, swaggerDoc{})
}
