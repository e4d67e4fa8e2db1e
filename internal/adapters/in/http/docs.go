package http

import (
	"context"
	"net/http"
	"sync"

	"backoffice/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// swaggerDoc hands the embedded document to swag, which echo-swagger reads
// from when serving /swagger/doc.json.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(api.OpenAPI)
}

// swag panics on a second registration under the same name.
var registerSwagger sync.Once

// LoadOpenAPI parses and validates the embedded OpenAPI document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// registerDocs serves the document at /openapi.json and the Swagger UI under
// /swagger/.
func registerDocs(e *echo.Echo, doc *openapi3.T) {
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
