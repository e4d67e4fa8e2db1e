// Package api holds the OpenAPI document of the back office HTTP interface.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document served at /openapi.json and /swagger/doc.json.
//
//go:embed openapi.json
var OpenAPI []byte
