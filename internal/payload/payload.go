// Package payload holds the request and response bodies of the REST API.
//
// Requests implement render.Binder and are validated once, right after
// decoding. Responses implement render.Renderer and wrap the resource under
// its name, e.g. {"article": {...}}.
package payload

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()
