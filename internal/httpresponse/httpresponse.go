// Package httpresponse defines the JSON envelope returned by the API and
// helpers to apply it to a fiber response.
//
// Success bodies carry a meta block describing the upstream bulletin the
// data was derived from. Error bodies carry a single error object with the
// mapped status and a stable machine-readable message.
package httpresponse

import (
	"github.com/gofiber/fiber/v2"
)

// APIVersion is reported in every success meta block.
const APIVersion = "v1"

// Meta describes the upstream document behind a response.
type Meta struct {
	SourceURL    string `json:"source_url"`
	LastModified string `json:"last_modified,omitempty"`
	Title        string `json:"title,omitempty"`
	APIVersion   string `json:"api_version"`
}

// Envelope is the success response shape.
type Envelope struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

// ErrorBody is the error response payload.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorEnvelope is the error response shape.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ApplySuccessToResponse writes a 200 response wrapping data in the meta
// envelope. The API version is filled in here so handlers cannot forget it.
func ApplySuccessToResponse(c *fiber.Ctx, meta Meta, data interface{}) error {
	meta.APIVersion = APIVersion
	return c.Status(fiber.StatusOK).JSON(Envelope{Meta: meta, Data: data})
}

// ApplyErrorToResponse writes an error response with the given status and
// category message. The underlying error, when present, is echoed in the
// detail field for diagnostics.
func ApplyErrorToResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := ErrorBody{Status: status, Message: message}
	if err != nil {
		body.Detail = err.Error()
	}
	return c.Status(status).JSON(ErrorEnvelope{Error: body})
}
