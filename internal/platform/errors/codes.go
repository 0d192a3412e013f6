// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Post lookup errors
	CodePostIDRequired Code = "POST_ID_REQUIRED"
	CodePostIDInvalid  Code = "POST_ID_INVALID"
	CodePostNotFound   Code = "POST_NOT_FOUND"

	// Post input errors
	CodePostInvalidInput Code = "POST_INVALID_INPUT"
	CodeStatusInvalid    Code = "STATUS_INVALID"
	CodeFilterInvalid    Code = "FILTER_INVALID"

	// Variant selection errors
	CodeVariantSelectionRequired Code = "VARIANT_SELECTION_REQUIRED"
	CodeVariantUnknown           Code = "VARIANT_UNKNOWN"

	// Upstream errors
	CodeStoreRequestFailed   Code = "STORE_REQUEST_FAILED"
	CodeWebhookRequestFailed Code = "WEBHOOK_REQUEST_FAILED"

	// Startup errors
	CodeCredentialsIncomplete Code = "CREDENTIALS_INCOMPLETE"
)

// HTTPStatus maps the code to the status used by JSON endpoints.
func (c Code) HTTPStatus() int {
	switch c {
	case CodePostIDRequired, CodePostIDInvalid, CodePostInvalidInput, CodeStatusInvalid,
		CodeFilterInvalid, CodeVariantSelectionRequired, CodeVariantUnknown:
		return 400
	case CodePostNotFound:
		return 404
	case CodeStoreRequestFailed, CodeWebhookRequestFailed:
		return 502
	default:
		return 500
	}
}
