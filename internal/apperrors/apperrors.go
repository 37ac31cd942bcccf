package apperrors

import (
	"fmt"
	"net/http"
)

// Stable numeric error codes. These are part of the external contract and
// must not be renumbered.
const (
	CodeGeneric = 1

	CodeCategoryNotFound      = 201
	CodeCategoryNotDeletable  = 202
	CodeCategoryAlreadyExists = 203

	CodeLocationNotFound      = 301
	CodeLocationNotDeletable  = 302
	CodeLocationNameRequired  = 303
	CodeLocationAlreadyExists = 304

	CodeAssignmentNotFound      = 401
	CodeAssignmentAlreadyExists = 402

	CodeIncidentLocationRequired    = 501
	CodeIncidentProblemRequired     = 502
	CodeIncidentCategoryRequired    = 503
	CodeIncidentNotFound            = 504
	CodeIncidentResponsibleRequired = 505
	CodeIncidentStateRequired       = 506
	CodeIncidentLocationNotFound    = 507
	CodeIncidentIDRequired          = 508
	CodeIncidentForbidden           = 509
	CodeIncidentStateInvalid        = 510

	CodeReportNotGenerated = 601
)

// Canonical messages reused across handlers.
const (
	MsgGeneric                   = "Error genérico"
	MsgCategoryNotFound          = "La categoría no encontrada."
	MsgNoResponsibleForCategory  = "No se encontró ningún responsable para la categoría."
	MsgIncidentLocationRequired  = "La ubicación de la incidencia es obligatoria."
	MsgIncidentProblemRequired   = "El problema de la incidencia es obligatorio."
	MsgIncidentCategoryRequired  = "La categoría de la incidencia es obligatoria."
	MsgIncidentNotFound          = "La incidencia no ha sido encontrada."
	MsgResponsibleEmailRequired  = "El email del responsable de la incidencia es obligatorio."
	MsgIncidentStateRequired     = "El estado de la incidencia es obligatorio."
	MsgIncidentLocationNotFound  = "La ubicación de la incidencia no ha sido encontrada."
	MsgIncidentIDRequired        = "El ID de la incidencia es obligatorio."
	MsgIncidentForbidden         = "El usuario no tiene permisos para realizar esta acción."
)

// ServerError is the domain error of the issues server. It carries a stable
// numeric code and renders the `{code, message, exception?}` response body.
type ServerError struct {
	Code    int
	Message string
	Cause   error
}

func New(code int, message string) *ServerError {
	return &ServerError{Code: code, Message: message}
}

func Wrap(code int, message string, cause error) *ServerError {
	return &ServerError{Code: code, Message: message, Cause: cause}
}

func (e *ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *ServerError) Unwrap() error {
	return e.Cause
}

// Body returns the structured error response body. The exception field is
// only present when a cause was attached.
func (e *ServerError) Body() map[string]interface{} {
	body := map[string]interface{}{
		"code":    e.Code,
		"message": e.Message,
	}
	if e.Cause != nil {
		body["exception"] = fmt.Sprintf("%+v", e.Cause)
	}
	return body
}

// HTTPStatus maps a code to its response status. Not-deletable conflicts are
// the only domain errors surfaced as 409; everything else, including
// forbidden actions, is a 400 by deliberate contract choice.
func (e *ServerError) HTTPStatus() int {
	switch e.Code {
	case CodeCategoryNotDeletable, CodeLocationNotDeletable:
		return http.StatusConflict
	case CodeGeneric, CodeReportNotGenerated:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
