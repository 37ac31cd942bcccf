package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reaktor-issues/backend/internal/apperrors"
	"github.com/reaktor-issues/backend/internal/logger"
)

// respondError converts a domain error into its structured body. Anything
// that is not a ServerError is treated as unexpected: logged with full
// context and returned as an opaque generic 500.
func respondError(c *gin.Context, err error) {
	if serverErr, ok := err.(*apperrors.ServerError); ok {
		c.JSON(serverErr.HTTPStatus(), serverErr.Body())
		return
	}

	logger.WithError(err, "controller").Error("Unexpected error")
	generic := apperrors.Wrap(apperrors.CodeGeneric, apperrors.MsgGeneric, err)
	c.JSON(http.StatusInternalServerError, generic.Body())
}

// requester is the authenticated identity placed in the context by the auth
// middleware. Handlers trust it as-is.
type requester struct {
	Email   string
	Name    string
	Surname string
	Role    string
}

func currentUser(c *gin.Context) requester {
	return requester{
		Email:   c.GetString("user_email"),
		Name:    c.GetString("user_name"),
		Surname: c.GetString("user_surname"),
		Role:    c.GetString("user_role"),
	}
}

func (r requester) isAdmin() bool {
	return r.Role == "ADMINISTRADOR"
}
