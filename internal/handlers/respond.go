package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/justsurfingit/engineer-marketplace/internal/wizard"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// statusOf maps service errors to HTTP status codes. Anything unknown is a 500.
func statusOf(err error) int {
	var submitErr *wizard.SubmitError
	switch {
	case errors.As(err, &submitErr):
		return http.StatusInternalServerError
	case errors.Is(err, pending.ErrCanceled):
		return http.StatusRequestTimeout
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrEngineerNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrAlreadyLinked),
		errors.Is(err, services.ErrCompanyNameTaken),
		errors.Is(err, wizard.ErrCompleted):
		return http.StatusConflict
	case errors.Is(err, services.ErrWrongUserType):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, wizard.ErrAnswerRequired),
		errors.Is(err, wizard.ErrInvalidAnswer),
		errors.Is(err, session.ErrInvalidValue),
		errors.Is(err, session.ErrUnknownKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError answers with {"error": ...}. Server-side failures are logged
// and their details kept out of the body, except for wizard submission whose
// message is meant for the user.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		var submitErr *wizard.SubmitError
		if !errors.As(err, &submitErr) {
			msg = "internal server error"
		}
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// redirect answers a guard decision: 303 with the target in Location and in the body.
func redirect(c *gin.Context, to wizard.Redirect) {
	c.Header("Location", string(to))
	c.JSON(http.StatusSeeOther, gin.H{"redirect": string(to)})
}
