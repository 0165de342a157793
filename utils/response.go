package utils

import (
	"github.com/gin-gonic/gin"

	"lumarise-backend/apperrors"
	"lumarise-backend/logger"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error   string         `json:"error"`
	Code    apperrors.Code `json:"code,omitempty"`
	Details any            `json:"details,omitempty"`
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Error: message})
}

// RespondError writes err as the error envelope. Unclassified errors become a
// generic 500 and are logged with their cause.
func RespondError(c *gin.Context, logg *logger.Logger, err error) {
	if logg == nil {
		logg = logger.Nop()
	}
	ctx := c.Request.Context()

	typed := apperrors.As(err)
	if typed == nil {
		typed = apperrors.Wrap(apperrors.CodeInternal, err, apperrors.MetadataFor(apperrors.CodeInternal).PublicMessage)
	}
	meta := apperrors.MetadataFor(typed.Code())

	body := ErrorBody{Error: typed.Message(), Code: typed.Code()}
	if body.Error == "" {
		body.Error = meta.PublicMessage
	}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	if meta.HTTPStatus >= 500 {
		logg.Error(logg.WithField(ctx, "code", string(typed.Code())), "request.failed", err)
	} else {
		logg.Debug(logg.WithField(ctx, "code", string(typed.Code())), "request.rejected")
	}
	c.AbortWithStatusJSON(meta.HTTPStatus, body)
}
