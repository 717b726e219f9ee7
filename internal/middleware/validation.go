package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/pkg/validation"
)

var validate = validation.New()

// DecodeJSON decodes the request body into obj. On failure the error response is
// written and false is returned. Validation is left to the service.
func DecodeJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(errorDetail))
		return false
	}
	return true
}

// BindJSON decodes the request body into obj and validates it. On failure the error
// response is written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if !DecodeJSON(c, obj) {
		return false
	}

	if err := validate.Struct(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
