package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
)

var notFoundErrors = []error{
	apperrors.ErrStudentNotFound,
	apperrors.ErrFacultyNotFound,
	apperrors.ErrExamNotFound,
	apperrors.ErrFeeStructureNotFound,
	apperrors.ErrSalaryNotFound,
	apperrors.ErrHostelNotFound,
	apperrors.ErrRoomNotFound,
	apperrors.ErrClubNotFound,
	apperrors.ErrBookNotFound,
	apperrors.ErrRequestNotFound,
}

var stateConflictErrors = []error{
	apperrors.ErrRoomFull,
	apperrors.ErrAlreadyDecided,
	apperrors.ErrSalaryAlreadyPaid,
	apperrors.ErrBookUnavailable,
	apperrors.ErrBookAlreadyReturned,
	apperrors.ErrAlreadyClubMember,
	apperrors.ErrStudentAlreadyHoused,
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("Request failed")
	}
	c.JSON(status, dto.NewFailureResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest, dto.HandleValidationError(fieldErrs)
	}

	var status int
	var detail *dto.ErrorDetail
	message := err.Error()

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound, notFoundErrors...):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)
	case apperrors.Is(err, apperrors.ErrConflict, stateConflictErrors...):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, message)
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrMarksOutOfRange):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	case errors.Is(err, apperrors.ErrBadRequest):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message)
	case errors.Is(err, apperrors.ErrPersistence):
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeStorageError, "Changes could not be saved").WithSeverity(dto.ErrorSeverityCritical)
	default:
		status, detail = http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		detail.WithDetails(custom.Details)
	}
	return status, detail
}
