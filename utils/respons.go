package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/hoststay-app/apperr"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondAppError memetakan error domain bertipe ke status + kode mesin di
// payload. Error precondition (mis. INVENTORY_REVIEW_REQUIRED) tetap
// recoverable: client mengarahkan user ke flow remediasi, bukan banner
// gagal generik.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), JSONResponse{
			Status:  false,
			Message: appErr.Message,
			Code:    appErr.Code,
		})
		return
	}
	ErrorLogger.Printf("internal error: %v", err)
	c.JSON(500, JSONResponse{
		Status:  false,
		Message: "internal server error",
	})
}
