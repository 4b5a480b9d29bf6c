package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vmihailenco/msgpack/v5"
)

const MIMEMsgpack = "application/msgpack"

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code" msgpack:"code"`
	Message string      `json:"message" msgpack:"message"`
	Data    interface{} `json:"data,omitempty" msgpack:"data,omitempty"`
	Error   string      `json:"error,omitempty" msgpack:"error,omitempty"`
}

// WantsMsgpack reports whether the client asked for a msgpack body
func WantsMsgpack(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, MIMEMsgpack) || strings.Contains(accept, "application/x-msgpack")
}

// Success sends a successful response, as msgpack when the client accepts it
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 response
func Created(c *gin.Context, data interface{}) {
	write(c, http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error response. err may be nil.
func Error(c *gin.Context, code int, message string, err error) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
		_ = c.Error(err)
	}
	write(c, code, resp)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string, err error) {
	Error(c, http.StatusNotFound, message, err)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}

func write(c *gin.Context, status int, resp Response) {
	if !WantsMsgpack(c) {
		c.JSON(status, resp)
		return
	}
	body, err := msgpack.Marshal(resp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to encode response",
			Error:   err.Error(),
		})
		return
	}
	c.Data(status, MIMEMsgpack, body)
}
