package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the success envelope the mobile client expects:
// {statusCode, data}. List endpoints nest {result, total} inside data.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
}

// ListData is the data body for paginated list endpoints.
type ListData struct {
	Result interface{} `json:"result"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Limit  int         `json:"limit"`
}

// ErrorResponse is the error envelope. The client extracts, in order,
// errorDescription, then message; errorCode keys its local message table.
type ErrorResponse struct {
	StatusCode       int               `json:"statusCode"`
	ErrorCode        ErrCode           `json:"errorCode"`
	ErrorDescription string            `json:"errorDescription"`
	Message          string            `json:"message,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		StatusCode: statusCode,
		Data:       data,
	})
}

// SuccessList sends a successful paginated response: data.result + data.total.
func SuccessList(c *gin.Context, statusCode int, result interface{}, total, page, limit int) {
	c.JSON(statusCode, Response{
		StatusCode: statusCode,
		Data: ListData{
			Result: result,
			Total:  total,
			Page:   page,
			Limit:  limit,
		},
	})
}

// Fail sends an error response with the registry message for the code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorResponse{
		StatusCode:       statusCode,
		ErrorCode:        code,
		ErrorDescription: GetMessage(code),
	})
}

// FailWithDescription sends an error response with an explicit description,
// e.g. a constraint violation the client should display verbatim.
func FailWithDescription(c *gin.Context, statusCode int, code ErrCode, description string) {
	c.JSON(statusCode, ErrorResponse{
		StatusCode:       statusCode,
		ErrorCode:        code,
		ErrorDescription: description,
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, ErrorResponse{
		StatusCode:       statusCode,
		ErrorCode:        code,
		ErrorDescription: GetMessage(code),
		Fields:           fields,
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		StatusCode:       statusCode,
		ErrorCode:        code,
		ErrorDescription: GetMessage(code),
	})
}
