package i18n

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse builds an envelope of the form
// {"success": true, "data": ..., "message": ...}
type SuccessResponse struct {
	status  int
	msgID   string
	data    map[string]interface{}
	payload interface{}
}

// Success creates a 200 response builder
func Success(msgID string) *SuccessResponse {
	return &SuccessResponse{status: http.StatusOK, msgID: msgID}
}

// Created creates a 201 response builder
func Created(msgID string) *SuccessResponse {
	return &SuccessResponse{status: http.StatusCreated, msgID: msgID}
}

// With attaches template data for message interpolation
func (r *SuccessResponse) With(data map[string]interface{}) *SuccessResponse {
	r.data = data
	return r
}

// WithPayload attaches the data payload of the envelope
func (r *SuccessResponse) WithPayload(payload interface{}) *SuccessResponse {
	r.payload = payload
	return r
}

// Send writes the response to the gin context
func (r *SuccessResponse) Send(c *gin.Context) {
	body := gin.H{"success": true}
	if r.msgID != "" {
		body["message"] = TranslateMessage(c, r.msgID, r.data)
	}
	if r.payload != nil {
		body["data"] = r.payload
	}
	c.JSON(r.status, body)
}

// RespondData writes a plain success envelope carrying only data
func RespondData(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payload})
}

// RespondWithError writes an error envelope
// {"success": false, "error": "<localized message>"}
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msgID := "Errors.General.InternalError"
	var data map[string]interface{}

	var ec *ErrorWithCode
	var ie *I18nError
	switch {
	case errors.As(err, &ec):
		status = ec.Code.HTTPStatus()
		msgID = ec.MsgID
		data = ec.Data
	case errors.As(err, &ie):
		msgID = ie.MsgID
		data = ie.Data
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   TranslateMessage(c, msgID, data),
	})
}
