package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      any    `json:"error,omitempty"`
	Data       any    `json:"data,omitempty"`
	Meta       any    `json:"meta,omitempty"`
}

func NewSuccess(msg string, data, meta any) *Response {
	return &Response{
		Success:    true,
		Message:    msg,
		StatusCode: fiber.StatusOK,
		Data:       data,
		Meta:       meta,
	}
}

func NewInternalServerError() *Response {
	return &Response{
		Success:    false,
		Message:    "Internal Server Error",
		StatusCode: fiber.StatusInternalServerError,
	}
}

// NewFailed builds a failure envelope. The status comes from a *fiber.Error
// or is 400 for field validation errors; anything else is a 500 and is
// logged.
func NewFailed(msg string, err error, log logrus.FieldLogger) *Response {
	res := &Response{
		Success:    false,
		Message:    msg,
		StatusCode: fiber.StatusInternalServerError,
	}

	var fe *fiber.Error
	var fields *FieldsError
	switch {
	case errors.As(err, &fields):
		res.StatusCode = fiber.StatusBadRequest
		res.Error = fields.Fields
	case errors.As(err, &fe):
		res.StatusCode = fe.Code
		if fe.Message != "" {
			res.Error = fe.Message
		}
	}

	if log != nil && res.StatusCode >= fiber.StatusInternalServerError {
		log.Error(err)
	}
	return res
}

func (r *Response) Send(c *fiber.Ctx) error {
	return c.Status(r.StatusCode).JSON(r)
}
