// Package request reads and decodes JSON request bodies.
package request

import (
	"encoding/json"
	"io"

	"film-catalog/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ReadBody returns the complete request body, draining it first when the
// server streams request bodies.
func ReadBody(c *fiber.Ctx) ([]byte, error) {
	if c.Request().IsBodyStream() {
		return readAll(c.Request().BodyStream())
	}
	return c.Body(), nil
}

func readAll(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.BodyRead(err)
	}
	return body, nil
}

// Decode unmarshals body into dst and checks its `validate` tags.
func Decode(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.Parse(err)
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.Validation(err)
	}
	return nil
}

// Bind reads the body of c and decodes it into dst.
func Bind(c *fiber.Ctx, dst interface{}) error {
	body, err := ReadBody(c)
	if err != nil {
		return err
	}
	return Decode(body, dst)
}
