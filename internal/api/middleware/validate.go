package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shivam-singh-au17/assessment-sassy/internal/api/schema"
)

// ValuesKey is the context key holding the schema.Values of a validated request.
const ValuesKey = "values"

// ValidateBody checks the JSON body against s. An empty body is validated
// as an empty object.
func ValidateBody(s schema.Schema) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			payload, err := readObject(c.Request().Body)
			if err != nil {
				return err
			}
			return validate(c, next, s, payload)
		}
	}
}

// ValidateQuery checks the query string against s. A repeated parameter is
// kept as a list and therefore fails any scalar rule.
func ValidateQuery(s schema.Schema) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			params := c.QueryParams()
			payload := make(map[string]any, len(params))
			for k, v := range params {
				if len(v) == 1 {
					payload[k] = v[0]
				} else {
					payload[k] = v
				}
			}
			return validate(c, next, s, payload)
		}
	}
}

func validate(c echo.Context, next echo.HandlerFunc, s schema.Schema, payload map[string]any) error {
	values, err := schema.Validate(s, payload)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.Error()).SetInternal(ve)
		}
		return err
	}
	c.Set(ValuesKey, values)
	return next(c)
}

func readObject(body io.Reader) (map[string]any, error) {
	if body == nil {
		return map[string]any{}, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read request body").SetInternal(err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload").SetInternal(err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusBadRequest, `"value" must be of type object`)
	}
	return obj, nil
}

// Values returns the validated values stored by ValidateBody or ValidateQuery.
func Values(c echo.Context) schema.Values {
	v, _ := c.Get(ValuesKey).(schema.Values)
	return v
}
