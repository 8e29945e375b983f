package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks requests against the OpenAPI document before
// they reach the handlers. Paths the document does not describe (health,
// swagger) pass through untouched. Schema violations answer 422, anything
// unparsable answers 400.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) {
					return next(ctx)
				}
				code := http.StatusMethodNotAllowed
				return ctx.JSON(code, servers.Error{Code: code, Message: err.Error()})
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				code := http.StatusBadRequest
				var schemaErr *openapi3.SchemaError
				if errors.As(err, &schemaErr) {
					code = http.StatusUnprocessableEntity
				}
				return ctx.JSON(code, servers.Error{Code: code, Message: err.Error()})
			}
			return next(ctx)
		}
	}, nil
}
