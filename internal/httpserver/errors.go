package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tienda/internal/transport"
)

const msgInvalidBody = "cuerpo invalido"

// parseID reads the :id path param. ok is false when it is not a positive
// integer, and such an id matches no row or cart line.
func parseID(c echo.Context) (id uint, ok bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// ErrorHandler renders every error as {"error": "<message>"}. Errors that
// are not *echo.HTTPError become a 500 carrying err.Error().
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprint(m)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, transport.ErrorResponse{Error: msg})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
