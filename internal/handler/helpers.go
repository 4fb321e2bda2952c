package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate is the query-string counterpart of bindAndValidate:
// list filters carry validator tags (page/limit bounds, oneof) that gin's
// form binding alone does not enforce.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Query invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseIDRaw reads the :id path param as uint without writing a response.
func parseIDRaw(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// httpStatus maps the error taxonomy to HTTP codes in exactly one place.
func httpStatus(err *apierror.Error) int {
	switch err.Kind {
	case apierror.KindValidation:
		return http.StatusBadRequest
	case apierror.KindNotFound:
		return http.StatusNotFound
	case apierror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Two response envelope families coexist: the orden/despacho/notificacion
// handlers use {status, message, data} while producto/venta/cotizacion use
// {success, message, data}. Both shapes predate this service and the web
// clients consume each literally, so neither is unified.

// respondStatus writes the {status, message, data} envelope.
func respondStatus(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"status": "Success", "message": message, "data": data})
}

// errorStatus writes the error variant of the {status, message, data} family.
func errorStatus(c *gin.Context, err error) {
	e := apierror.From(err)
	logInternal(c, e)
	c.JSON(httpStatus(e), gin.H{"status": "Error", "message": e.Message, "data": nil})
}

// respondSuccess writes the {success, message, data} envelope.
func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"success": true, "message": message, "data": data})
}

// errorSuccess writes the error variant of the {success, message, data} family.
func errorSuccess(c *gin.Context, err error) {
	e := apierror.From(err)
	logInternal(c, e)
	c.JSON(httpStatus(e), gin.H{"success": false, "message": e.Message, "data": nil})
}

// logInternal records the wrapped cause of 500s server-side; the client only
// ever sees the generic Spanish message.
func logInternal(c *gin.Context, e *apierror.Error) {
	if e.Kind != apierror.KindInternal {
		return
	}
	log.Error().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.FullPath()).
		Err(e).
		Msg("internal error")
}
