package handler

import (
	"net/http"
	"reflect"

	"frtransportes/internal/apierror"
	"frtransportes/internal/middleware"
	"frtransportes/internal/model"
	"frtransportes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, max=100 work without panicking ("Bad field type decimal.Decimal").
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
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

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation → 422, state conflict → 409, not found → 404,
// cascade failure → 500, anything else → 400.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case service.IsStateConflict(err):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case service.IsCascadeFailure(err):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// atorFromClaims lifts the JWT claims into the service-layer actor.
func atorFromClaims(c *gin.Context) service.Ator {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	ator := service.Ator{ID: id, Rol: model.RolUsuario(claims.Rol)}
	if claims.PrestadorID != nil {
		if pid, err := uuid.Parse(*claims.PrestadorID); err == nil {
			ator.PrestadorID = &pid
		}
	}
	return ator
}
