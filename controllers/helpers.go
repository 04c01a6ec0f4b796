package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/tuonghuynh11/HealthAppAPI/middlewares"
	"github.com/tuonghuynh11/HealthAppAPI/services"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidation makes validation errors report json/form field names.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "eqfield":
		return "must match " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "numeric":
		return "must be numeric"
	case "alphanum":
		return "must contain only letters and digits"
	}
	return "is invalid"
}

// bindError turns a binding failure into the 422 aggregate.
func bindError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		out := make(map[string]string, len(ves))
		for _, fe := range ves {
			field := fe.Namespace()
			if i := strings.IndexByte(field, '.'); i >= 0 {
				field = field[i+1:]
			}
			out[field] = reason(fe)
		}
		return &utils.ValidationError{Errors: out}
	}
	return &utils.ValidationError{Errors: map[string]string{"body": err.Error()}}
}

func caller(c *gin.Context) utils.Caller { return middlewares.CallerFrom(c) }

// idParam reads a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, &utils.ValidationError{Errors: map[string]string{name: "must be a positive integer"}}
	}
	return uint(v), nil
}

func respond(c *gin.Context, status int, msg string, result any) {
	body := gin.H{"message": msg}
	if result != nil {
		body["result"] = result
	}
	c.JSON(status, body)
}

func ok(c *gin.Context, msg string, result any) { respond(c, http.StatusOK, msg, result) }

func created(c *gin.Context, msg string, result any) { respond(c, http.StatusCreated, msg, result) }

// paged renders a page as {<key>: items, page, limit, total_items, total_pages}.
func paged[T any](c *gin.Context, msg, key string, p *services.Page[T]) {
	ok(c, msg, gin.H{
		key:           p.Items,
		"page":        p.Page,
		"limit":       p.Limit,
		"total_items": p.TotalItems,
		"total_pages": p.TotalPages,
	})
}

func bindQuery(c *gin.Context, q any) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		c.Error(bindError(err))
		return false
	}
	return true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(bindError(err))
		return false
	}
	return true
}

