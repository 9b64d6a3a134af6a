package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/parsguard/vpn-portal/middleware"
	"github.com/parsguard/vpn-portal/utils"
)

// Report validation failures under the wire names from the json tags, not the
// Go struct field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	}
}

// bindJSON decodes and validates a request body. On failure it writes the 400
// response (a field-error list when validation failed, a generic message for
// malformed JSON) and returns false.
func bindJSON(ctx *gin.Context, dst interface{}) bool {
	err := ctx.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		utils.FieldErrors(ctx, translateValidationErrors(verrs))
		return false
	}
	utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
	return false
}

// bindPatch decodes and validates a partial-update body like bindJSON, and
// additionally returns the raw top-level keys so callers can tell an explicit
// JSON null (clear the column) apart from an omitted field (leave it alone).
func bindPatch(ctx *gin.Context, dst interface{}) (map[string]json.RawMessage, bool) {
	raw, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	if err := binding.JSON.BindBody(raw, dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.FieldErrors(ctx, translateValidationErrors(verrs))
			return nil, false
		}
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	return present, true
}

// sentNull reports whether the key was sent as an explicit JSON null.
func sentNull(present map[string]json.RawMessage, key string) bool {
	v, ok := present[key]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func translateValidationErrors(verrs validator.ValidationErrors) []utils.FieldError {
	out := make([]utils.FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, utils.FieldError{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return out
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(e.Param()), ", ")
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return "is invalid"
	}
}

// parseIDParam reads the :id path parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(ctx.Param("id")), 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// respondCached serves a cached JSON body when present.
func respondCached(ctx *gin.Context, key string) bool {
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return true
	}
	return false
}

// cacheAndRespond writes the payload and stores its JSON encoding for
// subsequent cache hits. Caching is best-effort.
func cacheAndRespond(ctx *gin.Context, key string, payload interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		utils.OK(ctx, payload)
		return
	}
	utils.CacheSetBytes(key, b, time.Hour)
	ctx.Data(http.StatusOK, "application/json", b)
}

// currentAdminID reads the authenticated admin id placed by the auth guard.
func currentAdminID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextAdminIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
