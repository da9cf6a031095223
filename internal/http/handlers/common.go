package handlers

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

	"bustracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// report json names in validation messages
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		RespondError(c, http.StatusBadRequest, "Request body is required.")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			RespondError(c, http.StatusBadRequest, validationMessage(verrs))
		case errors.Is(err, io.EOF):
			RespondError(c, http.StatusBadRequest, "Request body is required.")
		default:
			RespondError(c, http.StatusBadRequest, "Invalid request body.")
		}
		return false
	}
	return true
}

func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required.", e.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address.", e.Field()))
		case "gt":
			parts = append(parts, fmt.Sprintf("%s must be greater than %s.", e.Field(), e.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid.", e.Field()))
		}
	}
	return strings.Join(parts, " ")
}

// queryID parses a positive numeric query parameter. ok is false when absent or malformed.
func queryID(c *gin.Context, key string) (domain.ID, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return domain.ID(n), true
}

// optionalID decodes a form id field. null and blank strings leave it unset;
// a numeric 0 is kept as an explicit unassign.
type optionalID struct {
	ID  domain.ID
	Set bool
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = optionalID{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*o = optionalID{}
			return nil
		}
	}
	var id domain.ID
	if err := id.UnmarshalJSON(b); err != nil {
		return err
	}
	*o = optionalID{ID: id, Set: true}
	return nil
}

// Ptr returns nil when the field was absent or blank.
func (o optionalID) Ptr() *domain.ID {
	if !o.Set {
		return nil
	}
	id := o.ID
	return &id
}

// validEmail checks an already trimmed email; nil means the field is absent.
func validEmail(c *gin.Context, email *string) bool {
	if email == nil {
		return true
	}
	if err := validate.Var(*email, "email"); err != nil {
		RespondError(c, http.StatusBadRequest, "email must be a valid email address.")
		return false
	}
	return true
}
