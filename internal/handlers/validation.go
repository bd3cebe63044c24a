package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const nonFieldErrors = "non_field_errors"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// jsonFieldName reports struct fields by their JSON key.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// trimmer is implemented by requests whose string fields are trimmed before
// validation, so length rules apply to the stored value.
type trimmer interface {
	trim()
}

// bindJSON decodes the request body into req, trims it, then validates it.
// On failure it writes a 400 with per-field messages and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := decodeJSON(c, req)
	if err == nil {
		if t, ok := req.(trimmer); ok {
			t.trim()
		}
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		Respond(c, http.StatusBadRequest, "Invalid data", validationErrors(err))
		return false
	}
	return true
}

// decodeJSON is the decoding half of binding.JSON, without validation.
func decodeJSON(c *gin.Context, req interface{}) error {
	if c.Request == nil || c.Request.Body == nil {
		return errors.New("invalid request")
	}
	return json.NewDecoder(c.Request.Body).Decode(req)
}

// validationErrors converts a binding error into {"field": ["message", ...]}.
func validationErrors(err error) map[string][]string {
	out := make(map[string][]string)

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out[nonFieldErrors] = []string{"Malformed request body."}
		return out
	}

	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
