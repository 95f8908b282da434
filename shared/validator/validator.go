package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	rules := map[string]val.Func{
		"dateonly":    isDateOnly,
		"mimetypes":   hasMimeType,
		"maxfilesize": fitsFileSize,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

func isDateOnly(fl val.FieldLevel) bool {
	_, err := time.Parse(constant.DateOnlyFormat, fl.Field().String())

	return err == nil
}

// hasMimeType accepts an uploaded file or a "data:<type>;base64," URI whose media type is listed in the param.
func hasMimeType(fl val.FieldLevel) bool {
	var contentType string

	switch v := fl.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = v.Header.Get(constant.RequestHeaderContentType)
	case *multipart.FileHeader:
		contentType = v.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = dataURIContentType(v)
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(fl.Param()), contentType)
}

func dataURIContentType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}

	contentType, _, found := strings.Cut(rest, ";base64,")
	if !found {
		return ""
	}

	return contentType
}

// fitsFileSize compares the upload, or the encoded string, against a limit in megabytes.
func fitsFileSize(fl val.FieldLevel) bool {
	maxMB, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	var size int64

	switch v := fl.Field().Interface().(type) {
	case multipart.FileHeader:
		size = v.Size
	case *multipart.FileHeader:
		size = v.Size
	case string:
		size = int64(len(v))
	}

	return float64(size) <= maxMB*bytesPerMB
}

// Validate decodes a JSON body into data and validates it. Both failures are BadRequest.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
