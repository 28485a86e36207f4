package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/freshroot/freshroot/logger"
	"github.com/go-playground/validator"
)

type Validator struct {
	validator                *validator.Validate
	logger                   logger.Logger
	tagValidationDetailsOnce sync.Once
	tagValidationDetailsMap  map[string]tagValidationDetails
}

type tagValidationDetails struct {
	validatorFunc validator.Func
	err           error
}

var sortKeys = map[string]struct{}{
	"distance":     {},
	"price_low":    {},
	"price_high":   {},
	"rating":       {},
	"newest":       {},
	"availability": {},
}

var deliveryMethods = map[string]struct{}{
	"pickup":        {},
	"home_delivery": {},
	"market":        {},
}

var freshnessTags = map[string]struct{}{
	"harvested_today": {},
	"this_week":       {},
	"always_fresh":    {},
}

func New(logger logger.Logger) (*Validator, error) {
	validator := &Validator{validator: validator.New(), logger: logger}
	validator.validator.RegisterTagNameFunc(useJSONFieldNames)
	if err := validator.registerCustomValidatorsForTags(); err != nil {
		return nil, err
	}

	return validator, nil
}

func (v *Validator) Validate(i any) error {

	if err := v.validator.Struct(i); err != nil {
		v.logger.Warn("validation failed", "err", err.Error())
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {

			tagValidationDetails, ok := v.getTagValidationDetails()[validationErrs[0].Tag()]
			if ok {
				return tagValidationDetails.err
			}

			switch validationErrs[0].Tag() {
			case "required":
				return fmt.Errorf("missing required field '%s'", validationErrs[0].Field())

			case "min", "max":
				return fmt.Errorf("value or length of field '%s' is not in the expected range", validationErrs[0].Field())

			}
		}
		return err
	}
	return nil
}

func (v *Validator) getTagValidationDetails() map[string]tagValidationDetails {
	v.tagValidationDetailsOnce.Do(func() {
		v.tagValidationDetailsMap = map[string]tagValidationDetails{
			"valid_query":     {validatorFunc: v.isValidQuery, err: errors.New("invalid query")},
			"valid_sort":      {validatorFunc: v.isValidSortKey, err: errors.New("invalid sort key")},
			"valid_delivery":  {validatorFunc: v.isValidDeliverySet, err: errors.New("invalid delivery method")},
			"valid_freshness": {validatorFunc: v.isValidFreshness, err: errors.New("invalid freshness tag")},
		}
	})
	return v.tagValidationDetailsMap
}

func (v *Validator) registerCustomValidatorsForTags() error {

	tagValidationDetailsMap := v.getTagValidationDetails()

	for tag, tagValidationDetails := range tagValidationDetailsMap {
		if err := v.validator.RegisterValidation(tag, tagValidationDetails.validatorFunc); err != nil {
			v.logger.Error("failed to register customer validator function", "err", err.Error())
			return err
		}
	}
	return nil
}

func useJSONFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func (v *Validator) isValidQuery(fl validator.FieldLevel) bool {
	query := fl.Field().String()
	if len(query) == 0 {
		return false
	}
	if strings.TrimSpace(query) == "" {
		v.logger.Warn("query is empty", "query", query)
		return false
	}

	return true
}

// isValidSortKey allows an empty sort key: an unspecified ranking degrades to
// identity order rather than rejecting the request.
func (v *Validator) isValidSortKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if len(key) == 0 {
		return true
	}
	_, ok := sortKeys[key]
	if !ok {
		v.logger.Warn("unknown sort key", "sort", key)
	}
	return ok
}

func (v *Validator) isValidDeliverySet(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		method := field.Index(i).String()
		if _, ok := deliveryMethods[method]; !ok {
			v.logger.Warn("unknown delivery method", "method", method)
			return false
		}
	}
	return true
}

func (v *Validator) isValidFreshness(fl validator.FieldLevel) bool {
	tag := fl.Field().String()
	if len(tag) == 0 {
		return true
	}
	_, ok := freshnessTags[tag]
	if !ok {
		v.logger.Warn("unknown freshness tag", "freshness", tag)
	}
	return ok
}
