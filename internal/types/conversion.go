package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/go-viper/mapstructure/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

var decimalType = reflect.TypeOf(decimal.Decimal{})

// ToStruct converts a map[string]interface{} to a typed struct
// Completely stateless - just give it a value and it returns the typed struct
func ToStruct[T any](value map[string]interface{}) (T, error) {
	var result T
	err := Decode(value, &result)
	return result, err
}

// Decode converts a map[string]interface{} into the struct out points to,
// matching keys against json tags with weak typing.
func Decode(value map[string]interface{}, out interface{}) error {
	if value == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true, // Allows type coercion (e.g., float64 to int)
		DecodeHook:       decimalHook,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create mapstructure decoder").
			Mark(ierr.ErrValidation)
	}

	if err := decoder.Decode(value); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to decode map to struct").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToMap converts a typed struct to map[string]interface{}
// Numbers are kept as json.Number so large identifiers survive the round trip.
func ToMap[T any](value T) (map[string]interface{}, error) {
	jsonBytes, err := jsonCodec.Marshal(value)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to marshal value to JSON").
			Mark(ierr.ErrValidation)
	}

	var result map[string]interface{}
	decoder := jsonCodec.NewDecoder(bytes.NewReader(jsonBytes))
	decoder.UseNumber()
	if err := decoder.Decode(&result); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal JSON to map").
			Mark(ierr.ErrValidation)
	}

	return result, nil
}

// Stringify renders a wire field value the way query strings and signatures expect it
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case decimal.Decimal:
		return v.String()
	case float64:
		return decimal.NewFromFloat(v).String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func decimalHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}

	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case fmt.Stringer:
		return decimal.NewFromString(v.String())
	}

	return data, nil
}
