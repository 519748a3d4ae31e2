package databases

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies a Document into the struct pointed to by out using the
// mapstructure tags on the model. Numeric types are converted weakly since
// drivers disagree on integer widths (int32, int64) and some return []byte for text.
func Decode(doc Document, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook:       bytesToStringHook,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// bytesToStringHook turns []byte driver values into strings before they are
// assigned to string fields.
func bytesToStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if b, ok := data.([]byte); ok && to.Kind() == reflect.String {
		return string(b), nil
	}
	return data, nil
}
