package mcp

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/mvp-joe/runcount/internal/runs"
)

// bindArguments decodes MCP tool arguments into target. Clients send numbers
// as float64 and sometimes as strings, so integer fields accept both. A
// fractional value, or a float64 at or beyond 2^53 where JSON decoding may
// already have rounded it, is rejected instead of truncated; larger n must
// be sent as a string.
func bindArguments(args map[string]interface{}, target interface{}, required ...string) error {
	for _, key := range required {
		if _, ok := args[key]; !ok {
			return fmt.Errorf("%s parameter is required", key)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       integerHook,
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create argument decoder: %w", err)
	}

	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// maxExactInteger is the largest integer a float64 holds without rounding
// its neighbour onto it (2^53 - 1).
const maxExactInteger = 1<<53 - 1

func integerHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Int64 {
		return data, nil
	}

	switch v := data.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %v", runs.ErrNotInteger, v)
		}
		// 2^53 and above may already have been rounded by the JSON decoder
		if math.Abs(v) > maxExactInteger {
			return nil, fmt.Errorf("%w: %v exceeds exact JSON number range; pass n as a string", runs.ErrOverflow, v)
		}
		return int64(v), nil
	case string:
		return runs.Parse(v)
	}
	return data, nil
}
