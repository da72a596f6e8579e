package output

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// runQuery compiles a jq expression and encodes every value it yields
// for data. Both JSON and NDJSON filtering go through here.
func runQuery(enc *json.Encoder, query string, data interface{}) error {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	input, err := normalizeForQuery(data)
	if err != nil {
		return err
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if qerr, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %w", qerr)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
}

// normalizeForQuery round-trips data through JSON so gojq sees only
// the value types it accepts (maps, slices, and scalars).
func normalizeForQuery(data interface{}) (interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
