package transport

import (
	"bytes"
	"fmt"
	"strconv"
)

// Int is an integer request field that also accepts its value as a JSON
// string, so both {"stock":2} and {"stock":"2"} decode to 2.
type Int int

func (n *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("transport: int: %w", err)
		}
		s = unq
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("transport: int %q: %w", s, err)
	}
	*n = Int(v)
	return nil
}
