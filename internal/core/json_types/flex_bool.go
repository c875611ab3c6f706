package json_types

import (
	"strconv"
	"strings"
)

// FlexBool decodes a boolean field that the salon API has been observed to
// send as a real boolean, a number, or a string ("true", "1", "available",
// ...). Unknown string values decode to false so that a malformed flag can
// never mark a slot bookable.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	str := string(data)

	switch str {
	case "true", "1":
		*b = true
		return nil
	case "false", "0", "null":
		*b = false
		return nil
	}

	unquoted, err := strconv.Unquote(str)
	if err != nil {
		*b = false
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(unquoted)) {
	case "true", "1", "yes", "y", "available", "free":
		*b = true
	default:
		*b = false
	}
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

func (b FlexBool) Bool() bool {
	return bool(b)
}
