package schema

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// NormalizeID converts a driver or user supplied value into the canonical
// Go value of the ID type: int64, string or uuid.UUID. Canonical values are
// comparable, so they can key ID sets.
func NormalizeID(t IDType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case IDInt, "":
		return toInt64(v)
	case IDString:
		switch v := v.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case fmt.Stringer:
			return v.String(), nil
		}
		return fmt.Sprint(v), nil
	case IDUUID:
		switch v := v.(type) {
		case uuid.UUID:
			return v, nil
		case string:
			return uuid.Parse(v)
		case []byte:
			if len(v) == 16 {
				return uuid.FromBytes(v)
			}
			return uuid.ParseBytes(v)
		}
		return nil, fmt.Errorf("schema: cannot convert %T to uuid", v)
	}
	return nil, fmt.Errorf("schema: unknown id type %q", t)
}

func toInt64(v any) (any, error) {
	switch v := v.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v)
	case uint:
		return uintToInt64(uint64(v))
	case float64:
		if v != float64(int64(v)) {
			return nil, fmt.Errorf("schema: %v is not an integer id", v)
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	}
	return nil, fmt.Errorf("schema: cannot convert %T to an integer id", v)
}

func uintToInt64(v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("schema: id %d overflows int64", v)
	}
	return int64(v), nil
}
