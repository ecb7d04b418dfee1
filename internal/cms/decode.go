package cms

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"regadmin/dashboard/internal/docstore"
)

func str(doc docstore.Document, key string) string {
	switch v := doc[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// flag accepts booleans plus the "true"/"1" strings and non-zero numbers
// that older writers stored.
func flag(doc docstore.Document, key string) bool {
	switch v := doc[key].(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	case nil:
		return false
	default:
		n, ok := toFloat(v)
		return ok && n != 0
	}
}

func number(doc docstore.Document, key string) float64 {
	n, _ := toFloat(doc[key])
	return n
}

func integer(doc docstore.Document, key string) int {
	n, ok := toFloat(doc[key])
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return 0
	}
	return int(n)
}

func toFloat(value interface{}) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
