// Package timestamp resolves the many shapes a stored timestamp can take
// into either a concrete instant or an explicit absence.
package timestamp

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instant is an optional point in time. The zero value is absent.
type Instant struct {
	Time  time.Time
	Valid bool
}

func Of(t time.Time) Instant {
	if t.IsZero() {
		return Instant{}
	}
	return Instant{Time: t.UTC(), Valid: true}
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Time.UTC().Format(time.RFC3339Nano))
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = Instant{}
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*i = Instant{}
		return nil
	}
	*i = Parse(raw)
	return nil
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse accepts a native time, a Mongo date or timestamp, a
// seconds/nanoseconds pair (as a map or an ordered bson document), an
// ISO-8601 string, or a Unix-millisecond number. Anything else, including
// nil and malformed input, resolves to an absent Instant.
func Parse(raw interface{}) Instant {
	switch v := raw.(type) {
	case nil:
		return Instant{}
	case Instant:
		return v
	case *Instant:
		if v == nil {
			return Instant{}
		}
		return *v
	case time.Time:
		return Of(v)
	case *time.Time:
		if v == nil {
			return Instant{}
		}
		return Of(*v)
	case primitive.DateTime:
		return Of(v.Time())
	case primitive.Timestamp:
		if v.T == 0 {
			return Instant{}
		}
		return Of(time.Unix(int64(v.T), 0))
	case string:
		return parseString(v)
	case bson.M:
		return parsePair(map[string]interface{}(v))
	case map[string]interface{}:
		return parsePair(v)
	case bson.D:
		return parsePair(v.Map())
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return fromMillis(ms)
		}
		if f, err := v.Float64(); err == nil {
			return fromMillisFloat(f)
		}
		return Instant{}
	case int64:
		return fromMillis(v)
	case int32:
		return fromMillis(int64(v))
	case int:
		return fromMillis(int64(v))
	case float64:
		return fromMillisFloat(v)
	default:
		return Instant{}
	}
}

func parseString(value string) Instant {
	value = strings.TrimSpace(value)
	if value == "" {
		return Instant{}
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Of(parsed)
		}
	}
	return Instant{}
}

func parsePair(doc map[string]interface{}) Instant {
	seconds, ok := pairField(doc, "seconds", "_seconds")
	if !ok {
		return Instant{}
	}
	nanos, ok := pairField(doc, "nanoseconds", "_nanoseconds")
	if !ok {
		nanos = 0
	}
	if nanos < 0 || nanos >= int64(time.Second) {
		return Instant{}
	}
	return Of(time.Unix(seconds, nanos))
}

func pairField(doc map[string]interface{}, keys ...string) (int64, bool) {
	for _, key := range keys {
		if value, ok := doc[key]; ok {
			return toInt64(value)
		}
	}
	return 0, false
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func fromMillis(ms int64) Instant {
	if ms <= 0 {
		return Instant{}
	}
	return Of(time.UnixMilli(ms))
}

func fromMillisFloat(ms float64) Instant {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 || ms > math.MaxInt64 {
		return Instant{}
	}
	return fromMillis(int64(ms))
}
