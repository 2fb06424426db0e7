package store

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// sentinelKey is the fixed canonical key substituted when a key cannot be
// turned into a string. Canonicalization never fails: Set/Get/Has stay total
// functions of their arguments even for unprintable keys.
const sentinelKey = "__unresolvable_key__"

// resolveKey converts any caller-supplied key into the canonical string used
// by the entry table. Pure with respect to the table except the handle
// branch, which reads the registry under the store guard. A typed-nil handle
// resolves like a nil key; resolution never panics.
func (s *Store) resolveKey(key any) string {
	if h, ok := key.(*Handle); ok {
		if h == nil {
			return stringValue(nil)
		}
		return s.handles.canonical(h)
	}
	return stringValue(key)
}

// stringValue is the registry-free canonicalization. The formatting rules
// become part of the key namespace and must stay stable:
//
//   - nil resolves to the empty string
//   - strings are used verbatim
//   - bools format as "true"/"false"
//   - integers format in base 10
//   - floats use strconv.FormatFloat with the 'g' verb and minimal digits
//   - fmt.Stringer values use String(), recovering from panics
//   - anything else uses its canonical JSON encoding
//
// Note that primitives share the namespace with plain string keys: the int
// key 1 and the string key "1" address the same entry.
func stringValue(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return k
	case bool:
		return strconv.FormatBool(k)
	case int:
		return strconv.FormatInt(int64(k), 10)
	case int8:
		return strconv.FormatInt(int64(k), 10)
	case int16:
		return strconv.FormatInt(int64(k), 10)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint:
		return strconv.FormatUint(uint64(k), 10)
	case uint8:
		return strconv.FormatUint(uint64(k), 10)
	case uint16:
		return strconv.FormatUint(uint64(k), 10)
	case uint32:
		return strconv.FormatUint(uint64(k), 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case float32:
		return strconv.FormatFloat(float64(k), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	case fmt.Stringer:
		return safeString(k)
	default:
		return stringify(key)
	}
}

// safeString calls String(), degrading to the sentinel key if it panics.
func safeString(v fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = sentinelKey
		}
	}()
	return v.String()
}

// stringify serializes composite keys deterministically. encoding/json sorts
// map keys, so structurally equal maps resolve to the same canonical key.
// Serialization failures degrade to the sentinel key.
func stringify(key any) string {
	data, err := json.Marshal(key)
	if err != nil {
		return sentinelKey
	}
	return string(data)
}
