package scene

import "github.com/spaghettifunk/anima/engine/math"

// MetadataEntry values are one of bool, int32, uint64, float32, float64,
// string, math.Vec3, Metadata, int64 or uint32.
type MetadataEntry struct {
	Key   string
	Value interface{}
}

// Metadata is an ordered list of key-value pairs attached to a scene or node.
type Metadata []MetadataEntry

func (md Metadata) Get(key string) (interface{}, bool) {
	for _, e := range md {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (md Metadata) GetBool(key string) (bool, bool) {
	v, ok := md.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (md Metadata) GetString(key string) (string, bool) {
	v, ok := md.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt widens any of the integer value kinds to int64.
func (md Metadata) GetInt(key string) (int64, bool) {
	v, ok := md.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

// GetFloat widens float32 and float64 values.
func (md Metadata) GetFloat(key string) (float64, bool) {
	v, ok := md.Get(key)
	if !ok {
		return 0, false
	}
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

func (md Metadata) GetVec3(key string) (math.Vec3, bool) {
	v, ok := md.Get(key)
	if !ok {
		return math.Vec3{}, false
	}
	vec, ok := v.(math.Vec3)
	return vec, ok
}
