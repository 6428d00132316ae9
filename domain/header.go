package domain

import (
	"net/http"
	"net/textproto"
	"sort"
)

// Header is an ordered, case-insensitive string-keyed header map. Callers
// hand the pipeline headers in whatever shape their code produces
// (http.Header, plain map, pair slice); the constructors below normalize all
// of them into this one abstraction before any merging happens.
type Header struct {
	keys   []string
	values map[string]string
}

// NewHeader returns an empty header map
func NewHeader() Header {
	return Header{values: make(map[string]string)}
}

// HeaderFromHTTP normalizes a stdlib http.Header. Multi-valued entries keep
// their first value; iteration order follows http.Header's canonical keys
// sorted for determinism.
func HeaderFromHTTP(h http.Header) Header {
	out := NewHeader()
	for _, key := range sortedKeys(h) {
		if vals := h[key]; len(vals) > 0 {
			out.Set(key, vals[0])
		}
	}
	return out
}

// HeaderFromMap normalizes a plain string map, sorted by key for
// deterministic order.
func HeaderFromMap(m map[string]string) Header {
	out := NewHeader()
	for _, key := range sortedMapKeys(m) {
		out.Set(key, m[key])
	}
	return out
}

// HeaderFromPairs normalizes a slice of key/value pairs, preserving order.
// A repeated key overwrites in place.
func HeaderFromPairs(pairs [][2]string) Header {
	out := NewHeader()
	for _, p := range pairs {
		out.Set(p[0], p[1])
	}
	return out
}

// Set stores value under the canonical form of key, preserving the position
// of the first insertion.
func (h *Header) Set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	canon := textproto.CanonicalMIMEHeaderKey(key)
	if _, exists := h.values[canon]; !exists {
		h.keys = append(h.keys, canon)
	}
	h.values[canon] = value
}

// Get returns the value for key, or "" when absent
func (h Header) Get(key string) string {
	return h.values[textproto.CanonicalMIMEHeaderKey(key)]
}

// Has reports whether key is present
func (h Header) Has(key string) bool {
	_, ok := h.values[textproto.CanonicalMIMEHeaderKey(key)]
	return ok
}

// Del removes key if present
func (h *Header) Del(key string) {
	canon := textproto.CanonicalMIMEHeaderKey(key)
	if _, ok := h.values[canon]; !ok {
		return
	}
	delete(h.values, canon)
	for i, k := range h.keys {
		if k == canon {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries
func (h Header) Len() int {
	return len(h.keys)
}

// Each calls fn for every entry in insertion order
func (h Header) Each(fn func(key, value string)) {
	for _, k := range h.keys {
		fn(k, h.values[k])
	}
}

// Clone returns an independent copy
func (h Header) Clone() Header {
	out := NewHeader()
	h.Each(out.Set)
	return out
}

func sortedKeys(h http.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
