// Package codec centralizes the encoding of cached artifacts.
//
// Persisted artifacts are opaque to callers, but their byte layout is a
// compatibility boundary: changing codecs invalidates previously written
// blobs. Artifact names therefore embed the codec name, so a cache written
// with one codec is simply missed, never misread, by another.
package codec

// Codec encodes and decodes values. Implementations must be safe for
// concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}
