// Package compress provides the body codecs used by the fetch client to undo
// Content-Encoding on responses where Accept-Encoding was set explicitly.
package compress

type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}
