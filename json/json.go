// Package json encodes and decodes JSON with jsoniter, filling `default`
// struct tags before every call.
package json

import (
	"io"

	"github.com/creasty/defaults"
	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Encoder writes JSON values to a stream.
type Encoder struct {
	*jsoniter.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		Encoder: api.NewEncoder(w),
	}
}

// Encode fills defaults on v, then encodes it.
func (e *Encoder) Encode(v any) error {
	if err := defaults.Set(v); err != nil {
		return err
	}
	return e.Encoder.Encode(v)
}

// Decoder reads JSON values from a stream.
type Decoder struct {
	*jsoniter.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		Decoder: api.NewDecoder(r),
	}
}

// Decode fills defaults on v, then decodes into it. Fields present in the
// input win over defaults.
func (d *Decoder) Decode(v any) error {
	if err := defaults.Set(v); err != nil {
		return err
	}
	return d.Decoder.Decode(v)
}

// Marshal fills defaults on v and returns its JSON encoding.
func Marshal(v any) ([]byte, error) {
	if err := defaults.Set(v); err != nil {
		return nil, err
	}
	return api.Marshal(v)
}

// MarshalIndent is Marshal with indented output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	if err := defaults.Set(v); err != nil {
		return nil, err
	}
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal fills defaults on v, then decodes data into it.
func Unmarshal(data []byte, v any) error {
	if err := defaults.Set(v); err != nil {
		return err
	}
	return api.Unmarshal(data, v)
}
