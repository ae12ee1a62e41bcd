package qr

import (
	"bytes"
	"encoding/json"
	"strings"
)

type field struct {
	key   string
	value string
}

// Payload is an ordered key/value list that serializes to compact JSON
// with stable key order. Non-ASCII runes are written as-is, matching the
// text a scanner is expected to read back.
type Payload struct {
	fields []field
}

func NewPayload() *Payload {
	return &Payload{}
}

// Add appends a key/value pair, keeping insertion order.
func (p *Payload) Add(key, value string) *Payload {
	p.fields = append(p.fields, field{key: key, value: value})
	return p
}

func (p *Payload) Len() int {
	return len(p.fields)
}

// Encode renders the payload as a compact JSON object.
func (p *Payload) Encode() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range p.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(jsonString(f.key))
		b.WriteByte(':')
		b.Write(jsonString(f.value))
	}
	b.WriteByte('}')
	return b.String()
}

func jsonString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encode on a plain string cannot fail.
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}
