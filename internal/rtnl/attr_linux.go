//go:build linux

package rtnl

import (
	"grimm.is/pflask/internal/errors"
)

// Attr is one decoded TLV attribute.
type Attr struct {
	Type uint16
	// Len is the recorded length, header included, padding excluded.
	Len   uint16
	Value []byte
}

// ParseAttrs decodes a stream of attributes, such as the bytes following the
// interface-info header or the value of a nested attribute. Trailing bytes
// shorter than an attribute header are reported as unparsed.
func ParseAttrs(b []byte) ([]Attr, error) {
	var attrs []Attr
	for i := 0; i < len(b); {
		if len(b)-i < attrHeaderLen {
			return attrs, errors.Errorf(errors.KindInternal, "%d unparsed bytes at offset %d", len(b)-i, i)
		}
		l := int(native.Uint16(b[i:]))
		if l < attrHeaderLen || i+l > len(b) {
			return attrs, errors.Errorf(errors.KindInternal, "attribute at offset %d has bad length %d", i, l)
		}
		attrs = append(attrs, Attr{
			Type:  native.Uint16(b[i+2:]),
			Len:   uint16(l),
			Value: b[i+attrHeaderLen : i+l],
		})
		next := i + align(l)
		if next > len(b) {
			next = len(b)
		}
		i = next
	}
	return attrs, nil
}

// String returns the value with a trailing NUL removed.
func (a Attr) String() string {
	v := a.Value
	if n := len(v); n > 0 && v[n-1] == 0 {
		v = v[:n-1]
	}
	return string(v)
}

// Uint32 returns the value as a host byte order 32-bit integer.
func (a Attr) Uint32() uint32 {
	if len(a.Value) < 4 {
		return 0
	}
	return native.Uint32(a.Value)
}
