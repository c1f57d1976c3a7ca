package linkstation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is an undecoded request body.
type Payload []byte

type valueKind int

const (
	kindEmpty valueKind = iota // no keys: absent, null, {}, [], "", numbers, booleans
	kindObject
	kindArray
	kindString
	kindInvalid
)

// classify reports the shape of a raw JSON value. Objects and arrays are
// returned decoded one level deep with their members kept raw.
func classify(raw []byte) (valueKind, map[string]json.RawMessage, []json.RawMessage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return kindEmpty, nil, nil
	}
	switch raw[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return kindInvalid, nil, nil
		}
		if len(obj) == 0 {
			return kindEmpty, nil, nil
		}
		return kindObject, obj, nil
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return kindInvalid, nil, nil
		}
		if len(arr) == 0 {
			return kindEmpty, nil, nil
		}
		return kindArray, nil, arr
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return kindInvalid, nil, nil
		}
		if s == "" {
			return kindEmpty, nil, nil
		}
		return kindString, nil, nil
	}
	if !json.Valid(raw) {
		return kindInvalid, nil, nil
	}
	return kindEmpty, nil, nil
}

// number decodes raw as a JSON number. Strings, null, booleans and composite
// values are rejected, as are numbers outside the float64 range.
func number(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func numericFields(raw json.RawMessage, names ...string) ([]float64, bool) {
	kind, obj, _ := classify(raw)
	if kind != kindObject {
		return nil, false
	}
	out := make([]float64, len(names))
	for i, n := range names {
		v, present := obj[n]
		if !present {
			return nil, false
		}
		f, ok := number(v)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// ParseDevicePoint reports whether raw is an object with numeric x and y.
func ParseDevicePoint(raw json.RawMessage) (DevicePoint, bool) {
	v, ok := numericFields(raw, "x", "y")
	if !ok {
		return DevicePoint{}, false
	}
	return DevicePoint{X: v[0], Y: v[1]}, true
}

// ParseLinkStationPoint reports whether raw is an object with numeric x, y
// and r.
func ParseLinkStationPoint(raw json.RawMessage) (LinkStationPoint, bool) {
	v, ok := numericFields(raw, "x", "y", "r")
	if !ok {
		return LinkStationPoint{}, false
	}
	return LinkStationPoint{X: v[0], Y: v[1], R: v[2]}, true
}

// render returns the compact JSON text of raw with its key order kept.
// Numbers are rewritten in their shortest form, so 1.0 renders as 1 and 1e2
// as 100.
func render(raw json.RawMessage) string {
	var b strings.Builder
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := renderValue(&b, dec); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return b.String()
}

func renderValue(b *strings.Builder, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		b.WriteRune(rune(t))
		for i := 0; dec.More(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if t == '{' {
				key, err := dec.Token()
				if err != nil {
					return err
				}
				renderString(b, key.(string))
				b.WriteByte(':')
			}
			if err := renderValue(b, dec); err != nil {
				return err
			}
		}
		end, err := dec.Token()
		if err != nil {
			return err
		}
		b.WriteRune(rune(end.(json.Delim)))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			b.WriteString(t.String())
			return nil
		}
		b.WriteString(FormatNumber(f))
	case string:
		renderString(b, t)
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case nil:
		b.WriteString("null")
	}
	return nil
}

func renderString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}
