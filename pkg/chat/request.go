package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrUserQuestionRequired is returned by Validate when the question is
// missing or falsy (null, false, 0 or "").
var ErrUserQuestionRequired = errors.New("userQuestion is required")

// Request is the body of POST /api/chat.
type Request struct {
	// UserQuestion is the question as text. Non-string values are rendered
	// the way interpolation would, so 42 becomes "42" and [] becomes "".
	UserQuestion string

	// District is nil when districtData is absent or falsy
	// (null, false, 0 or "").
	District *District

	// questionSet marks a truthy userQuestion whose text may still be empty.
	questionSet bool
}

// District carries the air-quality snapshot for one Delhi district.
// Values are not validated and are rendered into the prompt verbatim.
type District struct {
	Name   Value  `json:"name"`
	AQI    Value  `json:"aqi"`
	Causes Causes `json:"causes"`
}

// Cause is a single pollution contributor and its percentage share.
type Cause struct {
	Name  string
	Share Value
}

// Causes is an ordered list of contributors.
type Causes []Cause

// Value is a JSON value kept in its original textual form.
type Value struct {
	raw json.RawMessage
}

// NewValue wraps raw JSON text.
func NewValue(raw string) Value {
	return Value{raw: json.RawMessage(strings.TrimSpace(raw))}
}

// IsZero reports whether the value was absent from the document.
func (v Value) IsZero() bool {
	return len(v.raw) == 0
}

// String renders the value as prompt text: strings without quotes, numbers
// in shortest form, objects as "[object Object]", arrays comma-joined and an
// absent value as "undefined".
func (v Value) String() string {
	return textOf(v.raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON decodes contributors in enumeration order: array-index keys
// ("0", "1", ...) first in ascending order, then the remaining keys in
// document order. A repeated key keeps its first position and takes the last
// value. Arrays enumerate by index and non-empty strings by character; any
// other value decodes to an empty list.
func (c *Causes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*c = nil
		return nil
	}

	switch data[0] {
	case '{':
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return fmt.Errorf("causes: %w", err)
		}
		out := make(Causes, 0, len(elems))
		for i, e := range elems {
			out = append(out, Cause{Name: fmt.Sprint(i), Share: NewValue(string(e))})
		}
		*c = out
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("causes: %w", err)
		}
		out := make(Causes, 0, utf8.RuneCountInString(s))
		i := 0
		for _, r := range s {
			quoted, _ := json.Marshal(string(r))
			out = append(out, Cause{Name: fmt.Sprint(i), Share: Value{raw: quoted}})
			i++
		}
		*c = out
		return nil
	default:
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("causes: %w", err)
	}

	var out Causes
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("causes: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("causes: unexpected key token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("causes[%s]: %w", key, err)
		}

		if i, seen := index[key]; seen {
			out[i].Share = NewValue(string(raw))
			continue
		}
		index[key] = len(out)
		out = append(out, Cause{Name: key, Share: NewValue(string(raw))})
	}

	sortIndexKeysFirst(out)
	*c = out
	return nil
}

// sortIndexKeysFirst moves array-index keys ahead of the others, ordered
// numerically. Non-index keys keep their relative order.
func sortIndexKeysFirst(c Causes) {
	sort.SliceStable(c, func(i, j int) bool {
		a, aIdx := arrayIndex(c[i].Name)
		b, bIdx := arrayIndex(c[j].Name)
		switch {
		case aIdx && bIdx:
			return a < b
		default:
			return aIdx && !bIdx
		}
	})
}

// MarshalJSON writes the contributors back as an object in their current order.
func (c Causes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cause := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cause.Name)
		if err != nil {
			return nil, err
		}
		val, err := cause.Share.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the contributors as "name: value%" pairs joined by ", ".
func (c Causes) String() string {
	parts := make([]string, 0, len(c))
	for _, cause := range c {
		parts = append(parts, fmt.Sprintf("%s: %s%%", cause.Name, cause.Share))
	}
	return strings.Join(parts, ", ")
}

// NameText returns the district name, or "undefined" when absent.
func (d *District) NameText() string {
	return d.Name.String()
}

// AQIText returns the AQI as sent, or "undefined" when absent.
func (d *District) AQIText() string {
	return d.AQI.String()
}

// UnmarshalJSON implements json.Unmarshaler. A body that is not a JSON object
// decodes to an empty request, which then fails validation.
func (r *Request) UnmarshalJSON(data []byte) error {
	*r = Request{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var raw struct {
		UserQuestion json.RawMessage `json:"userQuestion"`
		DistrictData json.RawMessage `json:"districtData"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	if truthy(raw.UserQuestion) {
		r.UserQuestion = textOf(raw.UserQuestion)
		r.questionSet = true
	}

	if truthy(raw.DistrictData) {
		d := &District{}
		if raw.DistrictData[0] == '{' {
			if err := json.Unmarshal(raw.DistrictData, d); err != nil {
				return fmt.Errorf("districtData: %w", err)
			}
		}
		r.District = d
	}

	return nil
}

// Validate checks that a question was supplied.
func (r Request) Validate() error {
	if r.UserQuestion == "" && !r.questionSet {
		return ErrUserQuestionRequired
	}
	return nil
}
