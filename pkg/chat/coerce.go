package chat

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Rendering here follows how browser and Node clients stringify the same
// values, since the prompt text is compared against what they would send.

const (
	undefinedText = "undefined"
	objectText    = "[object Object]"
)

// truthy reports whether raw counts as present: null, false, 0, "" and an
// absent value do not.
func truthy(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	if len(s) == 0 {
		return false
	}

	switch s[0] {
	case 'n', 'f':
		return false
	case 't', '{', '[':
		return true
	case '"':
		var str string
		if err := json.Unmarshal(s, &str); err != nil {
			return false
		}
		return str != ""
	default:
		f, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			// out-of-range literals are non-zero
			return true
		}
		return f != 0
	}
}

// textOf renders a JSON value the way string interpolation would: strings
// bare, numbers in shortest form, objects as "[object Object]" and arrays as
// their elements joined by commas.
func textOf(raw json.RawMessage) string {
	s := bytes.TrimSpace(raw)
	if len(s) == 0 {
		return undefinedText
	}

	switch s[0] {
	case '"':
		var str string
		if err := json.Unmarshal(s, &str); err != nil {
			return string(s)
		}
		return str
	case 'n':
		return "null"
	case 't':
		return "true"
	case 'f':
		return "false"
	case '{':
		return objectText
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(s, &elems); err != nil {
			return string(s)
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			// null elements join as empty
			if e = bytes.TrimSpace(e); len(e) > 0 && e[0] != 'n' {
				parts[i] = textOf(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return numberText(string(s))
	}
}

// numberText formats a JSON number literal using the shortest round-trip
// digits, switching to exponent form outside [1e-7, 1e21).
func numberText(lit string) string {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return lit
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f < 0:
		return "-" + numberText(strconv.FormatFloat(-f, 'g', -1, 64))
	}

	// d.ddde±x
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mant, ".", "", 1)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}

	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	out := digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	return out + "e" + sign + strconv.Itoa(exp)
}

// arrayIndex reports whether key is a canonical array index, which object
// key enumeration lists first in ascending numeric order.
func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}
