package reqbuild

import (
	"strings"
)

const upperhex = "0123456789ABCDEF"

// EncodeQuery percent-encodes params into application/x-www-form-urlencoded
// form: name=value pairs joined with "&", names in sorted order, values most
// recent first within a name. Spaces encode as %20 (never "+") and escape
// digits are uppercase. The same encoding serves GET query strings and
// urlencoded POST bodies.
func EncodeQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	var sb strings.Builder
	first := true
	for _, name := range sortedKeys(params) {
		for _, value := range params[name] {
			if !first {
				sb.WriteByte('&')
			}
			first = false
			sb.WriteString(escape(name))
			sb.WriteByte('=')
			sb.WriteString(escape(value))
		}
	}
	return sb.String()
}

// escape percent-encodes every byte outside the unreserved set
// (alphanumerics plus "-_.~").
func escape(s string) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0x0F])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}
