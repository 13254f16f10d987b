// Package sumfile renders and parses sha256sum checksum lines.
package sumfile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"sha256sum/internal/sha256"
)

// ErrMalformedLine reports a line that is not a SHA-256 checksum line.
var ErrMalformedLine = errors.New("improperly formatted checksum line")

// Style selects the checksum line layout.
type Style int

const (
	// StyleGNU is "<hex>  <name>", or "<hex> *<name>" for binary entries.
	StyleGNU Style = iota
	// StyleTag is the BSD "SHA256 (<name>) = <hex>" layout.
	StyleTag
)

const tagPrefix = "SHA256 ("

// Entry is one file digest.
type Entry struct {
	Digest [sha256.Size]byte
	Name   string
	Binary bool
}

// Hex returns the lowercase hex digest.
func (e Entry) Hex() string { return hex.EncodeToString(e.Digest[:]) }

var escaper = strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")

// EscapeName escapes backslashes, newlines and carriage returns in name so it
// fits on one line. It reports whether anything was escaped; such lines are
// prefixed with a backslash.
func EscapeName(name string) (string, bool) {
	if !strings.ContainsAny(name, "\\\n\r") {
		return name, false
	}
	return escaper.Replace(name), true
}

// Format renders e as a newline-terminated checksum line. Names containing a
// backslash, newline or carriage return are escaped and the line is prefixed
// with a backslash so that Parse can recover them.
func Format(e Entry, style Style) string {
	name, escaped := EscapeName(e.Name)
	prefix := ""
	if escaped {
		prefix = "\\"
	}
	if style == StyleTag {
		return fmt.Sprintf("%s%s%s) = %s\n", prefix, tagPrefix, name, e.Hex())
	}
	marker := " "
	if e.Binary {
		marker = "*"
	}
	return fmt.Sprintf("%s%s %s%s\n", prefix, e.Hex(), marker, name)
}

// Parse decodes one checksum line in either style. A trailing newline or
// carriage return is ignored.
func Parse(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	escaped := strings.HasPrefix(line, "\\")
	if escaped {
		line = line[1:]
	}

	var e Entry
	var digest, name string
	if strings.HasPrefix(line, tagPrefix) {
		i := strings.LastIndex(line, ") = ")
		if i < len(tagPrefix) {
			return Entry{}, ErrMalformedLine
		}
		name, digest = line[len(tagPrefix):i], line[i+len(") = "):]
	} else {
		const n = 2 * sha256.Size
		if len(line) < n+3 || line[n] != ' ' {
			return Entry{}, ErrMalformedLine
		}
		switch line[n+1] {
		case ' ':
		case '*':
			e.Binary = true
		default:
			return Entry{}, ErrMalformedLine
		}
		digest, name = line[:n], line[n+2:]
	}

	if len(digest) != 2*sha256.Size || name == "" {
		return Entry{}, ErrMalformedLine
	}
	if _, err := hex.Decode(e.Digest[:], []byte(digest)); err != nil {
		return Entry{}, ErrMalformedLine
	}
	if escaped {
		var ok bool
		if name, ok = unescape(name); !ok {
			return Entry{}, ErrMalformedLine
		}
	}
	e.Name = name
	return e, nil
}

func unescape(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			return "", false
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", false
		}
	}
	return b.String(), true
}
