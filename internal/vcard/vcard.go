// Package vcard encodes contact records as vCard 3.0 documents (RFC 2426).
package vcard

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smileynet/cardsmith/internal/contact"
)

// MIMEType is the media type of an encoded card.
const MIMEType = "text/vcard"

// FileSuffix ends every exported file name.
const FileSuffix = "_contact.vcf"

// maxLineOctets is the folding limit for content lines, excluding CRLF.
const maxLineOctets = 75

const crlf = "\r\n"

// property is one content line before escaping.
type property struct {
	name  string
	value string
}

// Encode serializes r as a vCard 3.0 document with CRLF line endings.
// Every value is escaped and long lines are folded. Invalid UTF-8 in a
// value is replaced with U+FFFD.
func Encode(r contact.Record) []byte {
	props := []property{
		{"FN", r.FullName},
		{"ORG", r.Company},
		{"TITLE", r.Designation},
		{"TEL;TYPE=CELL", r.Phone},
		{"EMAIL;TYPE=WORK", r.Email},
		{"URL", r.Socials.Website},
		{"NOTE", r.Tagline},
	}

	var buf bytes.Buffer
	buf.WriteString("BEGIN:VCARD" + crlf)
	buf.WriteString("VERSION:3.0" + crlf)
	for _, p := range props {
		writeFolded(&buf, p.name+":"+Escape(strings.ToValidUTF8(p.value, "\uFFFD")))
	}
	buf.WriteString("END:VCARD" + crlf)
	return buf.Bytes()
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
	",", `\,`,
	";", `\;`,
)

// Escape applies vCard text escaping: backslash, line breaks, comma and
// semicolon.
func Escape(s string) string {
	return escaper.Replace(s)
}

// writeFolded writes line to buf, folding it into chunks of at most
// maxLineOctets octets. Continuation lines start with a single space.
// Multi-byte runes are never split.
func writeFolded(buf *bytes.Buffer, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		buf.WriteString(line[:cut])
		buf.WriteString(crlf + " ")
		line = line[cut:]
		// The leading space counts toward the next line's length.
		limit = maxLineOctets - 1
	}
	buf.WriteString(line)
	buf.WriteString(crlf)
}

// Filename derives the export file name from a full name: each run of
// whitespace becomes one underscore and FileSuffix is appended.
// An empty name yields FileSuffix alone.
func Filename(fullName string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range fullName {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	b.WriteString(FileSuffix)
	return b.String()
}
