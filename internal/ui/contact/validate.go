package contact

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Field names as they appear in the form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Field error messages.
const (
	ErrMsgName    = "Please enter your name."
	ErrMsgEmail   = "Please enter a valid email."
	ErrMsgMessage = "Message must be at least 10 characters."
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

// emailPattern uses the browser's notion of whitespace: RE2 \s is ASCII
// only, so Unicode separators and the BOM are listed too.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// Draft holds the values typed into the contact form.
type Draft struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// Trimmed returns the draft with surrounding whitespace removed.
func (d Draft) Trimmed() Draft {
	return Draft{
		Name:    trim(d.Name),
		Email:   trim(d.Email),
		Message: trim(d.Message),
	}
}

func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\uFEFF'
	})
}

// textLen counts UTF-16 code units, the way the browser measures input.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// Empty reports whether every field is blank.
func (d Draft) Empty() bool {
	return d == Draft{}
}

// FieldErrors maps a field name to its error message.
type FieldErrors map[string]string

// OK reports whether there are no field errors.
func (e FieldErrors) OK() bool { return len(e) == 0 }

// ValidEmail is a structural check, not RFC validation.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks the trimmed draft and returns one error per failing field.
func Validate(d Draft) FieldErrors {
	d = d.Trimmed()
	errs := FieldErrors{}
	if textLen(d.Name) < minNameLen {
		errs[FieldName] = ErrMsgName
	}
	if !ValidEmail(d.Email) {
		errs[FieldEmail] = ErrMsgEmail
	}
	if textLen(d.Message) < minMessageLen {
		errs[FieldMessage] = ErrMsgMessage
	}
	return errs
}
