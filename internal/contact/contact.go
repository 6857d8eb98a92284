package contact

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the format of Contact.Created: ISO-8601 local time with
// microseconds and no zone offset.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Contact is a single stored record. Field order matches the key order of
// the backing file.
type Contact struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Address string `json:"address" yaml:"address"`
	Created string `json:"created" yaml:"created"`
}

// CreatedAt parses Created. The zero time is returned for values that do
// not use TimeLayout.
func (c Contact) CreatedAt() time.Time {
	t, err := time.ParseInLocation(TimeLayout, c.Created, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Field names an updatable contact attribute.
type Field string

const (
	FieldName    Field = "name"
	FieldPhone   Field = "phone"
	FieldEmail   Field = "email"
	FieldAddress Field = "address"
)

// Fields lists the updatable fields in display order.
var Fields = []Field{FieldName, FieldPhone, FieldEmail, FieldAddress}

// Valid reports whether f is one of the updatable fields.
// id and created are deliberately absent.
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldPhone, FieldEmail, FieldAddress:
		return true
	}
	return false
}

// ParseField normalises s and returns the matching Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (must be name, phone, email or address)", ErrUnknownField, s)
	}
	return f, nil
}

// set overwrites the value of f. It reports false for fields that are not
// updatable.
func (c *Contact) set(f Field, value string) bool {
	switch f {
	case FieldName:
		c.Name = value
	case FieldPhone:
		c.Phone = value
	case FieldEmail:
		c.Email = value
	case FieldAddress:
		c.Address = value
	default:
		return false
	}
	return true
}

// Matches reports whether query occurs in the contact. Name and email are
// compared case-insensitively, phone as is.
func (c Contact) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(c.Phone, query) ||
		strings.Contains(strings.ToLower(c.Email), q)
}
