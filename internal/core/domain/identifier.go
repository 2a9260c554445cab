package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"wom-connector/pkg/apperror"
)

// Identifier is the id of a Registry entity (source, POS, voucher).
// Numeric and string origins are normalized to a canonical string at construction;
// equality and map keys use that string only.
type Identifier struct {
	id string
}

// NewIdentifier builds an Identifier from a non-blank string.
func NewIdentifier(id string) (Identifier, error) {
	if strings.TrimSpace(id) == "" {
		return Identifier{}, apperror.ErrInvalidArgument("identifier must not be empty")
	}
	return Identifier{id: id}, nil
}

// NewNumericIdentifier builds an Identifier from a non-negative integer.
func NewNumericIdentifier(id int64) (Identifier, error) {
	if id < 0 {
		return Identifier{}, apperror.ErrInvalidArgument(fmt.Sprintf("identifier must not be negative, got %d", id))
	}
	return Identifier{id: strconv.FormatInt(id, 10)}, nil
}

// MustIdentifier is NewIdentifier for literals; it panics on an empty id.
func MustIdentifier(id string) Identifier {
	ident, err := NewIdentifier(id)
	if err != nil {
		panic(err)
	}
	return ident
}

// String returns the canonical form.
func (i Identifier) String() string {
	return i.id
}

// IsZero reports whether the identifier was never set.
func (i Identifier) IsZero() bool {
	return i.id == ""
}

// MarshalJSON writes the canonical string as a bare JSON string. A zero
// Identifier is an error, since UnmarshalJSON would reject it.
func (i Identifier) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return nil, apperror.ErrInvalidArgument("identifier must not be empty")
	}
	return json.Marshal(i.id)
}

// UnmarshalJSON accepts either a JSON string or a JSON integer.
func (i *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("identifier: expected numeric or string value")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("identifier: %w", err)
		}
		ident, err := NewIdentifier(s)
		if err != nil {
			return err
		}
		*i = ident
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("identifier: expected numeric or string value, got %s", data)
	}
	ident, err := NewNumericIdentifier(n)
	if err != nil {
		return err
	}
	*i = ident
	return nil
}
