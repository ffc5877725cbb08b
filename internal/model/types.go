package model

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is a row of a reference table whose columns this service does not
// own (doctors, hospitals, blood_availability, ...), keyed by column name.
type Record map[string]interface{}

// OptionalInt is a nullable integer that accepts JSON numbers, numeric
// strings, "" and null, so both JSON clients and HTML forms can submit it.
type OptionalInt struct {
	Int64 int64
	Valid bool
}

func NewOptionalInt(v int64) OptionalInt {
	return OptionalInt{Int64: v, Valid: true}
}

func (o *OptionalInt) Scan(value interface{}) error {
	var n sql.NullInt64
	if err := n.Scan(value); err != nil {
		return err
	}
	o.Int64, o.Valid = n.Int64, n.Valid
	return nil
}

func (o OptionalInt) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Int64, nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.Int64, 10)), nil
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = OptionalInt{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return o.UnmarshalParam(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid integer: %w", err)
	}
	return o.UnmarshalParam(n.String())
}

// UnmarshalParam parses form and query values.
func (o *OptionalInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*o = OptionalInt{}
		return nil
	}
	n, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(param, 64)
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("invalid integer %q", param)
		}
		n = int64(f)
	}
	*o = NewOptionalInt(n)
	return nil
}

// NullString is a nullable string rendered as JSON null when absent.
type NullString struct {
	String string
	Valid  bool
}

// NewNullString treats "" as absent.
func NewNullString(s string) NullString {
	if s == "" {
		return NullString{}
	}
	return NullString{String: s, Valid: true}
}

func (n *NullString) Scan(value interface{}) error {
	var s sql.NullString
	if err := s.Scan(value); err != nil {
		return err
	}
	n.String, n.Valid = s.String, s.Valid
	return nil
}

func (n NullString) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.String, nil
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = NullString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NewNullString(s)
	return nil
}

// Text is a required request field that only needs to be present. JSON
// numbers and true are taken verbatim so a phone sent as 5551234 counts as
// given; null and false decode to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("invalid text value")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = ""
	case bytes.Equal(data, []byte("true")):
		*t = "true"
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid text value: %w", err)
		}
		*t = Text(n.String())
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}
