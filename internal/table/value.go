package table

import (
	"strconv"
	"time"
)

// Kind is the storage kind of a value or column. A column's kind is observed
// once at load time and carried as an auxiliary fact next to the values; it
// is not re-derived per access.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindTime
)

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Value is a single scalar cell. The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// String wraps a text value
func String(s string) Value {
	return Value{kind: KindText, str: s}
}

// Number wraps a numeric value
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool wraps a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time wraps a date/time value
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Kind returns the storage kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is missing
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// String returns the stringified form of the value. Null stringifies to "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format("2006-01-02 15:04:05")
	}
	return ""
}

// Raw returns the typed payload for cell writers, or nil for null
func (v Value) Raw() any {
	switch v.kind {
	case KindText:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	}
	return nil
}

// Float returns the numeric payload and whether the value is a number
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}
