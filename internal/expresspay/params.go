package expresspay

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Wire formats used by the gateway.
const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102150405"
)

// ParameterSet is an ordered collection of request fields. Field names keep
// their wire casing for transmission; signing looks them up case-insensitively.
// Absent fields are never transmitted and sign as the empty string.
type ParameterSet struct {
	names  []string
	values map[string]string // keyed by lower-cased name
}

// NewParameterSet returns an empty parameter set.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: make(map[string]string)}
}

// Set adds a field with the given wire name and value. Setting the same
// field twice overwrites the value and keeps the first position.
func (ps *ParameterSet) Set(name, value string) {
	key := strings.ToLower(name)
	if _, ok := ps.values[key]; !ok {
		ps.names = append(ps.names, name)
	}
	ps.values[key] = value
}

// Get looks a field up case-insensitively. Absent fields report the empty
// string, which is exactly what the signature concatenation requires.
func (ps *ParameterSet) Get(name string) string {
	return ps.values[strings.ToLower(name)]
}

// Has reports whether the field was set.
func (ps *ParameterSet) Has(name string) bool {
	_, ok := ps.values[strings.ToLower(name)]
	return ok
}

// Values returns every field as url.Values, in insertion order, preserving
// wire casing. Used by operations that transmit the full set in the query.
func (ps *ParameterSet) Values() url.Values {
	out := url.Values{}
	for _, name := range ps.names {
		out.Set(name, ps.values[strings.ToLower(name)])
	}
	return out
}

// FormValues returns the fields as a form body, excluding the named fields
// (case-insensitive). The gateway rejects unexpected empty columns, so only
// fields that were actually set appear here.
func (ps *ParameterSet) FormValues(exclude ...string) url.Values {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[strings.ToLower(name)] = true
	}
	out := url.Values{}
	for _, name := range ps.names {
		key := strings.ToLower(name)
		if skip[key] {
			continue
		}
		out.Set(name, ps.values[key])
	}
	return out
}

// FormatAmount renders a decimal amount the way the gateway expects: comma
// as the decimal separator. This is a transport quirk of the remote API,
// not a locale setting, and is applied exactly once after float formatting.
func FormatAmount(amount float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(amount, 'f', -1, 64), ".", ",")
}

// FormatDate renders a date as YYYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDateTime renders a timestamp as YYYYMMDDHHMMSS.
func FormatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// formatBool renders editable-flags as the integers the gateway expects.
func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
