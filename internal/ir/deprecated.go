package ir

import "fmt"

// Deprecated marks an enum, enum entry, or message as superseded.
type Deprecated struct {
	sinceYear   int
	sinceMonth  uint8
	replacedBy  string
	description string
}

// NewDeprecated builds a Deprecated value. month is 1-12.
func NewDeprecated(sinceYear int, sinceMonth uint8, replacedBy, description string) Deprecated {
	return Deprecated{
		sinceYear:   sinceYear,
		sinceMonth:  sinceMonth,
		replacedBy:  replacedBy,
		description: description,
	}
}

func (d Deprecated) SinceYear() int       { return d.sinceYear }
func (d Deprecated) SinceMonth() uint8    { return d.sinceMonth }
func (d Deprecated) ReplacedBy() string   { return d.replacedBy }
func (d Deprecated) Description() string  { return d.description }
func (d Deprecated) String() string {
	return fmt.Sprintf("%04d-%02d, replaced by %s", d.sinceYear, d.sinceMonth, d.replacedBy)
}
