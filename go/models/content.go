package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type ContentType int

const (
	Unknown ContentType = iota
	Code
	Data
)

var contentNames = []string{"unknown", "code", "data"}

func (c ContentType) String() string {
	if c < 0 || int(c) >= len(contentNames) {
		return fmt.Sprintf("ContentType(%d)", int(c))
	}
	return contentNames[c]
}

func ParseContentType(name string) (ContentType, error) {
	name = strings.ToLower(name)
	for i, v := range contentNames {
		if v == name {
			return ContentType(i), nil
		}
	}
	return Unknown, errors.Errorf("unknown content type %q", name)
}

// Content is the payload held by an Interval. The set of variants is closed:
// CodeContent, DataContent and RawContent.
type Content interface {
	Type() ContentType
	Equal(o Content) bool
	String() string
	content()
}

type CodeContent struct {
	Ins Instruction
}

func (c CodeContent) Type() ContentType { return Code }
func (c CodeContent) String() string    { return c.Ins.String() }
func (c CodeContent) content()          {}

func (c CodeContent) Equal(o Content) bool {
	oc, ok := o.(CodeContent)
	return ok && c.Ins.Equal(oc.Ins)
}

type DataContent struct {
	Kind    string
	Comment string
}

func (d DataContent) Type() ContentType { return Data }
func (d DataContent) content()          {}

func (d DataContent) Equal(o Content) bool {
	od, ok := o.(DataContent)
	return ok && d == od
}

func (d DataContent) String() string {
	s := d.Kind
	if s == "" {
		s = "data"
	}
	if d.Comment != "" {
		s += " ; " + d.Comment
	}
	return s
}

// RawContent marks bytes with no known structure, including the fillers
// synthesized by contiguous range queries.
type RawContent struct{}

func (RawContent) Type() ContentType { return Unknown }
func (RawContent) String() string    { return "raw" }
func (RawContent) content()          {}

func (RawContent) Equal(o Content) bool {
	_, ok := o.(RawContent)
	return ok
}
