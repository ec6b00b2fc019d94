package domain

import "strings"

// MaxAttributes is the transport's limit on attributes per message.
const MaxAttributes = 10

// AttributeKind selects which value field of an Attribute carries the payload.
type AttributeKind int

const (
	KindString AttributeKind = iota
	KindBinary
	KindStringList
	KindBinaryList
)

// String returns a human-readable representation of the kind.
func (k AttributeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindStringList:
		return "string-list"
	case KindBinaryList:
		return "binary-list"
	default:
		return "unknown"
	}
}

// Attribute is a typed message attribute.
// DataType is the declared type label sent to the transport ("String",
// "Number", "Binary", or a custom suffix such as "String.json").
type Attribute struct {
	DataType string
	Kind     AttributeKind

	StringValue      string
	BinaryValue      []byte
	StringListValues []string
	BinaryListValues [][]byte
}

// StringAttribute returns a String-typed attribute.
func StringAttribute(v string) Attribute {
	return Attribute{DataType: "String", Kind: KindString, StringValue: v}
}

// NumberAttribute returns a Number-typed attribute. The value is sent as text.
func NumberAttribute(v string) Attribute {
	return Attribute{DataType: "Number", Kind: KindString, StringValue: v}
}

// BinaryAttribute returns a Binary-typed attribute.
func BinaryAttribute(v []byte) Attribute {
	return Attribute{DataType: "Binary", Kind: KindBinary, BinaryValue: v}
}

// StringListAttribute returns a list attribute with textual elements.
func StringListAttribute(dataType string, v ...string) Attribute {
	return Attribute{DataType: dataType, Kind: KindStringList, StringListValues: v}
}

// BinaryListAttribute returns a list attribute with binary elements.
func BinaryListAttribute(dataType string, v ...[]byte) Attribute {
	return Attribute{DataType: dataType, Kind: KindBinaryList, BinaryListValues: v}
}

// PayloadLen returns the byte length of the attribute's value.
// Strings count by their UTF-8 encoding, binary values by raw length.
func (a Attribute) PayloadLen() int {
	n := 0
	switch a.Kind {
	case KindString:
		n = len(a.StringValue)
	case KindBinary:
		n = len(a.BinaryValue)
	case KindStringList:
		for _, v := range a.StringListValues {
			n += len(v)
		}
	case KindBinaryList:
		for _, v := range a.BinaryListValues {
			n += len(v)
		}
	}
	return n
}

// ValidateAttributes checks the attribute set against the transport limits.
func ValidateAttributes(attrs map[string]Attribute) error {
	if len(attrs) > MaxAttributes {
		return invalidArgf("%d attributes, at most %d allowed", len(attrs), MaxAttributes)
	}
	for name, a := range attrs {
		if strings.TrimSpace(name) == "" {
			return invalidArgf("attribute name is empty")
		}
		if a.DataType == "" {
			return invalidArgf("attribute %q has no data type", name)
		}
		if a.Kind < KindString || a.Kind > KindBinaryList {
			return invalidArgf("attribute %q has unknown kind %d", name, a.Kind)
		}
	}
	return nil
}
