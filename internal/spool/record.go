// Package spool reads message records from JSON-lines input and feeds them
// to a batch buffer. A file can be followed as it grows.
package spool

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

// ErrBadRecord marks an input line that cannot be turned into an item.
var ErrBadRecord = errors.New("bad record")

// Record is one line of spool input.
type Record struct {
	ID              string                     `json:"id,omitempty"`
	Body            string                     `json:"body,omitempty"`
	BodyBase64      string                     `json:"body_base64,omitempty"`
	Attributes      map[string]RecordAttribute `json:"attributes,omitempty"`
	GroupID         string                     `json:"group_id,omitempty"`
	DeduplicationID string                     `json:"deduplication_id,omitempty"`
	DelaySeconds    int32                      `json:"delay_seconds,omitempty"`
}

// RecordAttribute is the JSON form of a message attribute. Binary values
// are base64 encoded as encoding/json does for byte slices.
type RecordAttribute struct {
	Type       string   `json:"type,omitempty"`
	Value      string   `json:"value,omitempty"`
	Binary     []byte   `json:"binary,omitempty"`
	StringList []string `json:"string_list,omitempty"`
	BinaryList [][]byte `json:"binary_list,omitempty"`
}

// Item converts the record into a validated item. An empty ID gets a
// generated one.
func (r Record) Item() (domain.Item, error) {
	if r.Body != "" && r.BodyBase64 != "" {
		return domain.Item{}, fmt.Errorf("%w: body and body_base64 are exclusive", ErrBadRecord)
	}

	body := []byte(r.Body)
	if r.BodyBase64 != "" {
		b, err := base64.StdEncoding.DecodeString(r.BodyBase64)
		if err != nil {
			return domain.Item{}, fmt.Errorf("%w: body_base64: %v", ErrBadRecord, err)
		}
		body = b
	}

	var attrs map[string]domain.Attribute
	if len(r.Attributes) > 0 {
		attrs = make(map[string]domain.Attribute, len(r.Attributes))
		for name, a := range r.Attributes {
			attrs[name] = a.attribute()
		}
	}

	return domain.NewItem(r.ID, body, attrs, domain.Extra{
		MessageGroupID:         r.GroupID,
		MessageDeduplicationID: r.DeduplicationID,
		DelaySeconds:           r.DelaySeconds,
	})
}

func (a RecordAttribute) attribute() domain.Attribute {
	switch {
	case len(a.BinaryList) > 0:
		return domain.BinaryListAttribute(a.dataType("Binary"), a.BinaryList...)
	case len(a.StringList) > 0:
		return domain.StringListAttribute(a.dataType("String"), a.StringList...)
	case a.Binary != nil || strings.HasPrefix(a.Type, "Binary"):
		attr := domain.BinaryAttribute(a.Binary)
		attr.DataType = a.dataType("Binary")
		return attr
	}
	attr := domain.StringAttribute(a.Value)
	attr.DataType = a.dataType("String")
	return attr
}

func (a RecordAttribute) dataType(def string) string {
	if a.Type == "" {
		return def
	}
	return a.Type
}
