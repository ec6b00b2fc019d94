package app

import "github.com/bft-labs/sqsbatch/internal/domain"

// AttributeOverhead approximates the transport's framing cost for one attribute.
const AttributeOverhead = 50

// EstimateSize returns the approximate wire cost of one message: the body plus,
// per attribute, its name, type label, payload and AttributeOverhead.
// The estimate is advisory; the queue service has the final say on size limits.
func EstimateSize(body []byte, attrs map[string]domain.Attribute) int {
	size := len(body)
	for name, a := range attrs {
		size += len(name) + len(a.DataType) + a.PayloadLen() + AttributeOverhead
	}
	return size
}
