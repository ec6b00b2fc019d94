package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxIDLength is the transport's limit on batch entry identifiers.
const MaxIDLength = 80

// MaxDelaySeconds is the largest per-message delivery delay the queue accepts.
const MaxDelaySeconds = 900

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,80}$`)

// Item is one message queued for batched delivery.
type Item struct {
	// ID identifies the item within a single batch. Generated when empty.
	ID string

	// Body is the message payload.
	Body []byte

	// Attributes are the typed message attributes (at most MaxAttributes).
	Attributes map[string]Attribute

	// Extra carries transport-specific fields.
	Extra Extra
}

// Extra holds the per-item fields SQS accepts beyond body and attributes.
// They are passed through to the transport as-is.
type Extra struct {
	// MessageGroupID orders messages within a FIFO queue.
	MessageGroupID string

	// MessageDeduplicationID deduplicates messages on a FIFO queue.
	MessageDeduplicationID string

	// DelaySeconds postpones delivery, 0 to MaxDelaySeconds.
	DelaySeconds int32
}

// Validate checks the extra fields.
func (e Extra) Validate() error {
	if e.DelaySeconds < 0 || e.DelaySeconds > MaxDelaySeconds {
		return invalidArgf("delay %ds outside [0,%d]", e.DelaySeconds, MaxDelaySeconds)
	}
	return nil
}

// NewID returns an opaque high-entropy identifier that fits MaxIDLength.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidateID checks a caller supplied identifier.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return invalidArgf("id %q must be 1-%d characters of [A-Za-z0-9_-]", id, MaxIDLength)
	}
	return nil
}

// NewItem validates the inputs and builds an Item, generating an ID if empty.
func NewItem(id string, body []byte, attrs map[string]Attribute, extra Extra) (Item, error) {
	if err := ValidateAttributes(attrs); err != nil {
		return Item{}, err
	}
	if err := extra.Validate(); err != nil {
		return Item{}, err
	}
	if id == "" {
		id = NewID()
	} else if err := ValidateID(id); err != nil {
		return Item{}, err
	}
	return Item{
		ID:         id,
		Body:       body,
		Attributes: attrs,
		Extra:      extra,
	}, nil
}
