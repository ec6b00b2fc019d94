// Package sqs implements ports.BatchSender on top of the AWS SDK's SQS client.
package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/pkg/log"
)

// API is the subset of *sqs.Client the sender uses.
type API interface {
	SendMessageBatch(ctx context.Context, params *awssqs.SendMessageBatchInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageBatchOutput, error)
}

// Sender implements ports.BatchSender with SendMessageBatch.
// It holds no per-batch state and may be shared by several buffers.
type Sender struct {
	api    API
	logger log.Logger
}

// NewSender creates a new SQS sender.
func NewSender(api API, logger log.Logger) *Sender {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Sender{
		api:    api,
		logger: logger,
	}
}

// SendBatch sends items to queueURL in one SendMessageBatch call.
func (s *Sender) SendBatch(ctx context.Context, queueURL string, items []domain.Item) (domain.SendResult, error) {
	if len(items) == 0 {
		return domain.SendResult{}, nil
	}

	entries := make([]types.SendMessageBatchRequestEntry, len(items))
	for i, it := range items {
		entries[i] = toEntry(it)
	}

	out, err := s.api.SendMessageBatch(ctx, &awssqs.SendMessageBatchInput{
		QueueUrl: aws.String(queueURL),
		Entries:  entries,
	})
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("sqs send message batch: %w", err)
	}

	res := domain.SendResult{
		Succeeded: make([]string, 0, len(out.Successful)),
	}
	for _, e := range out.Successful {
		res.Succeeded = append(res.Succeeded, aws.ToString(e.Id))
	}
	for _, e := range out.Failed {
		res.Failed = append(res.Failed, domain.Failure{
			ID:          aws.ToString(e.Id),
			Code:        aws.ToString(e.Code),
			Message:     aws.ToString(e.Message),
			SenderFault: e.SenderFault,
		})
		s.logger.Debug("sqs rejected entry",
			log.String("id", aws.ToString(e.Id)),
			log.String("code", aws.ToString(e.Code)),
			log.Bool("sender_fault", e.SenderFault),
		)
	}
	return res, nil
}

func toEntry(it domain.Item) types.SendMessageBatchRequestEntry {
	e := types.SendMessageBatchRequestEntry{
		Id:           aws.String(it.ID),
		MessageBody:  aws.String(string(it.Body)),
		DelaySeconds: it.Extra.DelaySeconds,
	}
	if it.Extra.MessageGroupID != "" {
		e.MessageGroupId = aws.String(it.Extra.MessageGroupID)
	}
	if it.Extra.MessageDeduplicationID != "" {
		e.MessageDeduplicationId = aws.String(it.Extra.MessageDeduplicationID)
	}
	if len(it.Attributes) > 0 {
		e.MessageAttributes = make(map[string]types.MessageAttributeValue, len(it.Attributes))
		for name, a := range it.Attributes {
			e.MessageAttributes[name] = toAttributeValue(a)
		}
	}
	return e
}

func toAttributeValue(a domain.Attribute) types.MessageAttributeValue {
	v := types.MessageAttributeValue{DataType: aws.String(a.DataType)}
	switch a.Kind {
	case domain.KindString:
		v.StringValue = aws.String(a.StringValue)
	case domain.KindBinary:
		v.BinaryValue = a.BinaryValue
	case domain.KindStringList:
		v.StringListValues = a.StringListValues
	case domain.KindBinaryList:
		v.BinaryListValues = a.BinaryListValues
	}
	return v
}
