// Package sqsbatch provides a client-side batch buffer for SQS.
//
// Messages added to a [Buffer] are held until the pending batch reaches the
// configured item count or the estimated payload size, then sent with one
// SendMessageBatch call. Entries the service rejects are retried with
// exponential backoff; the ids of delivered entries are reported to
// observers after every attempt.
//
// # Basic Usage
//
// The simplest entry point is [Run], which flushes pending messages when the
// callback returns:
//
//	cfg := sqsbatch.DefaultConfig()
//	cfg.QueueURL = "https://sqs.us-east-1.amazonaws.com/123456789012/orders"
//
//	var sent sqsbatch.Accumulator
//	err := sqsbatch.Run(ctx, cfg, func(b *sqsbatch.Buffer) error {
//	    for _, o := range orders {
//	        if err := b.Add(ctx, sqsbatch.Item{Body: o.JSON()}); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	}, sqsbatch.WithObserver(&sent))
//
// # Configuration
//
// [Config.MaxBatchCount] (1-10) and [Config.MaxBatchSizeBytes] (up to 1 MiB)
// bound a batch. [Config.MaxRetries] and [Config.BackoffFactor] control the
// retry schedule; the pause after the n-th attempt is BackoffFactor*2^(n-1).
// A transport error is retried at once and returned if it persists on the
// last attempt.
//
// # Dropped Messages
//
// Entries still rejected after the last attempt are logged and passed to any
// observer implementing [DropObserver]. Set [Config.FailOnDrop] to have the
// flush also return a [*DropError].
//
// # Transport
//
// Without [WithSender] the buffer talks to SQS through aws-sdk-go-v2, with
// credentials resolved from [WithClientConfig] and the SDK default chain.
package sqsbatch
