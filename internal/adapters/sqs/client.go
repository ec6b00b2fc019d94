package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ClientConfig describes how to reach the queue service.
// Empty fields fall back to the SDK's default credential and region chain.
type ClientConfig struct {
	Region   string
	Endpoint string

	// Profile selects a shared config profile. Takes precedence over static keys.
	Profile string

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// RoleARN, when set, is assumed on top of the base credentials.
	RoleARN        string
	RoleExternalID string
}

// LoadAWSConfig resolves an aws.Config from c.
func LoadAWSConfig(ctx context.Context, c ClientConfig, opts ...func(*config.LoadOptions) error) (aws.Config, error) {
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}

	if c.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(c.Profile))
	} else if c.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID, c.SecretAccessKey, c.SessionToken,
		)))
	}

	conf, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return conf, fmt.Errorf("load aws config: %w", err)
	}

	if c.Endpoint != "" {
		endpoint := c.Endpoint
		conf.BaseEndpoint = &endpoint
	}

	if c.RoleARN != "" {
		stsSvc := sts.NewFromConfig(conf)

		var stsOpts []func(*stscreds.AssumeRoleOptions)
		if c.RoleExternalID != "" {
			externalID := c.RoleExternalID
			stsOpts = append(stsOpts, func(aro *stscreds.AssumeRoleOptions) {
				aro.ExternalID = &externalID
			})
		}

		creds := stscreds.NewAssumeRoleProvider(stsSvc, c.RoleARN, stsOpts...)
		conf.Credentials = aws.NewCredentialsCache(creds)
	}
	return conf, nil
}

// NewClient builds an SQS client from c.
func NewClient(ctx context.Context, c ClientConfig) (*awssqs.Client, error) {
	conf, err := LoadAWSConfig(ctx, c)
	if err != nil {
		return nil, err
	}
	return awssqs.NewFromConfig(conf), nil
}
