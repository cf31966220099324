package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/bidhub-api/internal/infrastructure/awsconf"
	"github.com/bidhub-api/internal/infrastructure/dynamo"
)

// backend opens the AWS clients shared by the store-facing commands.
func backend(ctx context.Context) (aws.Config, *dynamodb.Client, error) {
	awsCfg, err := awsconf.Load(ctx, cfg)
	if err != nil {
		return aws.Config{}, nil, err
	}
	return awsCfg, dynamo.NewClient(awsCfg, cfg.AWSEndpointURL), nil
}
