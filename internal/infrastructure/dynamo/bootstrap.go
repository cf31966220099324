package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bidhub-api/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// tableAPI is the subset of the DynamoDB client used to provision tables.
type tableAPI interface {
	ListTables(ctx context.Context, in *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	UpdateTimeToLive(ctx context.Context, in *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

// maxReadyWait bounds how long Bootstrap waits for DynamoDB to answer.
const maxReadyWait = 30 * time.Second

// tableSpec describes one table: a string hash key, hash-only GSIs keyed by
// string attributes, and an optional TTL attribute.
type tableSpec struct {
	name    string
	hashKey string
	indexes map[string]string // index name -> attribute
	ttlAttr string
}

func schema(tables config.DynamoTables) []tableSpec {
	return []tableSpec{
		{name: tables.Accounts, hashKey: "account_id", indexes: map[string]string{indexEmail: fieldEmail}},
		{name: tables.Users, hashKey: "user_id", indexes: map[string]string{indexEmail: fieldEmail}},
		{name: tables.Sessions, hashKey: "session_id", indexes: map[string]string{"account_id-index": "account_id"}, ttlAttr: fieldExpiresAt},
	}
}

// Bootstrap waits for DynamoDB to answer, then creates the accounts, users
// and sessions tables that are missing. Existing tables are left alone, so
// it runs on every startup.
func Bootstrap(ctx context.Context, client tableAPI, tables config.DynamoTables) error {
	if err := waitReady(ctx, client); err != nil {
		return fmt.Errorf("dynamodb not reachable: %w", err)
	}
	for _, spec := range schema(tables) {
		if created := createTable(ctx, client, spec.input()); created && spec.ttlAttr != "" {
			enableTTL(ctx, client, spec.name, spec.ttlAttr)
		}
	}
	return nil
}

func waitReady(ctx context.Context, client tableAPI) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxReadyWait
	return backoff.Retry(func() error {
		_, err := client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
		if err != nil {
			log.Debug().Err(err).Msg("waiting for dynamodb")
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func (s tableSpec) input() *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{
		{AttributeName: aws.String(s.hashKey), AttributeType: types.ScalarAttributeTypeS},
	}
	var gsis []types.GlobalSecondaryIndex
	for index, attr := range s.indexes {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS})
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(index),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	return &dynamodb.CreateTableInput{
		TableName:              aws.String(s.name),
		BillingMode:            types.BillingModePayPerRequest,
		AttributeDefinitions:   attrs,
		KeySchema:              []types.KeySchemaElement{{AttributeName: aws.String(s.hashKey), KeyType: types.KeyTypeHash}},
		GlobalSecondaryIndexes: gsis,
	}
}

// createTable reports whether the table was created by this call.
func createTable(ctx context.Context, client tableAPI, input *dynamodb.CreateTableInput) bool {
	_, err := client.CreateTable(ctx, input)
	var inUse *types.ResourceInUseException
	switch {
	case errors.As(err, &inUse):
		log.Debug().Str("table", *input.TableName).Msg("table exists")
		return false
	case err != nil:
		log.Warn().Str("table", *input.TableName).Err(err).Msg("could not create table")
		return false
	}
	log.Info().Str("table", *input.TableName).Msg("created table")
	return true
}

func enableTTL(ctx context.Context, client tableAPI, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		log.Warn().Str("table", tableName).Err(err).Msg("could not enable TTL")
	}
}
