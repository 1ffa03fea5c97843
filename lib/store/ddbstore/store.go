package ddbstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("store")

// Attribute names of a phonebook item. "name" is the partition key of the table.
const (
	attrName  = "name"
	attrPhone = "phone"
)

// dynamodbAPI is the minimal DynamoDB interface required by the store.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type storeImpl struct {
	api       dynamodbAPI
	tableName string
}

// Open loads the default AWS configuration (environment, shared config files)
// and returns a store for the configured table. The table must already exist.
func Open(ctx context.Context, c store.DynamoDBConfig) (store.IStore, error) {
	var opts []func(*config.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})
	log.Infof("using dynamodb table %s", c.Table)
	return New(client, c.Table)
}

// New creates a store on top of a DynamoDB client
func New(api dynamodbAPI, tableName string) (store.IStore, error) {
	if api == nil {
		return nil, errors.New("ddbstore: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("ddbstore: table name must not be empty")
	}
	return &storeImpl{api: api, tableName: tableName}, nil
}

func nameKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrName: &types.AttributeValueMemberS{Value: key},
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docs see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Lookup(ctx context.Context, key string) (string, bool, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            nameKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, store.WrapError(store.RetCUnavailable, "lookup", err)
	}
	if out == nil || len(out.Item) == 0 {
		return "", false, nil
	}

	phone, ok := out.Item[attrPhone].(*types.AttributeValueMemberS)
	if !ok {
		return "", false, store.NewError(store.RetCInternalError, fmt.Sprintf("attribute %q of %q is not a string", attrPhone, key))
	}
	return phone.Value, true, nil
}

func (s *storeImpl) Store(ctx context.Context, key, value string) (bool, error) {
	_, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			attrName:  &types.AttributeValueMemberS{Value: key},
			attrPhone: &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return false, store.WrapError(store.RetCUnavailable, "store", err)
	}
	return true, nil
}

// Remove deletes the item and uses the returned old attributes to report whether it existed
func (s *storeImpl) Remove(ctx context.Context, key string) (bool, error) {
	out, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.tableName),
		Key:          nameKey(key),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, store.WrapError(store.RetCUnavailable, "remove", err)
	}
	return out != nil && len(out.Attributes) > 0, nil
}

// Close is a no-op, the aws client holds no resources that need releasing
func (s *storeImpl) Close() error {
	return nil
}
