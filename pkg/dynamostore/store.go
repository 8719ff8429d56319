package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrName    = "name"
	attrEnabled = "enabled"
)

// Client defines the interface for DynamoDB operations used by Store.
// It is satisfied by *dynamodb.Client and by mocks in tests.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Config contains configuration for the DynamoDB flag store.
type Config struct {
	TableName   string `env:"FLAGS_DYNAMODB_TABLE" envDefault:"feature_flags"` // TableName is the table holding flag items.
	Region      string `env:"FLAGS_DYNAMODB_REGION"`                           // Region is the AWS region.
	AccessKeyID string `env:"FLAGS_DYNAMODB_ACCESS_KEY_ID"`                    // AccessKeyID is optional; the default AWS credential chain applies when empty.
	SecretKey   string `env:"FLAGS_DYNAMODB_SECRET_KEY"`                       // SecretKey pairs with AccessKeyID.
	Endpoint    string `env:"FLAGS_DYNAMODB_ENDPOINT"`                         // Endpoint is optional, for DynamoDB-compatible local stacks.
}

// Option defines a function that configures the Store.
type Option func(*storeOptions)

type storeOptions struct {
	client        Client
	endpoint      string
	configOptions []func(*config.LoadOptions) error
}

// WithClient sets a custom pre-configured DynamoDB client.
// Useful for testing with mocks.
func WithClient(client Client) Option {
	return func(o *storeOptions) {
		o.client = client
	}
}

// WithEndpoint points the client at a custom endpoint, such as a local
// DynamoDB container.
func WithEndpoint(endpoint string) Option {
	return func(o *storeOptions) {
		o.endpoint = endpoint
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *storeOptions) {
		o.configOptions = append(o.configOptions, option)
	}
}

// Store persists feature flags as DynamoDB items.
// It is safe for concurrent use.
type Store struct {
	client Client
	table  string
}

// New creates a DynamoDB flag store. Unless a pre-configured client is
// supplied through WithClient, the AWS configuration is loaded from the
// default chain with cfg's region, credentials, and endpoint applied on top.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	options := &storeOptions{endpoint: cfg.Endpoint}
	for _, opt := range opts {
		opt(options)
	}

	if options.client != nil {
		if cfg.TableName == "" {
			return nil, ErrInvalidConfig
		}
		return &Store{client: options.client, table: cfg.TableName}, nil
	}

	if cfg.TableName == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	awsOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				"",
			)),
		)
	}
	awsOptions = append(awsOptions, options.configOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadConfig, err)
	}

	client := dynamodb.NewFromConfig(awsConfig, func(o *dynamodb.Options) {
		if options.endpoint != "" {
			o.BaseEndpoint = aws.String(options.endpoint)
		}
	})

	return &Store{client: client, table: cfg.TableName}, nil
}

// Get returns the persisted value for a flag. A missing item is reported
// through the ok result. Items written by other tools with a numeric 1/0
// enabled attribute are coerced to booleans here, never in the registry.
func (s *Store) Get(ctx context.Context, name string) (bool, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            itemKey(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, false, err
	}
	if len(out.Item) == 0 {
		return false, false, nil
	}

	switch attr := out.Item[attrEnabled].(type) {
	case *types.AttributeValueMemberBOOL:
		return attr.Value, true, nil
	case *types.AttributeValueMemberN:
		switch attr.Value {
		case "1":
			return true, true, nil
		case "0":
			return false, true, nil
		}
	}
	return false, false, fmt.Errorf("%w: %q", ErrMalformedItem, name)
}

// Set persists a value for a flag, creating or overwriting the item.
func (s *Store) Set(ctx context.Context, name string, value bool) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			attrName:    &types.AttributeValueMemberS{Value: name},
			attrEnabled: &types.AttributeValueMemberBOOL{Value: value},
		},
	})
	return err
}

// Delete removes a flag's item. Deleting an absent flag is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(name),
	})
	return err
}

// Init creates the flags table if it does not exist and waits for it to
// become active. Call once at application startup, typically through
// Registry.InitStore.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return err
	}

	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrName), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrName), KeyType: types.KeyTypeHash},
		},
	})
	if err != nil {
		return errors.Join(ErrFailedToCreateTable, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, 2*time.Minute); err != nil {
		return errors.Join(ErrFailedToCreateTable, err)
	}
	return nil
}

// Persistent reports true: values survive process restarts.
func (s *Store) Persistent() bool {
	return true
}

func itemKey(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrName: &types.AttributeValueMemberS{Value: name},
	}
}
