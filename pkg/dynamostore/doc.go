// Package dynamostore persists feature flags in an Amazon DynamoDB table,
// one item per flag keyed by name. It implements the feature.Store contract
// plus the Init extension, which creates the table on first use and waits
// for it to become active.
//
// DynamoDB-compatible local stacks are supported through the endpoint and
// static-credentials options:
//
//	store, err := dynamostore.New(ctx, dynamostore.Config{
//		TableName: "feature_flags",
//		Region:    "us-east-1",
//	}, dynamostore.WithEndpoint("http://localhost:8000"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	registry := feature.NewRegistry(feature.WithStore(store))
package dynamostore
