// Package redistore persists feature flags in Redis, one string key per
// flag. Values are stored as "1"/"0" and coerced back to booleans inside
// the adapter; the registry only ever sees booleans.
//
//	client, err := redistore.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	registry := feature.NewRegistry(feature.WithStore(redistore.New(client)))
package redistore
