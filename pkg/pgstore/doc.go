// Package pgstore persists feature flags in a PostgreSQL table, one row per
// flag. It implements the feature.Store contract plus the Init extension,
// which applies the embedded schema migration creating the feature_flags
// table.
//
// The adapter owns all SQL mapping; the registry only ever sees booleans.
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	registry := feature.NewRegistry(feature.WithStore(pgstore.New(pool)))
//	if err := registry.InitStore(ctx); err != nil {
//		log.Fatal(err)
//	}
package pgstore
