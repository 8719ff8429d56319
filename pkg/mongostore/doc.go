// Package mongostore persists feature flags in a MongoDB collection, one
// document per flag. Init creates the unique index on the flag name; Set
// upserts so writes work whether or not the flag exists yet.
//
//	db, err := mongostore.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store := mongostore.New(db.Collection("feature_flags"))
//	registry := feature.NewRegistry(feature.WithStore(store))
//	if err := registry.InitStore(ctx); err != nil {
//		log.Fatal(err)
//	}
package mongostore
