// Package store publishes built concordance tables to Redis so that worker
// processes converting deed records can share them read-only.
//
// The builder publishes each table once it is frozen:
//
//	s, err := store.NewRedisStore(store.RedisOptions{URL: "redis://localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Publish(ctx, concordance.Physical, res.Physical); err != nil {
//	    return err
//	}
//
// Workers either query Redis per reference or load a Snapshot into memory
// once the table is Ready.
package store
