// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"time"

	sim "github.com/db47h/logicsim"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pkg/errors"
)

// DefaultBucket is the default JetStream key-value bucket name.
//
const DefaultBucket = "logicsim_circuits"

// Bucket is the subset of jetstream.KeyValue used by KV.
//
type Bucket interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Create(ctx context.Context, key string, value []byte) (uint64, error)
	Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
}

// KV stores documents as JSON values in a NATS JetStream key-value bucket.
//
type KV struct {
	bucket  Bucket
	timeout time.Duration
	close   func()
}

// NewKV returns a store backed by bucket.
//
func NewKV(bucket Bucket) *KV {
	return &KV{bucket: bucket, timeout: 5 * time.Second}
}

// OpenKV connects to the NATS server at url and opens the named bucket,
// creating it if it does not exist. The returned store owns the connection;
// call Close to release it.
//
func OpenKV(ctx context.Context, url, bucket string) (*KV, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	nc, err := nats.Connect(url, nats.Name("logicsim"))
	if err != nil {
		return nil, unavailable(err, "connect %s", url)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, unavailable(err, "jetstream")
	}
	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "logicsim circuit documents",
			History:     5,
		})
		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, err = js.KeyValue(ctx, bucket)
		}
	}
	if err != nil {
		nc.Close()
		return nil, unavailable(err, "open bucket %s", bucket)
	}
	s := NewKV(kv)
	s.close = nc.Close
	return s, nil
}

// Close closes the underlying connection, if owned by s.
//
func (s *KV) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

func (s *KV) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// Save implements the designer's document store.
//
func (s *KV) Save(ctx context.Context, name string, doc *sim.Document, overwrite bool) error {
	if err := CheckName(name); err != nil {
		return err
	}
	b, err := doc.Bytes()
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if overwrite {
		_, err = s.bucket.Put(ctx, name, b)
	} else {
		_, err = s.bucket.Create(ctx, name, b)
		if errors.Is(err, jetstream.ErrKeyExists) {
			return errors.Wrapf(sim.ErrExists, "save %s", name)
		}
	}
	if err != nil {
		return unavailable(err, "save %s", name)
	}
	return nil
}

// Load returns the document stored under name.
//
func (s *KV) Load(ctx context.Context, name string) (*sim.Document, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	e, err := s.bucket.Get(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, errors.Wrapf(sim.ErrNotFound, "load %s", name)
		}
		return nil, unavailable(err, "load %s", name)
	}
	return decode(name, e.Value())
}

// List returns the names of all stored documents in lexical order.
//
func (s *KV) List(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, unavailable(err, "list")
	}
	return sorted(keys), nil
}

// Delete removes the document stored under name.
//
func (s *KV) Delete(ctx context.Context, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if _, err := s.bucket.Get(ctx, name); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return errors.Wrapf(sim.ErrNotFound, "delete %s", name)
		}
		return unavailable(err, "delete %s", name)
	}
	if err := s.bucket.Delete(ctx, name); err != nil {
		return unavailable(err, "delete %s", name)
	}
	return nil
}
