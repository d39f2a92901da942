package storage

import "io"

// BlobStore is the byte-blob persistence behind the speech audio cache.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Has(key string) bool
}
