package filestore

import "github.com/forestrie/go-bloombox/bloom"

// Options configure a Store.
type Options struct {
	// Compress wraps saved filters in an lz4 frame.
	Compress bool
	// FilterOptions are passed to bloom.Decode when loading.
	FilterOptions []bloom.Option
}

type Option func(*Options)

// WithCompression selects lz4 framed files for Save.
func WithCompression(compress bool) Option {
	return func(o *Options) {
		o.Compress = compress
	}
}

// WithFilterOptions passes opts to every decode, for filters built with a
// non-default hash.
func WithFilterOptions(opts ...bloom.Option) Option {
	return func(o *Options) {
		o.FilterOptions = append(o.FilterOptions, opts...)
	}
}
