package refson

import (
	"github.com/refson/go-refson/atom"
	"github.com/refson/go-refson/resolve"
)

// Replacer is called once per own field of object nodes during encoding,
// never for array elements and never for reserved marker keys. Returning
// ok=false omits the field; otherwise the returned value is encoded in
// place of the original.
type Replacer func(key string, v any) (any, bool)

type Option func(*config)

type config struct {
	prefix   string
	revive   bool
	purge    bool
	resolver resolve.Resolver
	replacer Replacer
	node     atom.NodeCodec
	atoms    *atom.Registry
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		prefix:   "!",
		revive:   true,
		purge:    true,
		resolver: resolve.Default,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.atoms = atom.NewRegistry(cfg.node)
	return cfg
}

// MarkerPrefix sets the prefix of the reserved marker keys. It must be the
// same for the encode and decode of a given document.
func MarkerPrefix(p string) Option {
	return func(c *config) { c.prefix = p }
}

// ReviveTypes controls behavior revival. When false, type markers are
// omitted on encode and ignored on decode.
func ReviveTypes(v bool) Option {
	return func(c *config) { c.revive = v }
}

// PurgeMarkers controls whether the decoder removes marker keys from
// decoded objects (true, the default) or leaves them tombstoned as nil.
// It has no effect on the decoded value's semantics.
func PurgeMarkers(v bool) Option {
	return func(c *config) { c.purge = v }
}

// WithResolver sets the type resolver. The default is resolve.Default.
func WithResolver(r resolve.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithReplacer sets the field replacer hook.
func WithReplacer(f Replacer) Option {
	return func(c *config) { c.replacer = f }
}

// WithNodeCodec sets the collaborator for opaque host values.
func WithNodeCodec(nc atom.NodeCodec) Option {
	return func(c *config) { c.node = nc }
}

func (c *config) refKey() string   { return c.prefix + "ref" }
func (c *config) buildKey() string { return c.prefix + "build" }
func (c *config) argsKey() string  { return c.prefix + "args" }
func (c *config) typeKey() string  { return c.prefix + "type" }

func (c *config) isMarker(key string) bool {
	switch key {
	case c.refKey(), c.buildKey(), c.argsKey(), c.typeKey():
		return true
	}
	return false
}
