package cache

// scopedKeyer prefixes every key of an inner Keyer, so several deployments
// (or catalog services) can share one redis database.
type scopedKeyer struct {
	Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that prepends prefix to the keys of inner.
// A nil inner uses the default keyer.
//
//	staging := cache.NewScopedKeyer(nil, "staging:")
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return scopedKeyer{Keyer: inner, prefix: prefix}
}

func (k scopedKeyer) CatalogKey(opts CatalogKeyOpts) string {
	return k.prefix + k.Keyer.CatalogKey(opts)
}

func (k scopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.Keyer.LayoutKey(opts)
}

func (k scopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.Keyer.ArtifactKey(layoutHash, opts)
}
