package assets

import "errors"

// AssetResolver tries loaders in order and moves to the next one only when
// an asset is missing. A custom directory, when given, shadows the built-in
// card assets file by file.
type AssetResolver struct {
	layers []AssetLoader // highest priority first; built-in last
}

// NewAssetResolver returns a resolver over the built-in assets, with
// customBasePath layered on top when non-empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	var layers []AssetLoader
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fsLoader)
	}
	layers = append(layers, NewEmbeddedLoader())
	return &AssetResolver{layers: layers}, nil
}

// LoadStyle returns the first styles/{name}.css found.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first templates/{name}.html found.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// first stops at the first success or at any error other than ErrNotFound:
// an invalid name or an unreadable custom file is reported, not masked.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if !errors.Is(err, ErrNotFound) {
			return content, err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom directory is layered in.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
