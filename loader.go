package modelgen

import (
	internalLoader "github.com/goliatone/go-modelgen/internal/sample/loader"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

// NewLoader constructs a sample loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...sample.LoaderOption) sample.Loader {
	cfg := sample.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
