package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgsample "github.com/goliatone/go-modelgen/pkg/sample"
)

// Loader implements pkgsample.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level modelgen package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

// Ensure the implementation satisfies the public interface.
var _ pkgsample.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgsample.LoaderOptions) pkgsample.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBytes:  options.MaxBytes,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgsample.Source) (pkgsample.Document, error) {
	if src == nil {
		return pkgsample.Document{}, errors.New("sample loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgsample.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgsample.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgsample.SourceKindURL:
		if !l.allowHTTP {
			return pkgsample.Document{}, errors.New("sample loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBytes)
	default:
		err = errors.New("sample loader: unsupported source kind")
	}
	if err != nil {
		return pkgsample.Document{}, err
	}

	return pkgsample.NewDocument(src, data)
}
