package config

import "io"

// ResourceStream is a scoped, open handle over raw bytes plus the
// logical name it was opened for. Close releases whatever the provider
// holds (a file descriptor, an HTTP body, ...) and must be safe to call
// exactly once on every code path — success, parse failure, or panic
// recovery by the caller.
type ResourceStream interface {
	// Name is the logical resource name the stream was opened for,
	// used by the pipeline to pick a loader by file extension.
	Name() string
	// Reader returns the underlying byte source.
	Reader() io.Reader
	// Close releases the stream's resources.
	Close() error
}

// ResourceProvider resolves a logical resource name into an open
// ResourceStream (§6). Implementations register under one or more keys
// in a StrategyRegistry[ResourceProvider].
type ResourceProvider interface {
	Strategy
	// ResolveResource opens a stream for identifier. Failures are
	// wrapped as *Error{Kind: KindProvider}.
	ResolveResource(identifier ResourceIdentifier) (ResourceStream, error)
	// ValidateResource rejects a blank resource name by default; a
	// provider may override this with stricter rules.
	ValidateResource(identifier ResourceIdentifier) error
}

// ResourceLoader parses a ResourceStream of a known textual format into
// a canonical Tree (§6). Implementations register under the file
// extensions they recognise.
type ResourceLoader interface {
	Strategy
	// Load parses stream into a Tree. Failures are wrapped as
	// *Error{Kind: KindLoader}.
	Load(stream ResourceStream) (*Tree, error)
	// ValidateResource checks the stream is non-nil and named; a
	// loader may override this with format-specific checks.
	ValidateResource(stream ResourceStream) error
}

// ValidateResourceName is the default ResourceProvider.ValidateResource
// behaviour: reject a blank resource name.
func ValidateResourceName(identifier ResourceIdentifier) error {
	if isBlank(identifier.ResourceName) {
		return newError(KindProvider, "resource name must be non-blank", nil)
	}
	return nil
}

// ValidateStream is the default ResourceLoader.ValidateResource
// behaviour: the stream and its name must both be present.
func ValidateStream(stream ResourceStream) error {
	if stream == nil {
		return newError(KindLoader, "stream must be non-nil", nil)
	}
	if isBlank(stream.Name()) {
		return newError(KindLoader, "stream name must be non-blank", nil)
	}
	return nil
}
