package eventloop

import (
	"github.com/joeycumines/logiface"
)

// directoryOptions holds configuration options for Directory creation.
type directoryOptions struct {
	logger    *logiface.Logger[logiface.Event]
	hasLogger bool
	onReplace func(ThreadBufferMapping)
}

// DirectoryOption configures a Directory instance.
type DirectoryOption interface {
	applyDirectory(*directoryOptions) error
}

// directoryOptionImpl implements DirectoryOption.
type directoryOptionImpl struct {
	applyDirectoryFunc func(*directoryOptions) error
}

func (x *directoryOptionImpl) applyDirectory(opts *directoryOptions) error {
	return x.applyDirectoryFunc(opts)
}

// WithLogger sets the structured logger for the directory, overriding the
// package-level logger (see [SetLogger]). A nil logger disables directory
// logging entirely.
func WithLogger(logger *logiface.Logger[logiface.Event]) DirectoryOption {
	return &directoryOptionImpl{func(opts *directoryOptions) error {
		opts.logger = logger
		opts.hasLogger = true
		return nil
	}}
}

// WithReplaceHandler registers a callback invoked, under the directory's
// write lock, with the old mapping whenever [Directory.PreRegister] replaces
// an existing entry. A replaced buffer that no consumer ever claimed is
// otherwise leaked (a documented limitation, not an error); the handler is
// the hook for embedders that want to reclaim such buffers.
//
// The handler must not call back into the Directory.
func WithReplaceHandler(handler func(old ThreadBufferMapping)) DirectoryOption {
	return &directoryOptionImpl{func(opts *directoryOptions) error {
		opts.onReplace = handler
		return nil
	}}
}

// resolveDirectoryOptions applies DirectoryOption instances to directoryOptions.
func resolveDirectoryOptions(opts []DirectoryOption) (*directoryOptions, error) {
	cfg := &directoryOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyDirectory(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
