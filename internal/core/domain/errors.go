package domain

import "go.trai.ch/zerr"

var (
	// ErrNotReady is returned when children are requested while a retrieval round is pending
	// or the cache is stale. Callers retry after the Validate callback fires.
	ErrNotReady = zerr.New("children not ready, retry later")

	// ErrFetchFailed is returned when an upstream asynchronous source fails.
	ErrFetchFailed = zerr.New("upstream fetch failed")

	// ErrMemoryMapUnavailable is the fetch error reported for contexts without a memory map.
	ErrMemoryMapUnavailable = zerr.New("memory map not available")

	// ErrChildSetDisposed is stored on a child set whose parent has been disposed.
	ErrChildSetDisposed = zerr.New("child set disposed")

	// ErrRoundNotCommitted is raised when a strategy reports a finished round without committing.
	ErrRoundNotCommitted = zerr.New("retrieval round finished without commit")

	// ErrNodeExists is raised when a node identity is registered twice.
	ErrNodeExists = zerr.New("node already registered")

	// ErrNodeNotFound is raised when a required node is missing from the registry.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrModelDisposed is returned by operations on a disposed model.
	ErrModelDisposed = zerr.New("model disposed")

	// ErrNotMovable is returned when a manual position is requested for a node that does not accept one.
	ErrNotMovable = zerr.New("node cannot be moved")

	// ErrUnknownColumn is returned when a column identifier is not part of the module column set.
	ErrUnknownColumn = zerr.New("unknown column")

	// ErrInvalidPosition is returned when a manual sort position is negative.
	ErrInvalidPosition = zerr.New("invalid sort position")

	// ErrExpressionNotFound is returned when an expression index is out of range.
	ErrExpressionNotFound = zerr.New("expression not found")

	// ErrEmptyExpression is returned when an expression with empty text is added.
	ErrEmptyExpression = zerr.New("expression text is empty")

	// ErrConfigReadFailed is returned when the session file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read session file")

	// ErrConfigParseFailed is returned when the session file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse session file")

	// ErrUnsupportedVersion is returned when the session file version is unknown.
	ErrUnsupportedVersion = zerr.New("unsupported session file version")

	// ErrMissingContextID is returned when a context in the session file has no id.
	ErrMissingContextID = zerr.New("context id is required")

	// ErrDuplicateContextID is returned when two contexts share the same id.
	ErrDuplicateContextID = zerr.New("duplicate context id")

	// ErrReservedContextID is returned when a context id collides with the
	// identity of the expression list or of a generated child.
	ErrReservedContextID = zerr.New("context id is reserved")

	// ErrInvalidRegionFlag is returned when a region flag is not one of read, write, exec.
	ErrInvalidRegionFlag = zerr.New("invalid region flag, expected 'read', 'write' or 'exec'")

	// ErrInvalidLatency is returned when a context latency cannot be parsed.
	ErrInvalidLatency = zerr.New("invalid latency")

	// ErrStoreReadFailed is returned when the layout store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read layout store")

	// ErrStoreDecodeFailed is returned when the layout store cannot be decoded.
	ErrStoreDecodeFailed = zerr.New("failed to decode layout store")

	// ErrStoreEncodeFailed is returned when the layout cannot be encoded.
	ErrStoreEncodeFailed = zerr.New("failed to encode layout")

	// ErrStoreWriteFailed is returned when the layout store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write layout store")

	// ErrWatchFailed is returned when the session file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch session file")
)
