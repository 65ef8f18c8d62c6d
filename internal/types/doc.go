// Package types holds the runtime descriptor tree shared by the encoder and
// decoder. The public API re-exports these through the root package; callers
// never import this package directly.
package types
