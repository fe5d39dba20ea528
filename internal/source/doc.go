// Package source turns a GitHub tree/blob URL into a file or directory in
// the caller's working directory.
//
// Pipeline:
//   - Resolve: URL parsing and host/shape validation
//   - Disambiguate: split of the URL remainder into branch and path, using the
//     branch list advertised by the remote
//   - Scratch: exclusive, locked scratch directory for the clone
//   - Fetcher: go-git based full clone over SSH
//   - Checkout: moves the clone onto the resolved branch
//   - Extract: moves the requested entry out of the clone
//
// Usage:
//
//	ref, err := source.Resolve(rawURL)
//	branches, err := fetcher.ListBranches(ctx, target, auth)
//	loc, err := source.Disambiguate(ref.Remainder, branches)
package source
