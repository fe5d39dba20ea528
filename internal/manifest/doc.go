// Package manifest loads batch files for ghget. A manifest lists several
// GitHub tree or blob URLs that are fetched one after another in a single
// invocation.
//
// # Manifest Format
//
// Manifests can be written in YAML or JSON:
//
//	sources:
//	  - url: https://github.com/acme/widgets/tree/main/docs
//	  - url: https://github.com/acme/widgets/blob/release/1.0/README.md
//	    output: ./vendor/widgets
//	    force: true
//	options:
//	  continue_on_error: true
//	  output: ./third_party
//
// A source without an output directory uses options.output. When that is
// also empty the configured output directory (usually the working
// directory) applies.
//
// # Usage
//
//	cfg, err := manifest.NewLoader().Load("sources.yaml")
//	if err != nil {
//	    return err
//	}
//	for _, src := range cfg.Sources {
//	    // fetch src.URL into cfg.OutputFor(src, fallback)
//	}
package manifest
