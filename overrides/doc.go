// Package overrides loads per-package build settings from an HCL file.
//
// Most distributions build cleanly with defaults, so the settings file
// only names the exceptions. Each package block may override the
// expected source archive name, add build requirements the upstream
// metadata is missing, and inject environment variables into the build
// command:
//
//	package "torch" {
//	  expected_sdist_name = "pytorch-${version}"
//	  build_requires      = ["cmake", "ninja"]
//	  env = {
//	    USE_CUDA = "0"
//	  }
//	}
//
// Package names are canonicalized on load and on lookup, so block
// labels match any spelling of the same distribution name.
package overrides
