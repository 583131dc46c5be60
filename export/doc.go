// Package export derives downstream artifacts from a finished dependency
// graph. Every writer here is read-only over the graph and deterministic:
// the same graph always produces the same bytes.
//
// Four derivations are supported:
//
//   - WriteDot: a Graphviz description of the full graph, with
//     install-closure nodes and build-only edges styled apart.
//   - WriteConstraints: the install closure flattened to a name==version
//     pinning file for an installer.
//   - WriteMakefile: the build plan as a Makefile, one build/wheel/install
//     target triple per distribution.
//   - WriteBuildFile: the same build plan as a Bazel BUILD file, rendered
//     through github.com/bazelbuild/buildtools.
package export
