package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/oselabs/wheelwright/export"
	"github.com/oselabs/wheelwright/graph"
	"github.com/oselabs/wheelwright/overrides"
	"github.com/oselabs/wheelwright/pypi"
)

func newFlagSet(stdout io.Writer, name string) *flag.FlagSet {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(stdout)
	return flagSet
}

// parseFlags reports whether help was requested; the flag package has
// already printed the usage text in that case.
func parseFlags(flagSet *flag.FlagSet, args []string) (bool, error) {
	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return false, usageError("%s", err)
	}
	return false, nil
}

func outputFlag(flagSet *flag.FlagSet) *string {
	var path string
	flagSet.StringVar(&path, "o", "", "Write output to this file instead of stdout.")
	flagSet.StringVar(&path, "output", "", "Write output to this file instead of stdout (long form).")
	return &path
}

// withOutput runs fn against stdout or, when path is set, a freshly
// created file. Close errors surface: a truncated export is a failure.
func withOutput(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadGraph(path string) (*graph.DependencyGraph, error) {
	g, err := graph.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dependency graph: %w", err)
	}
	return g, nil
}

func runToConstraints(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "to-constraints")
	output := outputFlag(flagSet)
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usageError("usage: to-constraints [-o FILE] GRAPH")
	}

	g, err := loadGraph(flagSet.Arg(0))
	if err != nil {
		return err
	}
	return withOutput(stdout, *output, func(w io.Writer) error {
		return export.WriteConstraints(w, g)
	})
}

func runToDot(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "to-dot")
	output := outputFlag(flagSet)
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usageError("usage: to-dot [-o FILE] GRAPH")
	}

	g, err := loadGraph(flagSet.Arg(0))
	if err != nil {
		return err
	}
	return withOutput(stdout, *output, func(w io.Writer) error {
		return export.WriteDot(w, g)
	})
}

func runExplainDuplicates(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "explain-duplicates")
	output := outputFlag(flagSet)
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usageError("usage: explain-duplicates [-o FILE] GRAPH")
	}

	g, err := loadGraph(flagSet.Arg(0))
	if err != nil {
		return err
	}
	return withOutput(stdout, *output, func(w io.Writer) error {
		graph.ExplainDuplicates(w, g)
		return nil
	})
}

func runWhy(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "why")
	output := outputFlag(flagSet)
	var versionFlags, reqTypeFlags stringList
	flagSet.Var(&versionFlags, "version", "Limit the report to this version. May be repeated.")
	flagSet.Var(&reqTypeFlags, "requirement-type", "Only trace edges of this requirement type. May be repeated.")
	depth := flagSet.Int("depth", 0, "Recursion depth: 0 shows direct parents, -1 recurses to the root.")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 2 {
		return usageError("usage: why [-o FILE] [--version V] [--depth N] [--requirement-type T] GRAPH PACKAGE")
	}

	versions := make([]pypi.Version, 0, len(versionFlags))
	for _, raw := range versionFlags {
		v, err := pypi.ParseVersion(raw)
		if err != nil {
			return usageError("bad version %q: %s", raw, err)
		}
		versions = append(versions, v)
	}
	reqTypes := make([]graph.RequirementType, 0, len(reqTypeFlags))
	for _, raw := range reqTypeFlags {
		t, err := graph.ParseRequirementType(raw)
		if err != nil {
			return usageError("%s", err)
		}
		reqTypes = append(reqTypes, t)
	}

	g, err := loadGraph(flagSet.Arg(0))
	if err != nil {
		return err
	}
	name := flagSet.Arg(1)

	var nodes []*graph.Node
	for _, node := range g.NodesByName(name) {
		if len(versions) > 0 && !versionListed(node.Version, versions) {
			continue
		}
		nodes = append(nodes, node)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("package %q not found in graph", name)
	}

	return withOutput(stdout, *output, func(w io.Writer) error {
		for _, node := range nodes {
			// Each node gets a header so multi-version reports stay
			// readable.
			fmt.Fprintf(w, "\n%s\n", node.Key)
			graph.FindWhy(w, g, node, *depth, 1, reqTypes)
		}
		return nil
	})
}

func versionListed(v pypi.Version, versions []pypi.Version) bool {
	for _, candidate := range versions {
		if v.Equal(candidate) {
			return true
		}
	}
	return false
}

func runMigrateGraph(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "migrate-graph")
	output := outputFlag(flagSet)
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usageError("usage: migrate-graph [-o FILE] OLD_GRAPH")
	}

	g, err := graph.MigrateLegacyFile(flagSet.Arg(0))
	if err != nil {
		return fmt.Errorf("migrating dependency graph: %w", err)
	}
	return withOutput(stdout, *output, func(w io.Writer) error {
		return g.Serialize(w)
	})
}

func runToMakefile(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "to-makefile")
	output := outputFlag(flagSet)
	wheelServerURL := flagSet.String("wheel-server-url", "", "URL of a wheel server with already built wheels to reuse.")
	settingsFile := flagSet.String("settings-file", "", "HCL file with per-package build settings.")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 2 {
		return usageError("usage: to-makefile [-o FILE] [--wheel-server-url URL] [--settings-file FILE] GRAPH SDIST_SERVER_URL")
	}

	var settings *overrides.Registry
	if *settingsFile != "" {
		var err error
		settings, err = overrides.Load(*settingsFile)
		if err != nil {
			return err
		}
	}

	g, err := loadGraph(flagSet.Arg(0))
	if err != nil {
		return err
	}
	opts := export.MakefileOptions{
		SdistServerURL: flagSet.Arg(1),
		WheelServerURL: *wheelServerURL,
		Settings:       settings,
	}
	return withOutput(stdout, *output, func(w io.Writer) error {
		return export.WriteMakefile(w, g, opts)
	})
}

func runToBazel(stdout io.Writer, args []string) error {
	flagSet := newFlagSet(stdout, "to-bazel")
	output := outputFlag(flagSet)
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usageError("usage: to-bazel [-o FILE] GRAPH")
	}

	g, err := loadGraph(flagSet.Arg(0))
	if err != nil {
		return err
	}
	return withOutput(stdout, *output, func(w io.Writer) error {
		return export.WriteBuildFile(w, g)
	})
}
