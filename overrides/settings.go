package overrides

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/oselabs/wheelwright/pypi"
)

// PackageSettings is the resolved settings block for one distribution.
type PackageSettings struct {
	// Name is the canonicalized distribution name.
	Name string

	// BuildRequires lists requirements to add on top of whatever the
	// distribution's own metadata declares.
	BuildRequires []pypi.Requirement

	// Env holds environment variables to set for the build command.
	Env map[string]string

	sdistName hcl.Expression
}

// SdistName evaluates the expected source archive base name for the
// given version. The expression may reference the version variable;
// without an override the conventional name-version form is used.
func (p *PackageSettings) SdistName(version pypi.Version) (string, error) {
	if p == nil || p.sdistName == nil {
		return fmt.Sprintf("%s-%s", p.Name, version), nil
	}
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"version": cty.StringVal(version.String()),
		},
	}
	val, diags := p.sdistName.Value(ctx)
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating expected_sdist_name for %s: %w", p.Name, diags)
	}
	if val.IsNull() || val.Type() != cty.String {
		return "", fmt.Errorf("expected_sdist_name for %s is not a string", p.Name)
	}
	return val.AsString(), nil
}

// exprWritten reports whether an optional attribute was actually present
// in the block. gohcl fills absent expression fields with a synthetic
// expression that evaluates to a null value, not with nil.
func exprWritten(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	val, diags := expr.Value(&hcl.EvalContext{
		Variables: map[string]cty.Value{
			"version": cty.UnknownVal(cty.String),
		},
	})
	if diags.HasErrors() {
		return true
	}
	return !val.IsNull()
}

// Registry holds the settings for every package named in one settings
// file. The zero registry and the nil registry behave as an empty file.
type Registry struct {
	packages map[string]*PackageSettings
}

// Lookup returns the settings for a distribution, or nil when the file
// does not mention it. The name may be given in any spelling.
func (r *Registry) Lookup(name string) *PackageSettings {
	if r == nil {
		return nil
	}
	return r.packages[pypi.CanonicalizeName(name)]
}

// Names returns the canonicalized package names with settings, in no
// particular order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.packages))
	for name := range r.packages {
		names = append(names, name)
	}
	return names
}

type settingsRoot struct {
	Packages []*packageBlock `hcl:"package,block"`
}

type packageBlock struct {
	Name              string            `hcl:"name,label"`
	ExpectedSdistName hcl.Expression    `hcl:"expected_sdist_name,optional"`
	BuildRequires     []string          `hcl:"build_requires,optional"`
	Env               map[string]string `hcl:"env,optional"`
}

// Load reads and decodes a settings file from disk.
func Load(path string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, diags)
	}
	return decode(file, path)
}

// Parse decodes settings from an in-memory buffer. The filename is only
// used in diagnostics.
func Parse(src []byte, filename string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing settings %s: %w", filename, diags)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*Registry, error) {
	var root settingsRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding settings %s: %w", filename, diags)
	}

	registry := &Registry{packages: make(map[string]*PackageSettings, len(root.Packages))}
	for _, block := range root.Packages {
		name := pypi.CanonicalizeName(block.Name)
		if _, ok := registry.packages[name]; ok {
			return nil, fmt.Errorf("%s: duplicate package block for %s", filename, name)
		}

		settings := &PackageSettings{
			Name: name,
			Env:  block.Env,
		}
		if exprWritten(block.ExpectedSdistName) {
			settings.sdistName = block.ExpectedSdistName
		}
		for _, raw := range block.BuildRequires {
			req, err := pypi.ParseRequirement(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: package %s: bad build requirement %q: %w", filename, name, raw, err)
			}
			settings.BuildRequires = append(settings.BuildRequires, req)
		}
		registry.packages[name] = settings
	}
	return registry, nil
}
