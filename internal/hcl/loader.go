// Package hcl loads system manifests written in HCL and translates them
// into the format-agnostic config model.
package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/leon-computer/alpha.component-async/internal/config"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
)

// manifestFile mirrors the top-level HCL structure of a manifest file.
type manifestFile struct {
	Components []componentBlock `hcl:"component,block"`
}

// componentBlock mirrors one component declaration. Everything that is not
// wiring (uses / depends_on) remains in the body for the component factory
// to decode.
type componentBlock struct {
	Type      string            `hcl:"type,label"`
	Name      string            `hcl:"name,label"`
	Uses      map[string]string `hcl:"uses,optional"`
	DependsOn []string          `hcl:"depends_on,optional"`
	Settings  hcl.Body          `hcl:",remain"`
}

// Loader parses .hcl manifests from a file or a directory tree.
type Loader struct {
	parser  *hclparse.Parser
	evalCtx *hcl.EvalContext
}

// NewLoader returns a ready Loader. Manifest expressions can reference
// process environment variables through the env namespace, e.g.
// url = env.FEED_URL.
func NewLoader() *Loader {
	return &Loader{
		parser:  hclparse.NewParser(),
		evalCtx: envContext(os.Environ()),
	}
}

// envContext builds the expression evaluation context exposing the given
// KEY=VALUE pairs as string attributes of an env object.
func envContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// Load reads every manifest under path (a single file or a directory
// searched recursively for .hcl files) and merges the declarations into
// one model. Duplicate component names across files are an error.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := manifestPaths(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl manifest files found at %q", path)
	}
	logger.Debug("loading manifests", "files", paths)

	model := &config.Model{EvalContext: l.evalCtx}
	seen := make(map[string]string)
	for _, filePath := range paths {
		file, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", filePath, diags)
		}

		var manifest manifestFile
		if diags := gohcl.DecodeBody(file.Body, l.evalCtx, &manifest); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", filePath, diags)
		}

		for _, block := range manifest.Components {
			if prior, dup := seen[block.Name]; dup {
				return nil, fmt.Errorf("component %q declared in both %s and %s",
					block.Name, prior, filePath)
			}
			seen[block.Name] = filePath
			model.Components = append(model.Components, &config.Component{
				Type:      block.Type,
				Name:      block.Name,
				Uses:      block.Uses,
				DependsOn: block.DependsOn,
				Settings:  block.Settings,
			})
		}
	}

	logger.Debug("manifests loaded", "components", len(model.Components))
	return model, nil
}

// manifestPaths resolves path to the list of manifest files it denotes.
func manifestPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
