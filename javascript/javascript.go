package javascript

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"

	"github.com/webessex/site/config"
	"github.com/webessex/site/logfields"
)

var isProd = os.Getenv("NODE_ENV") == "production"

// CompileJSTarget bundles every target with esbuild. Sources are resolved
// against siteDir and bundles land in outRoot/<target.OutDir> with the
// content hash in the file name. It returns target name -> public path.
func CompileJSTarget(targets map[string]config.JavascriptTarget, siteDir, outRoot string) (map[string]string, error) {
	emitted := make(map[string]string, len(targets))

	absSite, err := filepath.Abs(siteDir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, targetName := range names {
		target := targets[targetName]
		outDir, err := filepath.Abs(filepath.Join(outRoot, filepath.FromSlash(target.OutDir)))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		sourcemap := api.SourceMapExternal
		if isProd {
			sourcemap = api.SourceMapNone
		}

		result := api.Build(api.BuildOptions{
			EntryPoints:       []string{target.Source},
			AbsWorkingDir:     absSite,
			Bundle:            true,
			MinifyWhitespace:  true,
			MinifyIdentifiers: true,
			MinifySyntax:      true,
			Engines: []api.Engine{
				{Name: api.EngineChrome, Version: "100"},
				{Name: api.EngineFirefox, Version: "100"},
				{Name: api.EngineSafari, Version: "15"},
				{Name: api.EngineEdge, Version: "100"},
			},
			Sourcemap: sourcemap,
			Write:     false,
			Outdir:    outDir,
		})

		if len(result.Errors) > 0 {
			msgs := make([]string, 0, len(result.Errors))
			for _, m := range result.Errors {
				msgs = append(msgs, m.Text)
			}
			return nil, errors.Errorf("bundling %s: %s", targetName, strings.Join(msgs, "; "))
		}

		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return nil, errors.WithStack(err)
		}

		// Scripts first so their hash is known when the map is renamed.
		var regularFiles []api.OutputFile
		var mapFiles []api.OutputFile
		for _, out := range result.OutputFiles {
			if strings.EqualFold(filepath.Ext(out.Path), ".map") {
				mapFiles = append(mapFiles, out)
			} else {
				regularFiles = append(regularFiles, out)
			}
		}
		sortedFiles := append(regularFiles, mapFiles...)

		srcToHash := make(map[string]string)

		for _, out := range sortedFiles {
			base := filepath.Base(out.Path)
			ext := base[strings.Index(base, "."):]
			isMap := ext == ".js.map"
			fileNameWithoutExt := base[:len(base)-len(ext)]

			var hashForFileName string
			if isMap {
				hashForFileName = srcToHash[fileNameWithoutExt]
				if hashForFileName == "" {
					return nil, errors.Errorf("source map %s can not find hash for its source file", fileNameWithoutExt)
				}
			} else {
				hashForFileName = strings.ReplaceAll(out.Hash, "/", "")
				srcToHash[fileNameWithoutExt] = hashForFileName
			}

			name := fmt.Sprintf("%s_%s%s", fileNameWithoutExt, hashForFileName, ext)
			newPath := filepath.Join(filepath.Dir(out.Path), name)

			contents := out.Contents
			if !isMap && sourcemap != api.SourceMapNone {
				contents = append(append([]byte{}, contents...), []byte(fmt.Sprintf("//# sourceMappingURL=%s.map", name))...)
			}

			if err := os.WriteFile(newPath, contents, 0o644); err != nil {
				return nil, errors.Wrapf(err, "writing %s", newPath)
			}

			if !isMap {
				emitted[targetName] = "/" + path.Join(strings.Trim(filepath.ToSlash(target.OutDir), "/"), name)
				slog.Debug("Bundled script", logfields.Target(targetName), logfields.File(newPath))
			}
		}
	}

	return emitted, nil
}

// ScriptsFor maps a route's javascript deps to emitted public paths,
// skipping deps that were not bundled.
func ScriptsFor(deps []string, emitted map[string]string) []string {
	var scripts []string
	for _, dep := range deps {
		if src, ok := emitted[dep]; ok {
			scripts = append(scripts, src)
		}
	}
	return scripts
}
