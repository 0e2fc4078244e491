package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const tomorrowNightYAML = `scheme: "Tomorrow Night"
author: "Chris Kempson (http://chriskempson.com)"
base00: "1d1f21"
base01: "282a2e"
base02: "373b41"
base03: "969896"
base04: "b4b7b4"
base05: "c5c8c6"
base06: "e0e0e0"
base07: "ffffff"
base08: "cc6666"
base09: "de935f"
base0A: "f0c674"
base0B: "b5bd68"
base0C: "8abeb7"
base0D: "81a2be"
base0E: "b294bb"
base0F: "a3685a"
`

const oceanYAML = `scheme: "Ocean"
author: ""
base00: "2b303b"
base01: "343d46"
base02: "4f5b66"
base03: "65737e"
base04: "a7adba"
base05: "c0c5ce"
base06: "dfe1e8"
base07: "eff1f5"
base08: "bf616a"
base09: "d08770"
base0A: "ebcb8b"
base0B: "a3be8c"
base0C: "96b5b4"
base0D: "8fa1b3"
base0E: "b48ead"
base0F: "ab7967"
`

type fixtureSources struct {
	cacheDir  string
	schemes   string
	templates string
}

// writeFixtureSources lays out local scheme and template lists whose
// families are plain directories, so no command touches the network.
func writeFixtureSources(t *testing.T) fixtureSources {
	t.Helper()

	root := t.TempDir()
	write := func(rel, contents string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}

	write("families/tomorrow/tomorrow-night.yaml", tomorrowNightYAML)
	write("families/ocean/ocean.yaml", oceanYAML)
	write("schemes/list.yaml",
		"tomorrow: "+filepath.Join(root, "families", "tomorrow")+"\n"+
			"ocean: "+filepath.Join(root, "families", "ocean")+"\n")

	write("families/demo/templates/config.yaml", "default:\n  extension: .conf\n  output: colors\n")
	write("families/demo/templates/default.mustache", "bg {{base00-hex}} {{scheme-name}}\n")
	write("templates/list.yaml", "demo: "+filepath.Join(root, "families", "demo")+"\n")

	return fixtureSources{
		cacheDir:  filepath.Join(root, "cache"),
		schemes:   filepath.Join(root, "schemes"),
		templates: filepath.Join(root, "templates"),
	}
}

func (f fixtureSources) args(args ...string) []string {
	return append(args,
		"--cache-dir", f.cacheDir,
		"--schemes-source", f.schemes,
		"--templates-source", f.templates,
	)
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
