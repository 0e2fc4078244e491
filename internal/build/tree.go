package build

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/base16-builder/internal/catalog"
	"github.com/alexisbeaulieu97/base16-builder/internal/scheme"
)

// VariablesKey holds a scheme's variable map next to its template families.
const VariablesKey = catalog.ReservedFamily

// Artifact is one rendered file addressed by its tree path.
type Artifact struct {
	Slug   string
	Family string
	Subdir string
	File   string
	Text   string
}

// SchemeOutput is the subtree of a single scheme: its variables plus
// family -> subdir -> file name -> rendered text.
type SchemeOutput struct {
	Slug      string
	Variables scheme.Variables
	Families  map[string]map[string]map[string]string
}

// NewSchemeOutput creates an empty subtree for slug.
func NewSchemeOutput(slug string, vars scheme.Variables) *SchemeOutput {
	return &SchemeOutput{
		Slug:      slug,
		Variables: vars,
		Families:  make(map[string]map[string]map[string]string),
	}
}

// Put stores rendered text, overwriting any previous text at the same path.
func (o *SchemeOutput) Put(family, subdir, file, text string) error {
	if family == VariablesKey {
		return fmt.Errorf("template family %q is reserved", VariablesKey)
	}

	subdirs, ok := o.Families[family]
	if !ok {
		subdirs = make(map[string]map[string]string)
		o.Families[family] = subdirs
	}
	files, ok := subdirs[subdir]
	if !ok {
		files = make(map[string]string)
		subdirs[subdir] = files
	}
	files[file] = text
	return nil
}

// Tree aggregates rendered output keyed by scheme slug. It is safe for
// concurrent use.
type Tree struct {
	mu      sync.RWMutex
	schemes map[string]*treeEntry
}

type treeEntry struct {
	seq int
	out *SchemeOutput
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{schemes: make(map[string]*treeEntry)}
}

// Insert stores out under its slug, replacing the whole subtree of an
// earlier scheme with the same slug. seq is the scheme's position in the
// catalog; a later position always wins, whatever order workers finish in.
func (t *Tree) Insert(seq int, out *SchemeOutput) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.schemes[out.Slug]; ok && existing.seq > seq {
		return
	}
	t.schemes[out.Slug] = &treeEntry{seq: seq, out: out}
}

// SetVariables sets the variable map of slug, creating its subtree.
func (t *Tree) SetVariables(slug string, vars scheme.Variables) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entry(slug).out.Variables = vars
}

// Put stores rendered text at slug/family/subdir/file.
func (t *Tree) Put(slug, family, subdir, file, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.entry(slug).out.Put(family, subdir, file, text)
}

// entry returns the subtree of slug, creating it when missing. Callers hold
// the write lock.
func (t *Tree) entry(slug string) *treeEntry {
	e, ok := t.schemes[slug]
	if !ok {
		e = &treeEntry{seq: len(t.schemes), out: NewSchemeOutput(slug, nil)}
		t.schemes[slug] = e
	}
	return e
}

// Get returns the rendered text at slug/family/subdir/file.
func (t *Tree) Get(slug, family, subdir, file string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.schemes[slug]
	if !ok {
		return "", false
	}
	text, ok := e.out.Families[family][subdir][file]
	return text, ok
}

// Variables returns the variable map stored for slug.
func (t *Tree) Variables(slug string) (scheme.Variables, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.schemes[slug]
	if !ok || e.out.Variables == nil {
		return nil, false
	}
	return e.out.Variables, true
}

// Families returns the template family names rendered for slug, sorted.
func (t *Tree) Families(slug string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.schemes[slug]
	if !ok {
		return nil
	}
	return sortedKeys(e.out.Families)
}

// Slugs returns every scheme slug in catalog order.
func (t *Tree) Slugs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.slugs()
}

func (t *Tree) slugs() []string {
	slugs := lo.Keys(t.schemes)
	sort.Slice(slugs, func(i, j int) bool {
		return t.schemes[slugs[i]].seq < t.schemes[slugs[j]].seq
	})
	return slugs
}

// Len returns the number of schemes in the tree.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.schemes)
}

// Artifacts returns every rendered file, ordered by slug in catalog order
// and then by family, subdir and file name.
func (t *Tree) Artifacts() []Artifact {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var artifacts []Artifact
	for _, slug := range t.slugs() {
		families := t.schemes[slug].out.Families
		for _, family := range sortedKeys(families) {
			for _, subdir := range sortedKeys(families[family]) {
				files := families[family][subdir]
				for _, file := range sortedKeys(files) {
					artifacts = append(artifacts, Artifact{
						Slug:   slug,
						Family: family,
						Subdir: subdir,
						File:   file,
						Text:   files[file],
					})
				}
			}
		}
	}
	return artifacts
}

// Map returns the tree as nested plain maps.
func (t *Tree) Map() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]any, len(t.schemes))
	for slug, e := range t.schemes {
		node := make(map[string]any, len(e.out.Families)+1)
		vars := make(map[string]any, len(e.out.Variables))
		for k, v := range e.out.Variables {
			vars[k] = v
		}
		node[VariablesKey] = vars

		for family, subdirs := range e.out.Families {
			familyNode := make(map[string]any, len(subdirs))
			for subdir, files := range subdirs {
				filesNode := make(map[string]any, len(files))
				for file, text := range files {
					filesNode[file] = text
				}
				familyNode[subdir] = filesNode
			}
			node[family] = familyNode
		}
		out[slug] = node
	}
	return out
}

// MarshalJSON encodes the tree as a JSON object.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

// MarshalYAML encodes the tree keeping schemes in catalog order and
// variables in their canonical order.
func (t *Tree) MarshalYAML() (interface{}, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	root := mappingNode()
	for _, slug := range t.slugs() {
		e := t.schemes[slug]

		schemeNode := mappingNode()
		vars := mappingNode()
		for _, key := range e.out.Variables.Keys() {
			appendPair(vars, key, stringNode(e.out.Variables[key]))
		}
		appendPair(schemeNode, VariablesKey, vars)

		for _, family := range sortedKeys(e.out.Families) {
			familyNode := mappingNode()
			for _, subdir := range sortedKeys(e.out.Families[family]) {
				files := e.out.Families[family][subdir]
				filesNode := mappingNode()
				for _, file := range sortedKeys(files) {
					appendPair(filesNode, file, stringNode(files[file]))
				}
				appendPair(familyNode, subdir, filesNode)
			}
			appendPair(schemeNode, family, familyNode)
		}
		appendPair(root, slug, schemeNode)
	}
	return root, nil
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// stringNode always tags values as strings so "0.0" or "29" stay quoted
// strings for YAML consumers.
func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, stringNode(key), value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
