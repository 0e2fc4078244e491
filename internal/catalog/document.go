package catalog

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// ListFile is the source list document at the root of a list repository.
const ListFile = "list.yaml"

var documentExtensions = []string{".yaml", ".yml"}

// ListEntry maps a family name to the locator its repository is fetched from.
type ListEntry struct {
	Name    string
	Locator string
}

// mappingEntry is one key of a YAML mapping with its raw value node.
type mappingEntry struct {
	Key   string
	Value *yaml.Node
}

// decodeMapping decodes a YAML mapping document keeping the document order.
// An empty document decodes to no entries.
func decodeMapping(data []byte) ([]mappingEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	entries := make([]mappingEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be strings", key.Line)
		}
		entries = append(entries, mappingEntry{Key: key.Value, Value: node.Content[i+1]})
	}
	return entries, nil
}

// ReadList reads and decodes the list document of a source list repository.
func ReadList(fs billy.Filesystem) ([]ListEntry, error) {
	data, err := readFile(fs, ListFile)
	if err != nil {
		return nil, b16errors.NewParseError(fs.Join(fs.Root(), ListFile), 0, err)
	}
	return DecodeList(fs.Join(fs.Root(), ListFile), data)
}

// DecodeList decodes a family name to locator mapping.
func DecodeList(path string, data []byte) ([]ListEntry, error) {
	mapping, err := decodeMapping(data)
	if err != nil {
		return nil, b16errors.NewParseError(path, config.ExtractLine(err), err)
	}

	entries := make([]ListEntry, 0, len(mapping))
	for _, item := range mapping {
		if item.Value.Kind != yaml.ScalarNode || strings.TrimSpace(item.Value.Value) == "" {
			return nil, b16errors.NewParseError(path, item.Value.Line, fmt.Errorf("family %q needs a locator string", item.Key))
		}
		entries = append(entries, ListEntry{Name: item.Key, Locator: strings.TrimSpace(item.Value.Value)})
	}
	return entries, nil
}

func readFile(fs billy.Filesystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// documentNames lists the files in dir with a recognised document extension,
// sorted by name. When stem is non-empty only files named stem+ext match.
func documentNames(fs billy.Filesystem, dir, stem string) ([]string, error) {
	infos, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		for _, ext := range documentExtensions {
			if !strings.HasSuffix(name, ext) {
				continue
			}
			if stem != "" && strings.TrimSuffix(name, ext) != stem {
				continue
			}
			names = append(names, name)
			break
		}
	}
	sort.Strings(names)
	return names, nil
}
