package writer

import (
	"fmt"
	"sort"
)

// Format describes a registered output syntax.
type Format struct {
	// Name is a short format name used as identifier for RegisterFormat.
	Name string
	// Ext is a list of file extensions, allowed for file format.
	Ext []string
	// Mime is a list of MIME (content) types, allowed for file format.
	Mime []string
	// Dataset is set if the syntax can hold named graphs.
	Dataset bool
	// New creates a writer for this format.
	New func(opts Options) DatasetWriter
}

var (
	formatsByName = make(map[string]*Format)
	formatsByExt  = make(map[string]*Format)
	formatsByMime = make(map[string]*Format)
)

// RegisterFormat registers a new output format.
func RegisterFormat(f Format) {
	if _, ok := formatsByName[f.Name]; ok {
		panic(fmt.Errorf("format %s is already registered", f.Name))
	}
	formatsByName[f.Name] = &f
	for _, m := range f.Ext {
		if sf, ok := formatsByExt[m]; ok {
			panic(fmt.Errorf("format %s is already registered with extension %s", sf.Name, m))
		}
		formatsByExt[m] = &f
	}
	for _, m := range f.Mime {
		if sf, ok := formatsByMime[m]; ok {
			panic(fmt.Errorf("format %s is already registered with MIME %s", sf.Name, m))
		}
		formatsByMime[m] = &f
	}
}

// FormatByName returns a registered format by its name.
// Will return nil if format is not found.
func FormatByName(name string) *Format {
	return formatsByName[name]
}

// FormatByExt returns a registered format by its file extension.
// Will return nil if format is not found.
func FormatByExt(ext string) *Format {
	return formatsByExt[ext]
}

// FormatByMime returns a registered format by its MIME type.
// Will return nil if format is not found.
func FormatByMime(name string) *Format {
	return formatsByMime[name]
}

// Formats returns a list of all registered formats, sorted by name.
func Formats() []Format {
	list := make([]Format, 0, len(formatsByName))
	for _, f := range formatsByName {
		list = append(list, *f)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
