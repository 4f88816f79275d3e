// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config resolves writer options and namespace prefixes from viper.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/spf13/viper"

	"github.com/cayleygraph/rdfwriter/writer"
)

const (
	KeyCompression = "writer.compression"
	KeyPrettyPrint = "writer.pretty_print"
	KeyHighSpeed   = "writer.high_speed"
	KeyThreads     = "writer.threads"
	KeyBOM         = "writer.bom"
	KeyNamespaces  = "namespaces"
	KeyStdPrefixes = "std_prefixes"
	KeyBase        = "base"
	KeyLoadBatch   = "load.batch"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
const EnvPrefix = "RDFWRITER"

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	def := writer.DefaultOptions()
	v.SetDefault(KeyCompression, def.Compression.String())
	v.SetDefault(KeyPrettyPrint, def.PrettyPrint)
	v.SetDefault(KeyHighSpeed, def.HighSpeed)
	v.SetDefault(KeyThreads, def.Threads)
	v.SetDefault(KeyBOM, def.BOM)
	v.SetDefault(KeyStdPrefixes, true)
	v.SetDefault(KeyLoadBatch, 10000)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads a config file into v. A missing file name is not an error.
func Load(v *viper.Viper, file string) error {
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file %q: %v", file, err)
	}
	return nil
}

// WriterOptions builds writer options from v.
func WriterOptions(v *viper.Viper) (writer.Options, error) {
	opts := writer.DefaultOptions()
	if s := v.GetString(KeyCompression); s != "" {
		c, err := writer.ParseCompressionLevel(s)
		if err != nil {
			return opts, err
		}
		opts.Compression = c
	}
	opts.PrettyPrint = v.GetBool(KeyPrettyPrint)
	opts.HighSpeed = v.GetBool(KeyHighSpeed)
	opts.Threads = v.GetInt(KeyThreads)
	if opts.Threads < 1 {
		return opts, fmt.Errorf("%s must be at least 1, got %d", KeyThreads, opts.Threads)
	}
	opts.BOM = v.GetBool(KeyBOM)
	return opts, nil
}

// Prefix binds a short prefix (without the colon) to a namespace IRI.
type Prefix struct {
	Name string
	IRI  string
}

// StdPrefixes are bound when std_prefixes is enabled.
var StdPrefixes = []Prefix{
	{Name: "rdf", IRI: rdf.NS},
	{Name: "rdfs", IRI: rdfs.NS},
	{Name: "xsd", IRI: "http://www.w3.org/2001/XMLSchema#"},
	{Name: "owl", IRI: "http://www.w3.org/2002/07/owl#"},
}

// Prefixes returns the configured prefixes sorted by name. Explicit entries
// override the standard ones.
func Prefixes(v *viper.Viper) []Prefix {
	m := make(map[string]string)
	if v.GetBool(KeyStdPrefixes) {
		for _, p := range StdPrefixes {
			m[p.Name] = p.IRI
		}
	}
	for name, iri := range v.GetStringMapString(KeyNamespaces) {
		m[strings.TrimSuffix(name, ":")] = iri
	}
	out := make([]Prefix, 0, len(m))
	for name, iri := range m {
		out = append(out, Prefix{Name: name, IRI: iri})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParsePrefix parses a "name=iri" flag value.
func ParsePrefix(s string) (Prefix, error) {
	i := strings.IndexByte(s, '=')
	if i <= 0 || i == len(s)-1 {
		return Prefix{}, fmt.Errorf("invalid prefix %q, expected name=iri", s)
	}
	return Prefix{Name: strings.TrimSuffix(s[:i], ":"), IRI: s[i+1:]}, nil
}
