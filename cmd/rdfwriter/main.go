// Copyright 2026 The Cayley Authors. All rights reserved.
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

package main

import (
	"flag"
	"os"

	"github.com/cayleygraph/rdfwriter/clog"
	_ "github.com/cayleygraph/rdfwriter/clog/glog"
	"github.com/cayleygraph/rdfwriter/cmd/rdfwriter/command"
)

// Filled in by `go build ldflags="-X main.Version `ver`"`.
var (
	BuildDate string
	Version   string
)

func main() {
	_ = flag.Set("logtostderr", "true")
	command.Version, command.BuildDate = Version, BuildDate

	root := command.NewRootCmd()
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := root.Execute(); err != nil {
		clog.Errorf("%v", err)
		os.Exit(1)
	}
}
