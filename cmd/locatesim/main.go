// Copyright 2026 The Locate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command locatesim drives locators against a topology snapshot loaded
// from a YAML file and reports how requests were distributed.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:          "locatesim",
		Version:      version,
		Short:        "Simulate request locating against a cluster topology",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(context.Background()))
	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("locatesim failed")
		os.Exit(1)
	}
}
