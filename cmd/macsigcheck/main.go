// Copyright 2025 The macsigcheck Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/dsedivec/macsigcheck/cmd/macsigcheck/cli"
	"github.com/dsedivec/macsigcheck/pkg/tracing"
)

// ExitCoder lets an error carry a specific process exit status.
type ExitCoder interface {
	error
	ExitCode() int
}

func main() {
	log.SetFlags(0)

	if err := tracing.InitFromEnv(); err != nil {
		log.Fatalf("error initializing tracing: %v", err)
	}

	err := cli.New().Execute()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if terr := tracing.Shutdown(shutdownCtx); terr != nil {
		log.Printf("error shutting down tracing: %v", terr)
	}

	if err != nil {
		var ec ExitCoder
		if errors.As(err, &ec) {
			log.Printf("%v", err)
			os.Exit(ec.ExitCode())
		}
		log.Fatalf("error during command execution: %v", err)
	}
}
