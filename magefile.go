//go:build mage

// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/magefile/mage/mg" // mg contains helpful utility functions, like Deps
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "pmatrix"
	modulePath = "github.com/penny-vault/pmatrix"
	coverAll   = "coverage-all.out"
	coverPkg   = "coverage.out"
)

var ldflags = "-X " + modulePath + "/common.commitHash=$COMMIT_HASH -X " + modulePath + "/common.buildDate=$BUILD_DATE"

// allow user to override go executable by running as GOEXE=xxx mage ... on unix-like systems
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build compiles the pmatrix binary with version information
func Build() error {
	fmt.Println("Building...")
	return runWith(flagEnv(), goexe, "build", "-o", binaryName, "-ldflags", ldflags, buildFlags(), "-v", ".")
}

// Install puts pmatrix in $GOPATH/bin
func Install() error {
	return runWith(flagEnv(), goexe, "install", "-ldflags", ldflags, buildFlags(), ".")
}

func Clean() {
	fmt.Println("Cleaning...")
	for _, fn := range []string{binaryName, coverAll, coverPkg} {
		os.RemoveAll(fn)
	}
}

// Check runs fmt, vet and the race enabled test suite
func Check() {
	mg.Deps(Fmt, Vet)
	mg.Deps(TestRace)
}

func Test() error {
	fmt.Println("Go Test")
	return runCmd(nil, goexe, "test", "./...", buildFlags())
}

func TestRace() error {
	fmt.Println("Go Test Race")
	return runCmd(nil, goexe, "test", "-race", "./...", buildFlags())
}

func Fmt() error {
	fmt.Println("Go Format")

	pkgs, err := pmatrixPackages()
	if err != nil {
		return err
	}

	var unformatted []string
	for _, pkg := range pkgs {
		files, err := filepath.Glob(filepath.Join(pkg, "*.go"))
		if err != nil {
			return err
		}
		for _, f := range files {
			// gofmt exits 0 even when files need formatting; look at the output instead
			s, err := sh.Output("gofmt", "-l", f)
			if err != nil {
				return fmt.Errorf("running gofmt on %q: %w", f, err)
			}
			if s != "" {
				unformatted = append(unformatted, s)
			}
		}
	}

	if len(unformatted) > 0 {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(strings.Join(unformatted, "\n"))
		return errors.New("improperly formatted go files")
	}
	return nil
}

func Vet() error {
	fmt.Println("Go Vet")

	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

// Cover prints per-function coverage for every package
func Cover() error {
	mg.Deps(coverProfile)
	return sh.RunV(goexe, "tool", "cover", "-func="+coverAll)
}

// TestCoverHTML opens the combined coverage report in a browser
func TestCoverHTML() error {
	mg.Deps(coverProfile)
	return sh.Run(goexe, "tool", "cover", "-html="+coverAll)
}

// coverProfile runs each package's tests and concatenates their profiles into coverAll
func coverProfile() error {
	fmt.Println("Generate Test Coverage")

	pkgs, err := pmatrixPackages()
	if err != nil {
		return err
	}

	combined := &bytes.Buffer{}
	combined.WriteString("mode: count\n")
	for _, pkg := range pkgs {
		if err := sh.Run(goexe, "test", "-coverprofile="+coverPkg, "-covermode=count", pkg); err != nil {
			return err
		}
		b, err := os.ReadFile(coverPkg)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		// drop the mode line
		idx := bytes.IndexByte(b, '\n')
		combined.Write(b[idx+1:])
	}

	return os.WriteFile(coverAll, combined.Bytes(), 0644)
}

// Helpers

func buildFlags() []string {
	if runtime.GOOS == "windows" {
		return []string{"-buildmode", "exe"}
	}
	return nil
}

func flagEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

func runCmd(env map[string]string, cmd string, args ...interface{}) error {
	if mg.Verbose() {
		return runWith(env, cmd, args...)
	}
	output, err := sh.OutputWith(env, cmd, argsToStrings(args...)...)
	if err != nil {
		fmt.Fprint(os.Stderr, output)
	}

	return err
}

func runWith(env map[string]string, cmd string, inArgs ...interface{}) error {
	s := argsToStrings(inArgs...)
	return sh.RunWith(env, cmd, s...)
}

var (
	pkgs     []string
	pkgsInit sync.Once
)

func pmatrixPackages() ([]string, error) {
	var err error
	pkgsInit.Do(func() {
		var s string
		s, err = sh.Output(goexe, "list", "./...")
		if err != nil {
			return
		}
		pkgs = strings.Split(s, "\n")
		for i := range pkgs {
			pkgs[i] = "." + strings.TrimPrefix(pkgs[i], modulePath)
		}
	})
	return pkgs, err
}

func argsToStrings(v ...interface{}) []string {
	var args []string
	for _, arg := range v {
		switch v := arg.(type) {
		case string:
			if v != "" {
				args = append(args, v)
			}
		case []string:
			if v != nil {
				args = append(args, v...)
			}
		default:
			panic("invalid type")
		}
	}

	return args
}
