// Package testing prepares the process for package tests: it moves the working
// directory to the project root so logs/ and sqlite files land in one place,
// and marks the process as a test run.
//
// Import it for its side effects only:
//
//	import (
//		_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
//	)
package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	root := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}

	if _, found := os.LookupEnv("GO_ENV"); !found {
		_ = os.Setenv("GO_ENV", "test")
	}
}
