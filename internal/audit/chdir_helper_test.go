package audit_test

import (
	"os"
	"testing"
)

// changeWorkingDirectoryForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func changeWorkingDirectoryForTest(testInstance testing.TB, directory string) {
	testInstance.Helper()
	originalDirectory, getwdError := os.Getwd()
	if getwdError != nil {
		testInstance.Fatalf("getwd: %v", getwdError)
	}
	if chdirError := os.Chdir(directory); chdirError != nil {
		testInstance.Fatalf("chdir %s: %v", directory, chdirError)
	}
	testInstance.Cleanup(func() {
		if restoreError := os.Chdir(originalDirectory); restoreError != nil {
			testInstance.Fatalf("restore working directory %s: %v", originalDirectory, restoreError)
		}
	})
}
