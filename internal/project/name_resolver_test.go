package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/projanitor/internal/filesystem"
	"github.com/temirov/projanitor/internal/project"
)

func TestNameResolverResolve(testInstance *testing.T) {
	testCases := []struct {
		name         string
		descriptor   *string
		expectedName string
	}{
		{name: "plain_declaration", descriptor: stringPointer("cmake_minimum_required(VERSION 3.16)\nproject(firmware)\n"), expectedName: "firmware"},
		{name: "declaration_with_languages", descriptor: stringPointer("project( blink_demo C CXX )\n"), expectedName: "blink_demo"},
		{name: "case_insensitive", descriptor: stringPointer("PROJECT(Sensor)\n"), expectedName: "Sensor"},
		{name: "quoted_name", descriptor: stringPointer("project(\"gateway\" VERSION 1.0)\n"), expectedName: "gateway"},
		{name: "first_declaration_wins", descriptor: stringPointer("project(first)\nproject(second)\n"), expectedName: "first"},
		{name: "no_declaration", descriptor: stringPointer("add_subdirectory(src)\n"), expectedName: project.FallbackName},
		{name: "empty_declaration", descriptor: stringPointer("project()\n"), expectedName: project.FallbackName},
		{name: "descriptor_missing", descriptor: nil, expectedName: project.FallbackName},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			rootDirectory := testInstance.TempDir()
			if testCase.descriptor != nil {
				require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, "CMakeLists.txt"), []byte(*testCase.descriptor), 0o644))
			}

			resolver := project.NewNameResolver(filesystem.OSFileSystem{}, zap.NewNop())
			require.Equal(testInstance, testCase.expectedName, resolver.Resolve(rootDirectory))
		})
	}
}

func TestNameResolverWarnsOnMissingDescriptor(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	resolver := project.NewNameResolver(filesystem.OSFileSystem{}, zap.New(observedCore))

	require.Equal(testInstance, project.FallbackName, resolver.Resolve(testInstance.TempDir()))
	require.Equal(testInstance, 1, observedLogs.Len())
}

func stringPointer(value string) *string {
	return &value
}
