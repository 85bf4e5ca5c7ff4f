package collections_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/projanitor/internal/collections"
)

const (
	testFirstSourcePathConstant  = "/project/src/main.c"
	testSecondSourcePathConstant = "/project/backup/main.c"
	testUtilityFileNameConstant  = "utils.c"
)

func TestMultiMapAppendsValuesForRepeatedKeys(testInstance *testing.T) {
	index := collections.NewMultiMap()

	require.True(testInstance, index.Add(testSourceFileNameConstant, testFirstSourcePathConstant))
	require.True(testInstance, index.Add(testSourceFileNameConstant, testSecondSourcePathConstant))

	values, exists := index.Values(testSourceFileNameConstant)
	require.True(testInstance, exists)
	require.Equal(testInstance, []string{testFirstSourcePathConstant, testSecondSourcePathConstant}, values)
	require.Equal(testInstance, 1, index.Len())
}

func TestMultiMapAddUniqueSkipsRecordedPairs(testInstance *testing.T) {
	index := collections.NewMultiMap()

	require.True(testInstance, index.AddUnique(testHeaderFileNameConstant, testFirstSourcePathConstant))
	require.False(testInstance, index.AddUnique(testHeaderFileNameConstant, testFirstSourcePathConstant))

	values, _ := index.Values(testHeaderFileNameConstant)
	require.Equal(testInstance, []string{testFirstSourcePathConstant}, values)
}

func TestMultiMapKeysAreCaseSensitive(testInstance *testing.T) {
	index := collections.NewMultiMap()
	index.Add(testSourceFileNameConstant, testFirstSourcePathConstant)

	require.True(testInstance, index.Contains(testSourceFileNameConstant))
	require.False(testInstance, index.Contains("MAIN.C"))
}

func TestMultiMapIgnoresEmptyKeysAndValues(testInstance *testing.T) {
	index := collections.NewMultiMap()

	require.False(testInstance, index.Add("", testFirstSourcePathConstant))
	require.False(testInstance, index.Add(testUtilityFileNameConstant, ""))

	require.False(testInstance, index.Contains(testUtilityFileNameConstant))
	require.Empty(testInstance, index.Keys())
	require.Zero(testInstance, index.Len())
	_, exists := index.Values(testUtilityFileNameConstant)
	require.False(testInstance, exists)
}

func TestMultiMapKeysListsEveryPopulatedKey(testInstance *testing.T) {
	index := collections.NewMultiMap()
	index.Add(testUtilityFileNameConstant, testFirstSourcePathConstant)
	index.Add(testHeaderFileNameConstant, testFirstSourcePathConstant)
	index.Add(testSourceFileNameConstant, testSecondSourcePathConstant)

	require.ElementsMatch(testInstance, []string{testUtilityFileNameConstant, testHeaderFileNameConstant, testSourceFileNameConstant}, index.Keys())
}
