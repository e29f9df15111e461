package checkbm

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestClassifyPriority(t *testing.T) {
	cases := map[string]RegionKind{
		"Super(1)":             Super,
		"SUPER BLOCK":          Super,
		"Inode Map(1)":         InodeMap,
		"Data Map(1)":          DataMap,
		"Inode(585)":           InodeTable,
		"super inode map":      Super,
		"inode data map":       InodeMap,
		"map of data":          DataMap,
		"inode table":          InodeTable,
		"bitmap for inode use": InodeMap,
	}
	for text, expected := range cases {
		kind, ok := Classify(text)
		require.True(t, ok, text)
		require.Equal(t, expected, kind, text)
	}

	for _, text := range []string{"", "Data(*)", "root", "map"} {
		_, ok := Classify(text)
		require.False(t, ok, text)
	}
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "super", Super.String())
	require.Equal(t, "inode_map", InodeMap.String())
	require.Equal(t, "data_map", DataMap.String())
	require.Equal(t, "inode", InodeTable.String())
	require.Equal(t, "unknown", RegionKind(42).String())
	require.Equal(t, []string{"data", "map"}, DataMap.Tokens())
	require.False(t, RegionKind(42).Matches("anything"))
}

func TestNormalizeChecks(t *testing.T) {
	kinds := NormalizeChecks([]string{"inode map", "nothing", "super", "inode map", "inodes"})
	require.Equal(t, []RegionKind{InodeMap, Super, InodeMap, InodeTable}, kinds)

	require.Equal(t, AllKinds, NormalizeChecks(nil))
	require.Equal(t, AllKinds, NormalizeChecks([]string{"root dir"}))

	// the fallback must not alias AllKinds
	kinds = NormalizeChecks(nil)
	kinds[0] = DataMap
	require.Equal(t, Super, AllKinds[0])
}

func TestRuleSetRequires(t *testing.T) {
	r := NewRuleSet([]string{"super", "data map"}, 2, 1)
	require.True(t, r.Requires(Super))
	require.True(t, r.Requires(DataMap))
	require.False(t, r.Requires(InodeMap))
	require.False(t, r.Requires(InodeTable))
	require.Equal(t, uint64(2), r.ValidInode)
	require.Equal(t, uint64(1), r.ValidData)
}

func TestErrorMessages(t *testing.T) {
	var err error = &GoldenLayoutMismatch{Kind: DataMap}
	require.Contains(t, err.Error(), "data_map")

	err = &InodeMapError{Expected: 2, Actual: 3}
	require.Contains(t, err.Error(), "expected: 2")
	require.Contains(t, err.Error(), "actual: 3")

	err = &DataMapError{NoBlocks: true}
	require.Contains(t, err.Error(), "no allocated data block")

	err = &DataError{Block: 18, Reason: ReasonNotWritten}
	require.Contains(t, err.Error(), ReasonNotWritten)

	err = &LayoutFileError{Reason: "no row"}
	require.Equal(t, "layout file error: no row", err.Error())

	var dataErr *DataError
	require.False(t, errors.As(err, &dataErr))
}
