package rules

import (
	"github.com/rstms/checkbm"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRulesLoadJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `{
  "checks": ["Super Block", "Inode Map", "Data Map", "Inode"],
  "valid_inode": 2,
  "valid_data": 1
}`
	err := afero.WriteFile(fs, "golden.json", []byte(content), 0600)
	require.Nil(t, err)

	r, err := Load(fs, "golden.json")
	require.Nil(t, err)
	require.Equal(t, checkbm.AllKinds, r.Required)
	require.Equal(t, uint64(2), r.ValidInode)
	require.Equal(t, uint64(1), r.ValidData)
	require.Len(t, r.Checks, 4)
}

func TestRulesLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "checks:\n  - data map\n  - super\n  - data map\nvalid_data: 3\n"
	err := afero.WriteFile(fs, "golden.yaml", []byte(content), 0600)
	require.Nil(t, err)

	r, err := Load(fs, "golden.yaml")
	require.Nil(t, err)
	require.Equal(t, []checkbm.RegionKind{checkbm.DataMap, checkbm.Super, checkbm.DataMap}, r.Required)
	require.Equal(t, uint64(0), r.ValidInode)
	require.Equal(t, uint64(3), r.ValidData)
}

func TestRulesDefaultChecks(t *testing.T) {
	r, err := Parse([]byte(`{"checks": ["root directory"], "valid_inode": 1, "valid_data": 1}`))
	require.Nil(t, err)
	require.Equal(t, checkbm.AllKinds, r.Required)

	r, err = Parse([]byte(`{"valid_inode": 1}`))
	require.Nil(t, err)
	require.Equal(t, checkbm.AllKinds, r.Required)
}

func TestRulesErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(fs, "missing.json")
	require.NotNil(t, err)

	_, err = Parse([]byte(`{"checks": "super", "valid_inode": -1}`))
	require.NotNil(t, err)
}
