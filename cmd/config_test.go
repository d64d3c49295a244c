package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidrisk/raidrisk/array"
	"github.com/raidrisk/raidrisk/risk"
)

const validConfig = `
disks:
  - name: d1
    dir: /mnt/disk1
  - name: d2
    dir: /mnt/disk2
parity:
  - /mnt/parity1/snapraid.parity
  - /mnt/parity2/snapraid.2-parity
smartctl: /usr/sbin/smartctl
`

func TestParseConfig_Valid(t *testing.T) {
	cfg, err := ParseConfig([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, "/usr/sbin/smartctl", cfg.Smartctl)
	assert.Empty(t, cfg.Title)
	assert.Equal(t, &array.Array{
		Disks: []array.Disk{
			{Name: "d1", Dir: "/mnt/disk1"},
			{Name: "d2", Dir: "/mnt/disk2"},
		},
		Parity: []array.Parity{
			{Path: "/mnt/parity1/snapraid.parity"},
			{Path: "/mnt/parity2/snapraid.2-parity"},
		},
	}, cfg.Array())
}

func TestParseConfig_UnknownField_Rejected(t *testing.T) {
	// GIVEN a typo in a disk entry
	doc := strings.Replace(validConfig, "dir: /mnt/disk2", "directory: /mnt/disk2", 1)

	// WHEN parsed
	_, err := ParseConfig([]byte(doc))

	// THEN the strict decoder names the unknown key
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestParseConfig_Empty(t *testing.T) {
	_, err := ParseConfig(nil)
	assert.EqualError(t, err, "config is empty")
}

func TestConfigValidate(t *testing.T) {
	disks := func(n int) []DiskConfig {
		var out []DiskConfig
		for i := 0; i < n; i++ {
			out = append(out, DiskConfig{Name: "d" + string(rune('1'+i)), Dir: "/mnt/d" + string(rune('1'+i))})
		}
		return out
	}
	parity := func(n int) []string {
		var out []string
		for i := 0; i < n; i++ {
			out = append(out, "/mnt/p"+string(rune('1'+i))+"/snapraid.parity")
		}
		return out
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"minimal", Config{Disks: disks(1), Parity: parity(1)}, ""},
		{"six parity", Config{Disks: disks(1), Parity: parity(6)}, ""},
		{"no disks", Config{Parity: parity(1)}, "disks: at least one disk"},
		{"unnamed disk", Config{Disks: []DiskConfig{{Dir: "/mnt/d1"}}, Parity: parity(1)}, "disks[0].name"},
		{"duplicate disk", Config{Disks: []DiskConfig{{Name: "d1", Dir: "/a"}, {Name: "d1", Dir: "/b"}}, Parity: parity(1)}, `duplicate disk "d1"`},
		{"disk without dir", Config{Disks: []DiskConfig{{Name: "d1"}}, Parity: parity(1)}, "disks[0].dir"},
		{"no parity", Config{Disks: disks(2)}, "parity: at least one"},
		{"empty parity", Config{Disks: disks(2), Parity: []string{""}}, "parity[0]"},
		{"duplicate parity", Config{Disks: disks(2), Parity: []string{"/p/f", "/p/f"}}, "parity[1]: duplicate"},
		{"seven parity", Config{Disks: disks(2), Parity: parity(7)}, "parity: invalid redundancy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate_TooManyParity_IsRedundancyError(t *testing.T) {
	cfg := Config{Disks: []DiskConfig{{Name: "d1", Dir: "/a"}}, Parity: []string{"/1/p", "/2/p", "/3/p", "/4/p", "/5/p", "/6/p", "/7/p"}}
	err := cfg.Validate()
	assert.True(t, errors.Is(err, risk.ErrRedundancy))
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raidrisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Disks, 2)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_InvalidFile_NamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disks: []\nparity: [/p/f]\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "disks")
}
