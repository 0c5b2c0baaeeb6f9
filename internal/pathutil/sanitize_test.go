package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "report.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o600))
	link := filepath.Join(tmpDir, "link.json")
	require.NoError(t, os.Symlink(existing, link))
	subDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.Mkdir(subDir, 0o755))
	linkDir := filepath.Join(tmpDir, "linkdir")
	require.NoError(t, os.Symlink(subDir, linkDir))

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{name: "existing file accepted", path: existing, want: existing},
		{name: "new file in existing directory accepted", path: filepath.Join(subDir, "new.yaml"), want: filepath.Join(subDir, "new.yaml")},
		{name: "dot-dot segments cleaned", path: filepath.Join(subDir, "..", "report.json"), want: existing},
		{name: "symlink rejected", path: link, wantErr: "symlink"},
		{name: "symlink directory rejected", path: linkDir, wantErr: "symlink"},
		{name: "directory rejected", path: subDir, wantErr: "is a directory"},
		{name: "missing directory rejected", path: filepath.Join(tmpDir, "nope", "report.json"), wantErr: "does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeOutputPath(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("relative path made absolute", func(t *testing.T) {
		got, err := SanitizeOutputPath("report.yaml")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}
