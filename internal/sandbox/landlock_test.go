package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	work := t.TempDir()
	extra := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.Mkdir(extra, 0755))

	p := DefaultPolicy(work, []string{extra, filepath.Join(work, "missing"), extra})
	assert.True(t, p.BestEffort)

	access := make(map[string]AccessLevel)
	for _, perm := range p.Paths {
		_, dup := access[perm.Path]
		assert.False(t, dup, "duplicate %s", perm.Path)
		access[perm.Path] = perm.Access
	}
	assert.Equal(t, AccessReadWrite, access[work])
	assert.Equal(t, AccessReadWrite, access[extra])
	assert.NotContains(t, access, filepath.Join(work, "missing"))
}

func TestPolicyArgs(t *testing.T) {
	p := Policy{
		Paths: []DirectoryPermission{
			{Path: "/usr", Access: AccessReadOnly},
			{Path: "/tmp", Access: AccessReadWrite},
		},
		BestEffort: true,
	}
	assert.Equal(t, []string{"--ro=/usr", "--rw=/tmp"}, p.Args())

	p.BestEffort = false
	assert.Equal(t, []string{"--ro=/usr", "--rw=/tmp", "--strict"}, p.Args())
}

func TestFromFlagsRoundTrip(t *testing.T) {
	p := FromFlags([]string{"/usr", "/etc"}, []string{"/tmp"}, false)
	assert.True(t, p.BestEffort)
	assert.Len(t, p.Paths, 3)
	assert.Equal(t, DirectoryPermission{Path: "/tmp", Access: AccessReadWrite}, p.Paths[2])
}

func TestWrap(t *testing.T) {
	p := Policy{Paths: []DirectoryPermission{{Path: "/usr"}}, BestEffort: true}
	argv := Wrap("/usr/bin/xl", p, []string{"sh", "-c", "echo hi"})
	assert.Equal(t, []string{"/usr/bin/xl", Subcommand, "--ro=/usr", "--", "sh", "-c", "echo hi"}, argv)
}
