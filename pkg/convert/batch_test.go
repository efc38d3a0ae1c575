package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/iconport/pkg/extract"
	"github.com/gnana997/iconport/pkg/icon"
)

func runBatch(t *testing.T, input, output string, mutate func(*Options)) *Summary {
	t.Helper()
	opts := DefaultOptions()
	opts.InputDir = input
	opts.OutputDir = output
	if mutate != nil {
		mutate(&opts)
	}
	summary, err := newTestConverter(t, opts).Run(context.Background())
	require.NoError(t, err)
	return summary
}

func TestDiscover(t *testing.T) {
	files, err := Discover(iconsDir, DefaultInclude, DefaultExclude)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"arrow-trending-up.tsx", "cursor-arrow-rays.tsx", "square-3-stack-3d.tsx"}, names)
}

func TestDiscover_Errors(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), DefaultInclude, DefaultExclude)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Discover(iconsDir, []string{"[a"}, nil)
	assert.Error(t, err)
}

func TestEligible(t *testing.T) {
	testCases := []struct {
		name string
		want bool
	}{
		{"bell.tsx", true},
		{"bell.jsx", true},
		{"bell.ts", false},
		{"index.tsx", false},
		{"index.jsx", false},
		{"types.tsx", false},
		{"icon.d.ts", false},
		{"README.md", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Eligible(tc.name, DefaultInclude, DefaultExclude), tc.name)
	}
	assert.True(t, Eligible("anything", nil, nil))
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "solid", "icons")
	summary := runBatch(t, iconsDir, out, nil)

	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 3, summary.Converted)
	assert.Equal(t, 3, summary.Succeeded())
	assert.Zero(t, summary.Failed)
	assert.Zero(t, summary.Fallbacks)
	assert.Empty(t, summary.Failures())
	assert.Equal(t, "attempted 3, succeeded 3 (3 converted, 0 unchanged), failed 0, fallbacks 0", summary.String())

	for _, r := range summary.Results {
		data, err := os.ReadFile(r.OutputPath)
		require.NoError(t, err)
		assert.Equal(t, r.Output, data)
		assert.Equal(t, filepath.Base(r.Path), filepath.Base(r.OutputPath))
	}
	assert.NoFileExists(t, filepath.Join(out, "index.tsx"))
	assert.NoFileExists(t, filepath.Join(out, "types.tsx"))
}

func TestRun_Idempotent(t *testing.T) {
	out := t.TempDir()
	first := runBatch(t, iconsDir, out, nil)
	require.Equal(t, 3, first.Converted)

	stats := make(map[string]time.Time)
	for _, r := range first.Results {
		info, err := os.Stat(r.OutputPath)
		require.NoError(t, err)
		stats[r.OutputPath] = info.ModTime()
	}

	second := runBatch(t, iconsDir, out, nil)
	assert.Equal(t, 3, second.Unchanged)
	assert.Zero(t, second.Converted)

	for i, r := range second.Results {
		assert.True(t, r.Unchanged)
		assert.Equal(t, first.Results[i].Output, r.Output)

		info, err := os.Stat(r.OutputPath)
		require.NoError(t, err)
		assert.Equal(t, stats[r.OutputPath], info.ModTime(), "output rewritten")
	}
}

func TestRun_WorkerCountIndependent(t *testing.T) {
	sequential := runBatch(t, iconsDir, t.TempDir(), func(o *Options) { o.Workers = 1 })
	parallel := runBatch(t, iconsDir, t.TempDir(), func(o *Options) { o.Workers = 8 })

	require.Len(t, parallel.Results, len(sequential.Results))
	for i := range sequential.Results {
		assert.Equal(t, sequential.Results[i].Path, parallel.Results[i].Path)
		assert.Equal(t, sequential.Results[i].Output, parallel.Results[i].Output)
	}
}

func TestRun_PerFileFailures(t *testing.T) {
	out := t.TempDir()
	summary := runBatch(t, brokenDir, out, nil)

	assert.Equal(t, 2, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.Fallbacks)

	failures := summary.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "no-svg.tsx", filepath.Base(failures[0].Path))
	assert.Equal(t, icon.StageExtract, icon.StageOf(failures[0].Err))
	assert.NoFileExists(t, filepath.Join(out, "no-svg.tsx"))
	assert.FileExists(t, filepath.Join(out, "partial-handle.tsx"))
}

func TestRun_Strict(t *testing.T) {
	summary := runBatch(t, brokenDir, t.TempDir(), func(o *Options) { o.Strict = true })

	assert.Equal(t, 2, summary.Failed)
	assert.Zero(t, summary.Succeeded())
	require.Len(t, summary.Results, 2)
	assert.ErrorIs(t, summary.Results[0].Err, extract.ErrNoSVGRoot)
	assert.ErrorIs(t, summary.Results[1].Err, icon.ErrFallback)
}

func TestRun_MissingInputDir(t *testing.T) {
	opts := DefaultOptions()
	opts.InputDir = filepath.Join(t.TempDir(), "missing")
	opts.OutputDir = t.TempDir()

	_, err := newTestConverter(t, opts).Run(context.Background())
	assert.Error(t, err)
}

func TestConvertAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := Discover(iconsDir, DefaultInclude, DefaultExclude)
	require.NoError(t, err)

	conv := newTestConverter(t, Options{Workers: 1})
	results := conv.ConvertAll(ctx, files, t.TempDir())
	assert.LessOrEqual(t, len(results), len(files))
}
