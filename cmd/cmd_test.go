package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zefrenchwan/ifc.git/config"
	"github.com/zefrenchwan/ifc.git/step"
	"github.com/zefrenchwan/ifc.git/storage"
)

func newTestRuntime(t *testing.T) (*Runtime, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	var out bytes.Buffer
	runtime := &Runtime{
		Config: &config.Config{
			LogLevel:   "error",
			OutputPath: dir,
			Store: config.StoreConfig{
				Kind:       config.STORE_BADGER,
				BadgerPath: filepath.Join(dir, "badger"),
			},
			Header: config.HeaderConfig{Author: "Jane", Organization: "Acme"},
		},
		Logger: zap.NewNop().Sugar(),
		Out:    &out,
	}

	return runtime, &out
}

func testFlags() SampleFlags {
	return SampleFlags{
		Name:         "house",
		Storeys:      1,
		StoreyHeight: 3000,
		Width:        8000,
		Depth:        5000,
		Thickness:    250,
	}
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("DefaultPath", func(t *testing.T) {
		runtime, out := newTestRuntime(t)
		cmd := &ExportCmd{SampleFlags: testFlags()}
		require.NoError(t, cmd.Run(runtime))

		path := filepath.Join(runtime.Config.OutputPath, "house.ifc")
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, out.String(), path)
		assert.Contains(t, string(content), "('Jane'),('Acme')")

		instances, err := step.ReadInstances(bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "IFCPROJECT", instances[0].Keyword)
	})

	t.Run("InvalidStoreys", func(t *testing.T) {
		runtime, _ := newTestRuntime(t)
		flags := testFlags()
		flags.Storeys = 0
		cmd := &ExportCmd{SampleFlags: flags}
		assert.Error(t, cmd.Run(runtime))
	})

	t.Run("InvalidPath", func(t *testing.T) {
		runtime, _ := newTestRuntime(t)
		cmd := &ExportCmd{SampleFlags: testFlags(), Output: "/nonexistent/path/house.ifc"}
		assert.Error(t, cmd.Run(runtime))
	})
}

// failingFile accepts writes and fails on close
type failingFile struct {
	bytes.Buffer
	closed bool
}

func (f *failingFile) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestWriteAndClose(t *testing.T) {
	t.Parallel()

	file := new(failingFile)
	err := writeAndClose(file, "house.ifc", func(writer io.Writer) error {
		_, err := io.WriteString(writer, "ISO-10303-21;")
		return err
	})

	assert.ErrorContains(t, err, "closing house.ifc")
	assert.True(t, file.closed)

	writeErr := errors.New("encoding failed")
	file = new(failingFile)
	err = writeAndClose(file, "house.ifc", func(io.Writer) error { return writeErr })
	assert.ErrorIs(t, err, writeErr)
	assert.True(t, file.closed)
}

func TestStoreCommands(t *testing.T) {
	t.Parallel()

	runtime, out := newTestRuntime(t)
	save := &SaveCmd{SampleFlags: testFlags()}
	require.NoError(t, save.Run(runtime))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	id := lines[len(lines)-1]
	require.NotEmpty(t, id)

	out.Reset()
	require.NoError(t, (&ListCmd{Filter: "hou"}).Run(runtime))
	assert.Contains(t, out.String(), id)
	assert.Contains(t, out.String(), "IFC2X3")

	out.Reset()
	require.NoError(t, (&ListCmd{Filter: "office"}).Run(runtime))
	assert.Contains(t, out.String(), "No model found")

	out.Reset()
	require.NoError(t, (&ShowCmd{Id: id}).Run(runtime))
	instances, err := step.ReadInstances(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "IFCPROJECT", instances[0].Keyword)
	assert.Contains(t, out.String(), "'house.ifc'")

	output := filepath.Join(t.TempDir(), "copy.ifc")
	require.NoError(t, (&ShowCmd{Id: id, Output: output}).Run(runtime))
	_, err = os.Stat(output)
	assert.NoError(t, err)

	require.NoError(t, (&DeleteCmd{Id: id}).Run(runtime))
	assert.ErrorIs(t, (&DeleteCmd{Id: id}).Run(runtime), storage.ErrModelNotFound)
	assert.ErrorIs(t, (&ShowCmd{Id: id}).Run(runtime), storage.ErrModelNotFound)
}

func TestMigrateNeedsPostgres(t *testing.T) {
	t.Parallel()

	runtime, _ := newTestRuntime(t)
	assert.Error(t, (&MigrateCmd{}).Run(runtime))
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "cli.ifc")

	var out bytes.Buffer
	cli := NewCLI()
	cli.out = &out
	err := cli.Execute([]string{"--dir", dir, "export", "--storeys", "3", "--name", "cli", output})
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	instances, err := step.ReadInstances(bytes.NewReader(content))
	require.NoError(t, err)

	storeys := 0
	for _, instance := range instances {
		if instance.Keyword == "IFCBUILDINGSTOREY" {
			storeys++
		}
	}

	assert.Equal(t, 3, storeys)
	assert.Contains(t, out.String(), "Exported")
}
