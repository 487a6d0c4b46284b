package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/slang/internal/maincmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.slang")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestValidateRejectsUnknownCommand(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"frobnicate", "a.slang"})
	c.SetFlags(map[string]bool{})
	assert.Error(t, c.Validate())
}

func TestValidateRequiresInputFile(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"run"})
	c.SetFlags(map[string]bool{})
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBadGridPosition(t *testing.T) {
	c := &maincmd.Cmd{GridPosition: "sideways"}
	c.SetArgs([]string{"run", "a.slang"})
	c.SetFlags(map[string]bool{"grid-position": true})
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsRunCommand(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"run", "a.slang"})
	c.SetFlags(map[string]bool{})
	assert.NoError(t, c.Validate())
}

func TestJudgePrintsStructuralType(t *testing.T) {
	path := writeTemp(t, "1 + 2")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
	c := &maincmd.Cmd{}
	err := c.Judge(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "int\n", buf.String())
}

func TestParsePrintsPreWalkTree(t *testing.T) {
	path := writeTemp(t, "1 + 2")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
	c := &maincmd.Cmd{}
	err := c.Parse(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "+")
}

func TestWalkResolvesBuiltinReference(t *testing.T) {
	path := writeTemp(t, "length")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
	c := &maincmd.Cmd{}
	err := c.Walk(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ref:length")
}

func TestRunWritesToOutPathUnlessPrintForced(t *testing.T) {
	path := writeTemp(t, "1 + 1")
	outPath := filepath.Join(t.TempDir(), "out.json")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
	c := &maincmd.Cmd{}
	err := c.Run(context.Background(), stdio, []string{path, outPath})
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(got))
}

func TestRunPrintFlagForcesStdout(t *testing.T) {
	path := writeTemp(t, "1 + 1")
	outPath := filepath.Join(t.TempDir(), "out.json")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
	c := &maincmd.Cmd{Print: true}
	err := c.Run(context.Background(), stdio, []string{path, outPath})
	require.NoError(t, err)
	assert.Equal(t, "2\n", buf.String())
	_, err = os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))
}
