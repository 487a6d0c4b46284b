package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/slang/internal/filetest"
	"github.com/mna/slang/internal/maincmd"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected run test results with actual results.")

// TestRun exercises the run subcommand end to end (parse, walk, evaluate,
// JSON-serialize) against golden fixtures, following the teacher's
// testdata/in + testdata/out filetest.SourceFiles/DiffOutput pattern.
func TestRun(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".slang") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}
			c := &maincmd.Cmd{Print: true}

			// error is ignored, we just want it printed to ebuf
			_ = c.Run(ctx, stdio, []string{filepath.Join(srcDir, fi.Name())})
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateRunTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateRunTests)
		})
	}
}
