package xlog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/skolemize/internal/xlog"
)

func TestPhase_AlwaysLogs(t *testing.T) {
	var buf bytes.Buffer
	l := xlog.New(&buf, false)
	l.Phase("iteration %d/%d", 1, 5)
	assert.Contains(t, buf.String(), "--- iteration 1/5 ---")
}

func TestDebugf_SuppressedUnlessDebug(t *testing.T) {
	var buf bytes.Buffer
	l := xlog.New(&buf, false)
	l.Debugf("should not appear")
	assert.Empty(t, buf.String())

	l2 := xlog.New(&buf, true)
	l2.Debugf("visible line")
	assert.True(t, strings.Contains(buf.String(), "visible line"))
}

func TestDump_OnlyWhenDebug(t *testing.T) {
	var buf bytes.Buffer
	l := xlog.New(&buf, false)
	l.Dump("candidates", map[string]int{"a": 1})
	assert.Empty(t, buf.String())

	l2 := xlog.New(&buf, true)
	l2.Dump("candidates", map[string]int{"a": 1})
	assert.Contains(t, buf.String(), "candidates")
}

func TestDiff_SkipsWhenIdentical(t *testing.T) {
	var buf bytes.Buffer
	l := xlog.New(&buf, true)
	l.Diff("C_2", "same", "same")
	assert.Empty(t, buf.String())

	l.Diff("C_2", "1 cube\n", "2 cubes\n")
	assert.Contains(t, buf.String(), "C_2 diff")
}
