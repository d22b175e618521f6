// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := newCommand(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLoggenLimit(t *testing.T) {
	out, _, err := execute("3", "--limit=2")
	require.NoError(t, err)
	require.Equal(t, "1 aaa\n2 aaa\n", out)
}

func TestLoggenVerbose(t *testing.T) {
	_, logs, err := execute("1", "1000", "--limit=5", "-v")
	require.NoError(t, err)
	require.Contains(t, logs, "generator stopped")
	require.Contains(t, logs, "lines=5")
	require.Contains(t, logs, `bytes="20 B"`, "five 4-byte lines")
}

func TestLoggenBadArgs(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"x"},
		{"10", "fast"},
		{"10", "-1"},
		{"1", "2", "3"},
	} {
		_, _, err := execute(args...)
		require.Error(t, err, args)
	}
}
