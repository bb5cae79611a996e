/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package content

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/perr"
)

func TestBalancedStream(t *testing.T) {
	f := New()
	require.NoError(t, f.BT())
	f.Append("/F1 12 Tf")
	require.NoError(t, f.ET())
	f.PushSave()
	f.Append("1 0 0 1 10 10 cm")
	require.NoError(t, f.PopSave())

	out, err := f.Steal()
	require.NoError(t, err)
	require.Contains(t, string(out), "BT")
	require.Contains(t, string(out), "ET")
	require.Contains(t, string(out), "q")
	require.Contains(t, string(out), "Q")
}

func TestQWithoutQFails(t *testing.T) {
	f := New()
	require.NoError(t, f.BT())
	err := f.PopSave()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.DrawStateEndMismatch))
}

func TestUnbalancedSaveRejectsSteal(t *testing.T) {
	f := New()
	f.PushSave()
	_, err := f.Steal()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.UnclosedMarkedContent))
}

func TestNestedBMCRejected(t *testing.T) {
	f := New()
	require.NoError(t, f.BMC("Span"))
	err := f.BMC("Span")
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.NestedBMC))
}

func TestEMCOnEmptyRejected(t *testing.T) {
	f := New()
	err := f.EMC()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.EmcOnEmpty))
}

func TestTextCannotNest(t *testing.T) {
	f := New()
	require.NoError(t, f.BT())
	err := f.BT()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.DrawStateEndMismatch))
}
