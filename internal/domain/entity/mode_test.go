package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrawingTool_Toggle(t *testing.T) {
	require.Equal(t, ToolEraser, ToolBrush.Toggle())
	require.Equal(t, ToolBrush, ToolEraser.Toggle())
	require.Equal(t, ToolNone, ToolNone.Toggle())
	require.Equal(t, ToolNone, DrawingTool("pencil").Toggle())
}

func TestAppMode_Toggle(t *testing.T) {
	require.Equal(t, ModeSplitting, ModeDrawing.Toggle())
	require.Equal(t, ModeDrawing, ModeSplitting.Toggle())
	require.Equal(t, ModeDrawing, AppMode("").Toggle())
}
