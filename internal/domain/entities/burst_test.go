package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendConcatenatesTrimmedText(t *testing.T) {
	var burst PendingBurst

	first := NewTextFragment("  Hola ")
	second := NewTextFragment(" como estas ")
	burst.Append(first)
	burst.Append(second)

	require.Equal(t, "Hola como estas", burst.TextBuffer)
	require.Equal(t, second.ReceivedAt, burst.BufferedAt)
	require.Len(t, burst.Fragments, 2)
	require.False(t, burst.InternalFailure)
}

func TestAppendFailureOverwritesBufferAndSticks(t *testing.T) {
	var burst PendingBurst

	burst.Append(NewTextFragment("mira esta foto"))
	burst.Append(NewFailedMediaFragment(KindImage, "No pude procesar tu imagen", "no pude leer la imagen", "https://cdn/img.jpg"))
	burst.Append(NewTextFragment("y esto tambien"))

	require.True(t, burst.InternalFailure)
	require.Equal(t, "no pude leer la imagen", burst.FailureContext)
	require.Equal(t, "No pude procesar tu imagen", burst.TextBuffer)
	require.Len(t, burst.Fragments, 3)
}

func TestAppendLaterFailureReplacesContext(t *testing.T) {
	var burst PendingBurst

	burst.Append(NewFailedMediaFragment(KindImage, "fallo uno", "contexto uno", ""))
	burst.Append(NewFailedMediaFragment(KindFile, "fallo dos", "contexto dos", ""))

	require.Equal(t, "contexto dos", burst.FailureContext)
	require.Equal(t, "fallo dos", burst.TextBuffer)
}
