package chatbot

import (
	"testing"

	"github.com/alexanderramin/ecostats/internal/dataset"
	"github.com/alexanderramin/ecostats/internal/knowledge"
	"github.com/stretchr/testify/require"
)

func testKnowledge(t *testing.T) *knowledge.Base {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	kb, err := knowledge.FromMap(dataset.ComputeStationStatistics(ds), knowledge.WithStrictValidation(true))
	require.NoError(t, err)
	return kb
}

func testBot(t *testing.T) (*Bot, *knowledge.Base) {
	t.Helper()
	kb := testKnowledge(t)
	return NewBot(kb), kb
}

func seededState(t *testing.T) *ConversationState {
	t.Helper()
	st := NewConversationState("test")
	require.True(t, st.Initialize())
	return st
}
