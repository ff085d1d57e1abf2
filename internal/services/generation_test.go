package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

func TestStructuredLogsRawTextOnRejection(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mock := llm.NewMockProvider()
	mock.Reply("I cannot produce JSON today, sorry.")
	g := generator{llm: mock, log: logger.NewWithCore(core), metrics: observability.NewMetrics(nil, nil)}

	_, err := structured(context.Background(), g, extraction.KindFlashcardSet, prompts.PromptFlashcards,
		prompts.Input{TopicsCSV: "Goroutines", Count: 5}, extraction.ParseFlashcardSet)
	require.Error(t, err)
	assert.True(t, errors.Is(err, extraction.ErrMalformedOutput))
	assert.NotContains(t, err.Error(), "sorry")

	warn := logs.FilterMessage("backend output rejected").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "I cannot produce JSON today, sorry.", warn[0].ContextMap()["raw"])
	assert.Equal(t, "malformed_output", warn[0].ContextMap()["reason"])
}

func TestStructuredWrapsUntypedBackendErrors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("connection reset")})
	g := generator{llm: mock, log: logger.Nop()}

	_, err := structured(context.Background(), g, extraction.KindRoadmap, prompts.PromptRoadmap,
		prompts.Input{Goal: "go"}, extraction.ParseRoadmap)
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrBackendUnavailable))
}

func TestStructuredRejectsInvalidInput(t *testing.T) {
	mock := llm.NewMockProvider()
	g := generator{llm: mock, log: logger.Nop()}

	_, err := structured(context.Background(), g, extraction.KindRoadmap, prompts.PromptRoadmap,
		prompts.Input{}, extraction.ParseRoadmap)
	require.Error(t, err)
	assert.Equal(t, 0, mock.CallCount(), "backend must not be called for invalid input")
}
