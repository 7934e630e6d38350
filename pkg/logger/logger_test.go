package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = New("verbose", "json")
	assert.Error(t, err)
}

func TestWithContext(t *testing.T) {
	ctx := WithContext(context.Background(), StringField("symbol", "2330"))
	ctx = WithContext(ctx, IntField("generation", 3))

	fields := fieldsFromContext(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "symbol", fields[0].Key)
	assert.Equal(t, "generation", fields[1].Key)

	assert.Empty(t, fieldsFromContext(context.Background()))
	NewNop().InfoContext(ctx, "noop")
}
