package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogNotifier_BasketChanged verifies the indicator badge is logged and hidden for an empty basket.
func TestLogNotifier_BasketChanged(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	n := logNotifier{logger: logger}

	n.BasketChanged(3)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "🧺 Basket indicator shows 3", hook.LastEntry().Message)

	n.BasketChanged(0)
	assert.Equal(t, "🧺 Basket is empty, indicator hidden", hook.LastEntry().Message)
	assert.Len(t, hook.AllEntries(), 2)
}

// TestLogNotifier_Banners verifies success and error banners map to info and warn levels.
func TestLogNotifier_Banners(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	n := logNotifier{logger: logger}

	n.Success(MsgItemAdded)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	n.Error(MsgNameRequired)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "❌ "+MsgNameRequired, hook.LastEntry().Message)
}
