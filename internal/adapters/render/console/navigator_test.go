package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigatorRecordsCurrentView(t *testing.T) {
	var out bytes.Buffer
	nav := NewNavigator(&out)

	assert.Equal(t, domain.View(""), nav.Current())
	require.NoError(t, nav.Navigate(context.Background(), domain.ViewUserList))

	assert.Equal(t, domain.ViewUserList, nav.Current())
	assert.Contains(t, out.String(), "navigate: /user-list")
}

func TestNotifierWritesOneLinePerMessage(t *testing.T) {
	var out bytes.Buffer
	notifier := NewNotifier(&out)

	notifier.Notify(context.Background(), "first")
	notifier.Notify(context.Background(), "second")

	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("\n")))
	assert.Contains(t, out.String(), "first")
	assert.Contains(t, out.String(), "second")
}
