package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Nil(t, bar.Notice())
	assert.False(t, bar.Offline())
}

func TestBar_NoticeReplacesOlder(t *testing.T) {
	bar := NewBar(nil, nil)

	bar, _ = bar.Update(messages.Notice{Level: messages.NoticeInfo, Text: "first", IssueID: 1})
	bar, _ = bar.Update(messages.Notice{Level: messages.NoticeError, Text: "second", IssueID: 2})

	require.NotNil(t, bar.Notice())
	assert.Equal(t, "second", bar.Notice().Text)
}

func TestBar_ExpiryOnlyClearsMatchingNotice(t *testing.T) {
	bar := NewBar(nil, nil)
	bar, _ = bar.Update(messages.Notice{Text: "first", IssueID: 1})
	bar, _ = bar.Update(messages.Notice{Text: "second", IssueID: 2})

	// The first notice's expiry must not clobber the newer one.
	bar, _ = bar.Update(messages.NoticeExpired{IssueID: 1})
	require.NotNil(t, bar.Notice())
	assert.Equal(t, "second", bar.Notice().Text)

	bar, _ = bar.Update(messages.NoticeExpired{IssueID: 2})
	assert.Nil(t, bar.Notice())
}

func TestBar_ViewShowsNoticeOverContext(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetItemCount(5)

	assert.Contains(t, bar.View(), "5 items")

	bar, _ = bar.Update(messages.Notice{Level: messages.NoticeSuccess, Text: "folder created", IssueID: 1})
	view := bar.View()
	assert.Contains(t, view, "folder created")
	assert.NotContains(t, view, "5 items")
}

func TestBar_ViewShowsOfflineMarker(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetOffline(true)

	assert.Contains(t, bar.View(), "offline")

	bar.SetOffline(false)
	assert.NotContains(t, bar.View(), "offline")
}

func TestBar_ViewShowsKeyHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	view := bar.View()

	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "help")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetItemCount(3)
	bar, _ = bar.Update(messages.Notice{Text: "x", IssueID: 1})

	bar.Clear()

	assert.Nil(t, bar.Notice())
	assert.Contains(t, bar.View(), "0 items")
}
