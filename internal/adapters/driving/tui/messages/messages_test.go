package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	assert.Equal(t, "explorer", ViewExplorer.String())
	assert.Equal(t, "help", ViewHelp.String())
	assert.Equal(t, "unknown", ViewType(99).String())
}

func TestCatalogRefreshed_CarriesError(t *testing.T) {
	msg := CatalogRefreshed{Err: assert.AnError}
	assert.Error(t, msg.Err)

	assert.NoError(t, CatalogRefreshed{}.Err)
}

func TestNoticeLevels_Distinct(t *testing.T) {
	levels := map[NoticeLevel]bool{NoticeInfo: true, NoticeSuccess: true, NoticeError: true}
	assert.Len(t, levels, 3)
}
