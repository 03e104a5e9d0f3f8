package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/models"
)

func testItem(t *testing.T, stem, description string) models.WorkItem {
	t.Helper()
	dir := t.TempDir()

	video := filepath.Join(dir, stem+".webm")
	thumb := filepath.Join(dir, stem+".webp")
	desc := filepath.Join(dir, stem+".description")
	require.NoError(t, os.WriteFile(video, []byte("video"), 0644))
	require.NoError(t, os.WriteFile(thumb, []byte("thumb"), 0644))
	require.NoError(t, os.WriteFile(desc, []byte(description), 0644))

	return models.WorkItem{
		VideoPath:       video,
		ThumbnailPath:   thumb,
		DescriptionPath: desc,
		Title:           "My_Title",
		PublishAt:       time.Unix(1700000000, 0),
	}
}

func TestPublishHappyPath(t *testing.T) {
	surface := newStubSurface()
	surface.values[contentNameInput] = "1700000000-my_title"
	b := &stubBrowser{surface: surface}

	w := NewWorkflow(b, "state.json", "cats,dogs", zap.NewNop())
	item := testItem(t, "1700000000-My_Title", "Hello world")

	require.NoError(t, w.Publish(item))

	// The per-item context is seeded from the persisted state and closed.
	assert.Equal(t, []string{"state.json"}, b.sessionPaths)
	assert.True(t, surface.closed)

	title, ok := surface.filled(titleInput)
	require.True(t, ok)
	assert.Equal(t, "My_Title", title)

	// The auto-derived slug loses its timestamp prefix.
	slug, ok := surface.filled(contentNameInput)
	require.True(t, ok)
	assert.Equal(t, "my_title", slug)

	desc, ok := surface.filled(descriptionInput)
	require.True(t, ok)
	assert.Equal(t, "Hello world", desc)

	tags, ok := surface.filled(tagInput)
	require.True(t, ok)
	assert.Equal(t, "cats,dogs", tags)

	at := time.Unix(1700000000, 0)
	assert.Equal(t, []string{
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", int(at.Month())),
		fmt.Sprintf("%02d", at.Day()),
		fmt.Sprintf("%02d", at.Hour()),
		fmt.Sprintf("%02d", at.Minute()),
	}, surface.typed())

	// Tags are confirmed with Enter before the date is typed.
	var enterIdx, firstTypeIdx int
	for i, c := range surface.calls {
		if c.op == "press" && c.value == "Enter" && enterIdx == 0 {
			enterIdx = i
		}
		if c.op == "type" && firstTypeIdx == 0 {
			firstTypeIdx = i
		}
	}
	assert.Less(t, enterIdx, firstTypeIdx)

	// Publish is confirmed and then awaited on the same modal selector.
	last := surface.calls[len(surface.calls)-1]
	assert.Equal(t, "waitFor", last.op)
	assert.Equal(t, modalConfirmButton, last.selector)
	assert.Equal(t, time.Duration(0).String(), last.value)
}

func TestPublishExpandsCollapsedScheduler(t *testing.T) {
	surface := newStubSurface()
	surface.revealAfter = 3
	b := &stubBrowser{surface: surface}

	w := NewWorkflow(b, "state.json", "tags", zap.NewNop())

	require.NoError(t, w.Publish(testItem(t, "1700000000-My_Title", "d")))
	assert.Equal(t, 3, surface.showMoreClicks)
	assert.NotEmpty(t, surface.typed())
}

func TestPublishScheduleRetryBoundary(t *testing.T) {
	surface := newStubSurface()
	surface.revealAfter = maxScheduleRetries
	b := &stubBrowser{surface: surface}

	w := NewWorkflow(b, "state.json", "tags", zap.NewNop())

	require.NoError(t, w.Publish(testItem(t, "1700000000-My_Title", "d")))
	assert.Equal(t, maxScheduleRetries, surface.showMoreClicks)
}

func TestPublishScheduleRetriesExhausted(t *testing.T) {
	surface := newStubSurface()
	surface.revealAfter = maxScheduleRetries + 1
	b := &stubBrowser{surface: surface}

	w := NewWorkflow(b, "state.json", "tags", zap.NewNop())

	err := w.Publish(testItem(t, "1700000000-My_Title", "d"))
	assert.ErrorIs(t, err, ErrScheduleExhausted)
	// The expansion budget is spent, and the page is still torn down.
	assert.Equal(t, maxScheduleRetries, surface.showMoreClicks)
	assert.True(t, surface.closed)
	assert.Empty(t, surface.typed())
}

func TestPublishShortContentName(t *testing.T) {
	surface := newStubSurface()
	surface.values[contentNameInput] = "short"
	b := &stubBrowser{surface: surface}

	w := NewWorkflow(b, "state.json", "tags", zap.NewNop())

	require.NoError(t, w.Publish(testItem(t, "1700000000-My_Title", "d")))
	slug, ok := surface.filled(contentNameInput)
	require.True(t, ok)
	assert.Equal(t, "", slug)
}

func TestPublishMissingDescriptionFile(t *testing.T) {
	surface := newStubSurface()
	b := &stubBrowser{surface: surface}

	w := NewWorkflow(b, "state.json", "tags", zap.NewNop())
	item := testItem(t, "1700000000-My_Title", "d")
	require.NoError(t, os.Remove(item.DescriptionPath))

	err := w.Publish(item)
	assert.Error(t, err)
	// Nothing was driven: the item failed before a context was opened.
	assert.Empty(t, b.sessionPaths)
}
