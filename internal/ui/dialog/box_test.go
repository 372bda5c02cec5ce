package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lookingback/internal/core/timers"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/rendertest"
)

func TestWrapText(t *testing.T) {
	r := rendertest.NewRenderer()
	// 10 px size gives 6 px per rune in the fake, so 60 px holds 10 runes.
	opts := render.TextOptions{Size: 10}

	lines := WrapText(r, "aku suka kamu sejak dulu", 60, opts)
	assert.Equal(t, []string{"aku suka", "kamu sejak", "dulu"}, lines)

	lines = WrapText(r, "panjangsekalikatanya ok", 60, opts)
	assert.Equal(t, []string{"panjangsekalikatanya", "ok"}, lines)

	lines = WrapText(r, "satu\n\ndua", 60, opts)
	assert.Equal(t, []string{"satu", "", "dua"}, lines)
}

func TestBoxDrawsOnlyWhileActive(t *testing.T) {
	r := rendertest.NewRenderer()
	dst := rendertest.NewImage(800, 600)
	sched := timers.NewScheduler()
	s := NewSequencer(sched, nil)
	b := NewBox(r)

	b.Draw(dst, s)
	assert.Zero(t, r.Rects)

	require.NoError(t, s.Start([]Entry{{Speaker: "Raina", Text: "Hai"}}, nil))
	b.Draw(dst, s)
	assert.Equal(t, 3, r.Rects)
	assert.Equal(t, []string{"Raina", ""}, r.Texts)

	sched.Advance(time.Second)
	r.Texts = nil
	b.Draw(dst, s)
	assert.Equal(t, []string{"Raina", "Hai", "▼"}, r.Texts)
}

func TestPromptBlink(t *testing.T) {
	b := NewBox(nil)
	assert.InDelta(t, 1.0, b.promptAlpha(), 1e-9)
	b.Update(250 * time.Millisecond)
	assert.InDelta(t, 0.5, b.promptAlpha(), 1e-9)
	b.Update(250 * time.Millisecond)
	assert.InDelta(t, 0.0, b.promptAlpha(), 1e-9)
	b.Update(500 * time.Millisecond)
	assert.InDelta(t, 1.0, b.promptAlpha(), 1e-9)
}
