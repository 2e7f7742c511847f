// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/config"
	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/inference/inferencetest"
	"github.com/jeranaias/pestcheck-tui/internal/kvstore"
	"github.com/jeranaias/pestcheck-tui/internal/nav"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
	"github.com/jeranaias/pestcheck-tui/internal/session"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

// failingKV fails every write.
type failingKV struct {
	*kvstore.Memory
}

func (failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

type fixture struct {
	deps   *screen.Deps
	server *inferencetest.Server
	store  *transcript.Store
}

func newFixture(t *testing.T, kv kvstore.Store, respond inferencetest.Responder) *fixture {
	t.Helper()
	if kv == nil {
		kv = kvstore.NewMemory()
	}
	if respond == nil {
		respond = inferencetest.Echo()
	}
	srv := inferencetest.NewServer(t, respond)
	p := prefs.New(kv, nil)
	store := transcript.NewStore(kv, nil)
	client := inference.NewClient(&inference.ClientConfig{BaseURL: srv.URL}, nil)
	cfg := config.Default()

	return &fixture{
		deps: &screen.Deps{
			Config:   cfg,
			Prefs:    p,
			Nav:      nav.NewController(p, nil),
			Session:  session.New(store, client, p, nil),
			Theme:    styles.NewTheme("dark"),
			Markdown: components.NewMarkdown(false, true),
			Version:  "1.2.3",
		},
		server: srv,
		store:  store,
	}
}

// collect runs cmd, expanding batches, and returns the messages produced
// within a short deadline. Long timers such as alert expiry are abandoned.
func collect(cmd tea.Cmd) []tea.Msg {
	return collectWithin(cmd, 500*time.Millisecond)
}

func collectWithin(cmd tea.Cmd, d time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collectWithin(c, d)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(d):
		return nil
	}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func alertText(t *testing.T, sb components.StatusBar) string {
	t.Helper()
	a, ok := sb.Alert()
	require.True(t, ok, "expected an alert")
	return a.Text
}

// =============================================================================
// HOME
// =============================================================================

func TestHome_OpensScreens(t *testing.T) {
	f := newFixture(t, nil, nil)
	h := NewHome(f.deps, "en")

	_, cmd := h.Update(keyMsg(tea.KeyEnter))
	push, ok := find[screen.PushMsg](collect(cmd))
	require.True(t, ok)
	assert.IsType(t, &Chat{}, push.Screen)

	h.Update(keyMsg(tea.KeyDown))
	_, cmd = h.Update(keyMsg(tea.KeyEnter))
	push, ok = find[screen.PushMsg](collect(cmd))
	require.True(t, ok)
	assert.IsType(t, &Settings{}, push.Screen)
}

func TestHome_ProfileShowsAlert(t *testing.T) {
	f := newFixture(t, nil, nil)
	h := NewHome(f.deps, "en")
	h.Update(keyMsg(tea.KeyUp)) // wraps to profile

	_, cmd := h.Update(keyMsg(tea.KeyEnter))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Profile is not available yet", alertText(t, h.status))
}

func TestHome_Translated(t *testing.T) {
	f := newFixture(t, nil, nil)
	h := NewHome(f.deps, "hi")
	out := h.View(80, 24)
	assert.Contains(t, out, "कीट पहचान प्रणाली")
	assert.Contains(t, out, "एजेंट से चैट करें")

	h.Update(screen.LanguageChangedMsg{Code: "te"})
	assert.Contains(t, h.View(80, 24), "ఏజెంట్‌తో చాట్")
}

// =============================================================================
// LANGUAGE SELECTION
// =============================================================================

func TestLangSelect_CompletesSelection(t *testing.T) {
	f := newFixture(t, nil, nil)
	s := NewLangSelect(f.deps, "ta")
	assert.Equal(t, "ta", s.Highlighted())

	_, cmd := s.Update(keyMsg(tea.KeyEnter))
	sel, ok := find[screen.LanguageSelectedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "ta", sel.Code)
	assert.NoError(t, sel.Err)

	ctx := context.Background()
	assert.True(t, f.deps.Prefs.HasSelected(ctx))
	assert.Equal(t, "ta", f.deps.Prefs.Language(ctx))
	assert.Equal(t, nav.MainApplication, f.deps.Nav.Route())
}

func TestLangSelect_FailureShowsError(t *testing.T) {
	f := newFixture(t, failingKV{kvstore.NewMemory()}, nil)
	s := NewLangSelect(f.deps, "en")

	_, cmd := s.Update(keyMsg(tea.KeyEnter))
	sel, ok := find[screen.LanguageSelectedMsg](collect(cmd))
	require.True(t, ok)
	require.Error(t, sel.Err)

	s.Update(sel)
	assert.Equal(t, "Failed to change language. Please try again.", alertText(t, s.status))
	assert.Equal(t, nav.AwaitingLanguageSelection, f.deps.Nav.Route())
}

func TestLangSelect_View(t *testing.T) {
	f := newFixture(t, nil, nil)
	out := NewLangSelect(f.deps, "en").View(80, 24)
	for _, want := range []string{"Select Your Language", "English", "हिंदी", "தமிழ்", "తెలుగు"} {
		assert.Contains(t, out, want)
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSettings_ChangeLanguage(t *testing.T) {
	f := newFixture(t, nil, nil)
	s := NewSettings(f.deps, "en")
	assert.Equal(t, "en", s.Active())

	s.Update(keyMsg(tea.KeyDown)) // hi
	_, cmd := s.Update(keyMsg(tea.KeyEnter))
	saved, ok := find[languageSavedMsg](collect(cmd))
	require.True(t, ok)

	_, cmd = s.Update(saved)
	changed, ok := find[screen.LanguageChangedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "hi", changed.Code)
	assert.Equal(t, "hi", s.Active())

	require.NotNil(t, s.Dialog())
	assert.Equal(t, "भाषा बदली गई", s.Dialog().Title)
	assert.False(t, s.Dialog().IsError)

	// Settings never touch the completion flag.
	ctx := context.Background()
	assert.Equal(t, "hi", f.deps.Prefs.Language(ctx))
	assert.False(t, f.deps.Prefs.HasSelected(ctx))

	s.Update(keyMsg(tea.KeyEnter))
	assert.Nil(t, s.Dialog())
}

func TestSettings_ChangeLanguageFailure(t *testing.T) {
	f := newFixture(t, failingKV{kvstore.NewMemory()}, nil)
	s := NewSettings(f.deps, "en")

	_, cmd := s.Update(keyMsg(tea.KeyEnter))
	saved, ok := find[languageSavedMsg](collect(cmd))
	require.True(t, ok)

	_, cmd = s.Update(saved)
	assert.Nil(t, cmd)
	require.NotNil(t, s.Dialog())
	assert.True(t, s.Dialog().IsError)
	assert.Equal(t, "Failed to change language. Please try again.", s.Dialog().Message)
	assert.Equal(t, "en", s.Active())
}

func TestSettings_AboutAndBack(t *testing.T) {
	f := newFixture(t, nil, nil)
	s := NewSettings(f.deps, "en")
	out := s.View(80, 30)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "Pest Detection System")
	assert.Contains(t, out, "✓")

	_, cmd := s.Update(keyMsg(tea.KeyEsc))
	_, ok := find[screen.PopMsg](collect(cmd))
	assert.True(t, ok)
}

// =============================================================================
// CHAT
// =============================================================================

func newChat(t *testing.T, f *fixture) *Chat {
	t.Helper()
	c := NewChat(f.deps, "en")
	t.Cleanup(c.Close)
	loaded, ok := find[transcriptLoadedMsg](collect(c.load()))
	require.True(t, ok)
	c.Update(loaded)
	c.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return c
}

func sendText(t *testing.T, c *Chat, text string) tea.Cmd {
	t.Helper()
	c.input.SetValue(text)
	_, cmd := c.Update(keyMsg(tea.KeyEnter))
	return cmd
}

func TestChat_EmptyTurnIsRejected(t *testing.T) {
	f := newFixture(t, nil, nil)
	c := newChat(t, f)

	cmd := sendText(t, c, "   ")
	assert.NotNil(t, cmd)
	assert.False(t, c.Loading())
	assert.Equal(t, "Please enter a message or select an image", alertText(t, c.status))
	assert.Equal(t, 0, f.server.RequestCount())
	assert.Equal(t, 0, f.deps.Session.Len())
}

func TestChat_SendTurn(t *testing.T) {
	f := newFixture(t, nil, inferencetest.Reply("Likely aphid infestation", &transcript.Analysis{
		DetectedPest: "aphid", Confidence: 0.91, Severity: "medium",
	}))
	c := newChat(t, f)

	cmd := sendText(t, c, "aphids on leaves")
	assert.True(t, c.Loading())
	assert.Equal(t, "", c.input.Value())

	// A second enter while loading does nothing.
	c.input.SetValue("again")
	_, again := c.Update(keyMsg(tea.KeyEnter))
	assert.Nil(t, again)

	done, ok := find[turnDoneMsg](collect(cmd))
	require.True(t, ok)
	require.NoError(t, done.err)
	c.Update(done)

	assert.False(t, c.Loading())
	entries := f.deps.Session.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsUser)
	assert.Equal(t, "Likely aphid infestation", entries[1].Text)

	out := c.View(80, 30)
	assert.Contains(t, out, "Analysis Results")
	assert.Contains(t, out, "91.0%")
}

func TestChat_TransportFailureAppendsErrorEntry(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.server.Close()
	c := newChat(t, f)

	done, ok := find[turnDoneMsg](collect(sendText(t, c, "hello")))
	require.True(t, ok)
	require.NoError(t, done.err)
	c.Update(done)

	entries := f.deps.Session.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[1].IsError())
	assert.Nil(t, entries[1].Analysis)
}

func TestChat_ImageAttachAndRemove(t *testing.T) {
	f := newFixture(t, nil, nil)
	c := newChat(t, f)

	img, err := capture.FromBytes("leaf.png", []byte("\x89PNG\r\n\x1a\n0000000000000000"))
	require.NoError(t, err)

	c.Update(ImageChosenMsg{Image: img})
	require.NotNil(t, c.Attached())
	assert.Contains(t, alertText(t, c.status), "leaf.png")

	c.Update(keyMsg(tea.KeyCtrlX))
	assert.Nil(t, c.Attached())
	assert.Equal(t, "Image removed", alertText(t, c.status))

	// Image-only turn
	c.Update(ImageChosenMsg{Image: img})
	done, ok := find[turnDoneMsg](collect(sendText(t, c, "")))
	require.True(t, ok)
	c.Update(done)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, inference.StripDataURI(img.DataURI), reqs[0].Body.Image)
	assert.Nil(t, c.Attached())
}

func TestChat_AttachOpensPicker(t *testing.T) {
	f := newFixture(t, nil, nil)
	c := newChat(t, f)

	_, cmd := c.Update(keyMsg(tea.KeyCtrlO))
	push, ok := find[screen.PushMsg](collect(cmd))
	require.True(t, ok)
	assert.IsType(t, &ImagePicker{}, push.Screen)
}

func TestChat_CloseCancelsTurn(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	f := newFixture(t, nil, inferencetest.Block(entered, release, inferencetest.Reply("late", nil)))
	c := newChat(t, f)

	cmd := sendText(t, c, "hello")
	results := make(chan []tea.Msg, 1)
	go func() { results <- collectWithin(cmd, 5*time.Second) }()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the server")
	}
	c.Close()
	close(release)

	var done turnDoneMsg
	select {
	case msgs := <-results:
		var ok bool
		done, ok = find[turnDoneMsg](msgs)
		require.True(t, ok, "no turnDoneMsg")
	case <-time.After(6 * time.Second):
		t.Fatal("turn never finished")
	}
	assert.ErrorIs(t, done.err, context.Canceled)

	_, cmd = c.Update(done)
	assert.Nil(t, cmd)
	assert.Len(t, f.deps.Session.Entries(), 1, "only the user entry is recorded")
}

func TestChat_ClearHistory(t *testing.T) {
	f := newFixture(t, nil, nil)
	c := newChat(t, f)

	done, ok := find[turnDoneMsg](collect(sendText(t, c, "hi")))
	require.True(t, ok)
	c.Update(done)
	require.Equal(t, 2, f.deps.Session.Len())

	_, cmd := c.Update(keyMsg(tea.KeyCtrlL))
	cleared, ok := find[historyClearedMsg](collect(cmd))
	require.True(t, ok)
	c.Update(cleared)

	assert.Equal(t, 0, f.deps.Session.Len())
	assert.Equal(t, "Chat history cleared", alertText(t, c.status))
	assert.Contains(t, c.View(80, 30), "No messages yet")
}

func TestChat_LoadsPersistedTranscript(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.NoError(t, f.store.Save(context.Background(), []transcript.Entry{
		transcript.UserEntry("old question", ""),
		transcript.AgentEntry("old answer", nil),
	}))

	c := newChat(t, f)
	out := c.View(80, 30)
	assert.Contains(t, out, "old question")
	assert.Contains(t, out, "old answer")
}

// =============================================================================
// IMAGE PICKER
// =============================================================================

func TestImagePicker_Gallery(t *testing.T) {
	f := newFixture(t, nil, nil)
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n0000000000000000"), 0600))

	p := NewImagePicker(f.deps, "en")
	t.Cleanup(p.Close)
	p.Update(keyMsg(tea.KeyDown)) // gallery
	p.Update(keyMsg(tea.KeyEnter))
	assert.Equal(t, pickPath, p.mode)

	p.input.SetValue(path)
	_, cmd := p.Update(keyMsg(tea.KeyEnter))
	loaded, ok := find[imageLoadedMsg](collect(cmd))
	require.True(t, ok)
	require.NoError(t, loaded.err)

	_, cmd = p.Update(loaded)
	pop, ok := find[screen.PopMsg](collect(cmd))
	require.True(t, ok)
	chosen, ok := pop.Result.(ImageChosenMsg)
	require.True(t, ok)
	assert.Equal(t, "leaf.png", chosen.Image.Name)
	assert.Equal(t, "image/png", chosen.Image.MIME)
}

func TestImagePicker_GalleryRejectsNonImage(t *testing.T) {
	f := newFixture(t, nil, nil)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0600))

	p := NewImagePicker(f.deps, "en")
	t.Cleanup(p.Close)
	p.Update(keyMsg(tea.KeyDown))
	p.Update(keyMsg(tea.KeyEnter))
	p.input.SetValue(path)

	_, cmd := p.Update(keyMsg(tea.KeyEnter))
	loaded, ok := find[imageLoadedMsg](collect(cmd))
	require.True(t, ok)
	require.ErrorIs(t, loaded.err, capture.ErrNotImage)

	p.Update(loaded)
	assert.Contains(t, alertText(t, p.status), "Failed to pick image from gallery")
	assert.Equal(t, pickPath, p.mode)
}

func TestImagePicker_CameraUnavailable(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewImagePicker(f.deps, "en")
	t.Cleanup(p.Close)

	_, cmd := p.Update(keyMsg(tea.KeyEnter))
	assert.NotNil(t, cmd)
	assert.Equal(t, pickMenu, p.mode)
	assert.Equal(t, "No capture folder configured (capture.dir)", alertText(t, p.status))
}

func TestImagePicker_CameraWaitCanceled(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.deps.Capture = capture.NewWatcher(t.TempDir(), 0, nil)
	p := NewImagePicker(f.deps, "en")
	t.Cleanup(p.Close)

	_, cmd := p.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, pickWaiting, p.mode)
	assert.Contains(t, p.View(80, 24), "Waiting for a new photo")

	results := make(chan tea.Msg, 1)
	go func() { results <- cmd() }()
	p.Update(keyMsg(tea.KeyEsc))
	assert.Equal(t, pickMenu, p.mode)

	select {
	case msg := <-results:
		loaded, ok := msg.(imageLoadedMsg)
		require.True(t, ok)
		assert.ErrorIs(t, loaded.err, context.Canceled)
		_, follow := p.Update(loaded)
		assert.Nil(t, follow)
	case <-time.After(2 * time.Second):
		t.Fatal("camera wait was not canceled")
	}
}

func TestImagePicker_CancelPops(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewImagePicker(f.deps, "en")
	t.Cleanup(p.Close)

	p.Update(keyMsg(tea.KeyUp)) // wraps to cancel
	_, cmd := p.Update(keyMsg(tea.KeyEnter))
	_, ok := find[screen.PopMsg](collect(cmd))
	assert.True(t, ok)
}
