package visibility

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	"github.com/alexisbeaulieu97/reflex/internal/media"
	reflexerrors "github.com/alexisbeaulieu97/reflex/pkg/errors"
)

const em = media.PixelsPerEm

func TestDisplayAcrossDefaultBreakpoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		width float64
		want  map[string]string
	}{
		{name: "below sm", width: 20 * em, want: map[string]string{"": "flex", "sm": "block", "md": "block", "lg": "block"}},
		{name: "between sm and md", width: 40 * em, want: map[string]string{"": "flex", "sm": "flex", "md": "block", "lg": "block"}},
		{name: "between md and lg", width: 56 * em, want: map[string]string{"": "flex", "sm": "flex", "md": "flex", "lg": "block"}},
		{name: "above lg", width: 70 * em, want: map[string]string{"": "flex", "sm": "flex", "md": "flex", "lg": "flex"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for flag, want := range tc.want {
				var declared []string
				if flag != "" {
					declared = []string{flag}
				}
				r := New(media.NewViewport(tc.width), config.Default(), declared)
				release, err := r.Acquire()
				require.NoError(t, err)
				require.Equal(t, want, r.Display(), "flag %q", flag)
				release()
			}
		})
	}
}

func TestMultipleFlagsAreOred(t *testing.T) {
	t.Parallel()

	viewport := media.NewViewport(40 * em)
	r := New(viewport, config.Default(), []string{"lg", "sm"})
	release, err := r.Acquire()
	require.NoError(t, err)
	defer release()

	require.Equal(t, "flex", r.Display())
	viewport.SetWidth(10 * em)
	require.Equal(t, "block", r.Display())
}

func TestCustomBreakpointsReplaceDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Resolve(&config.Override{Breakpoints: map[string]string{
		"mobile":  "(min-width: 30em)",
		"tablet":  "(min-width: 48em)",
		"desktop": "(min-width: 60em)",
	}})

	for _, width := range []float64{10 * em, 40 * em, 100 * em} {
		r := New(media.NewViewport(width), cfg, []string{"sm"})
		release, err := r.Acquire()
		require.NoError(t, err)
		require.Equal(t, "block", r.Display(), "sm is not configured at %vpx", width)
		release()
	}

	viewport := media.NewViewport(20 * em)
	r := New(viewport, cfg, []string{"mobile"})
	release, err := r.Acquire()
	require.NoError(t, err)
	defer release()
	require.Equal(t, "block", r.Display())
	viewport.SetWidth(50 * em)
	require.Equal(t, "flex", r.Display())
	require.Equal(t, []string{"mobile", "tablet"}, r.Active())
}

func TestUnknownFlagNeverMatches(t *testing.T) {
	t.Parallel()

	viewport := media.NewViewport(100 * em)
	r := New(viewport, config.Default(), []string{"huge", "md"})
	release, err := r.Acquire()
	require.NoError(t, err)
	defer release()

	require.Equal(t, "flex", r.Display())
	viewport.SetWidth(40 * em)
	require.Equal(t, "block", r.Display())
}

func TestOnChangeFiresForEveryFlip(t *testing.T) {
	t.Parallel()

	viewport := media.NewViewport(20 * em)
	var displays []string
	r := New(viewport, config.Default(), []string{"md"}, WithOnChange(func(display string) {
		displays = append(displays, display)
	}))
	release, err := r.Acquire()
	require.NoError(t, err)

	viewport.SetWidth(40 * em) // sm flips
	viewport.SetWidth(50 * em) // md flips
	viewport.SetWidth(70 * em) // lg flips
	viewport.SetWidth(20 * em) // lg, md, sm flip in that order
	require.Equal(t, []string{"block", "flex", "flex", "flex", "block", "block"}, displays)

	release()
	viewport.SetWidth(70 * em)
	require.Len(t, displays, 6)
}

func TestUnconstrainedDoesNotSubscribe(t *testing.T) {
	t.Parallel()

	viewport := media.NewViewport(0)
	r := New(viewport, config.Default(), nil)
	require.False(t, r.Constrained())

	release, err := r.Acquire()
	require.NoError(t, err)
	require.Zero(t, viewport.Listeners())
	require.Equal(t, "flex", r.Display())
	release()
}

func TestAcquireSubscribesToEveryConfiguredQuery(t *testing.T) {
	t.Parallel()

	viewport := media.NewViewport(0)
	r := New(viewport, config.Default(), []string{"sm"})
	require.True(t, r.Constrained())

	release, err := r.Acquire()
	require.NoError(t, err)
	require.Equal(t, 3, viewport.Listeners())

	_, err = r.Acquire()
	require.ErrorIs(t, err, ErrAlreadyAcquired)

	release()
	release()
	require.Zero(t, viewport.Listeners())
	require.Empty(t, r.Active())
}

func TestHeadlessHostStaysFlex(t *testing.T) {
	t.Parallel()

	for _, host := range []media.Host{nil, media.Headless{}, unsupportedHost{}} {
		r := New(host, config.Default(), []string{"sm"})
		release, err := r.Acquire()
		require.NoError(t, err)
		require.NotNil(t, release)
		require.Equal(t, "flex", r.Display())
		release()
	}
}

func TestFailedSubscriptionReleasesAcquired(t *testing.T) {
	t.Parallel()

	boom := errors.New("listener table full")
	host := &failingHost{Viewport: media.NewViewport(0), failOn: "(min-width: 32em)", err: boom}
	r := New(host, config.Default(), []string{"sm"})

	release, err := r.Acquire()
	require.Nil(t, release)
	var subErr *reflexerrors.SubscriptionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "(min-width: 32em)", subErr.Query)
	require.ErrorIs(t, err, boom)
	require.Zero(t, host.Listeners())

	host.err = nil
	release, err = r.Acquire()
	require.NoError(t, err)
	release()
}

func TestSetBreakpointsRecomputesDisplay(t *testing.T) {
	t.Parallel()

	viewport := media.NewViewport(40 * em)
	r := New(viewport, config.Default(), []string{"md"})
	release, err := r.Acquire()
	require.NoError(t, err)
	defer release()

	require.Equal(t, "block", r.Display())
	require.Equal(t, "flex", r.SetBreakpoints([]string{"sm", "sm"}))
	require.Equal(t, "flex", r.Display())
	require.Equal(t, 3, viewport.Listeners())
}

func TestDisplayBeforeAcquireQueriesHost(t *testing.T) {
	t.Parallel()

	r := New(media.NewViewport(40*em), config.Default(), []string{"sm"})
	require.Equal(t, "flex", r.Display())
}

func TestIncapableHostIsNeverQueried(t *testing.T) {
	t.Parallel()

	host := &incapableHost{}
	r := New(host, config.Default(), []string{"sm"})
	require.Equal(t, "flex", r.Display())

	release, err := r.Acquire()
	require.NoError(t, err)
	require.Equal(t, "flex", r.Display())
	release()

	require.Zero(t, host.matches.Load())
	require.Zero(t, host.subscribes.Load())
}

type incapableHost struct {
	matches    atomic.Int32
	subscribes atomic.Int32
}

func (h *incapableHost) SupportsMediaQueries() bool { return false }

func (h *incapableHost) Matches(string) bool {
	h.matches.Add(1)
	return false
}

func (h *incapableHost) Subscribe(string, func(bool)) (func(), error) {
	h.subscribes.Add(1)
	return nil, media.ErrUnsupported
}

type unsupportedHost struct{}

func (unsupportedHost) Matches(string) bool { return true }

func (unsupportedHost) Subscribe(string, func(bool)) (func(), error) {
	return nil, media.ErrUnsupported
}

type failingHost struct {
	*media.Viewport
	failOn string
	err    error
}

func (h *failingHost) Subscribe(query string, onChange func(bool)) (func(), error) {
	if h.err != nil && query == h.failOn {
		return nil, h.err
	}
	return h.Viewport.Subscribe(query, onChange)
}
