package vessel

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want int
	}{
		{
			name: "flying uses terrain when below sea level altitude",
			sig:  Signal{Situation: Flying, Heights: Heights{Terrain: 800.7, SeaLevel: 950}},
			want: 800,
		},
		{
			name: "flying caps spurious terrain with sea level",
			sig:  Signal{Situation: Flying, Heights: Heights{Terrain: 5000, SeaLevel: 1200}},
			want: 1200,
		},
		{
			name: "flying falls back to sea level on undefined terrain",
			sig:  Signal{Situation: Flying, Heights: Heights{Terrain: -1, TerrainFn: 10, SeaLevel: 640.9}},
			want: 640,
		},
		{
			name: "landed takes the larger terrain reading",
			sig:  Signal{Situation: Landed, Heights: Heights{Terrain: 1.2, TerrainFn: 3.9, SeaLevel: 80}},
			want: 3,
		},
		{
			name: "suborbital ignores sea level",
			sig:  Signal{Situation: SubOrbital, Heights: Heights{Terrain: 7000, TerrainFn: 6900, SeaLevel: 100}},
			want: 7000,
		},
		{
			name: "negative readings clamp to zero",
			sig:  Signal{Situation: Splashed, Heights: Heights{Terrain: -4, TerrainFn: -2}},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sample(tt.sig))
		})
	}
}

func TestSituation(t *testing.T) {
	assert.True(t, Prelaunch.OnSurface())
	assert.True(t, Splashed.OnSurface())
	assert.False(t, Splashed.Grounded())
	assert.True(t, Landed.Grounded())
	assert.False(t, Flying.OnSurface())
	assert.Equal(t, "SubOrbital", SubOrbital.String())
	assert.Equal(t, "Unknown", Situation(42).String())
}

func TestDemoProfile_Phases(t *testing.T) {
	p := DemoProfile()

	pad := p.At(1)
	assert.Equal(t, Prelaunch, pad.Situation)
	assert.Zero(t, pad.VerticalSpeed)

	ascent := p.At(20)
	assert.Equal(t, Flying, ascent.Situation)
	assert.InDelta(t, 79.93, ascent.VerticalSpeed, 0.01)

	descent := p.At(70)
	assert.Equal(t, Flying, descent.Situation)
	assert.Less(t, descent.VerticalSpeed, 0.0)

	gap := p.At(62)
	assert.Less(t, gap.Heights.Terrain, 0.0)
	assert.Equal(t, int(gap.Heights.SeaLevel), Sample(gap))

	down := p.At(200)
	assert.Equal(t, Landed, down.Situation)
	assert.Equal(t, 2, Sample(down))
	assert.Equal(t, 1.0, down.WarpRate)
	assert.True(t, down.Powered)
}

type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestFeed_StartStop(t *testing.T) {
	rec := &recorder{}
	f := NewFeed(DemoProfile(), 5*time.Millisecond)

	require.NoError(t, f.Start(rec))
	require.Eventually(t, func() bool { return rec.count() >= 3 }, time.Second, time.Millisecond)
	f.Stop()

	n := rec.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, rec.count())

	rec.mu.Lock()
	first, ok := rec.msgs[0].(SignalMsg)
	rec.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, "demo-lander", first.Signal.VesselID)
	assert.Zero(t, first.Signal.MissionTime)

	f.Stop()
}

func TestDecode(t *testing.T) {
	sig, err := Decode([]byte(`{"vessel":"hopper","heights":{"terrain":310.5,"terrainFn":311,"seaLevel":900},` +
		`"verticalSpeed":-12.5,"situation":"flying","missionTime":42}`))
	require.NoError(t, err)
	assert.Equal(t, "hopper", sig.VesselID)
	assert.Equal(t, Flying, sig.Situation)
	assert.Equal(t, -12.5, sig.VerticalSpeed)
	assert.Equal(t, 1.0, sig.WarpRate)
	assert.True(t, sig.Powered)
	assert.Equal(t, 310, Sample(sig))

	_, err = Decode([]byte(`{"situation":"hovering"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestSituation_Text(t *testing.T) {
	b, err := SubOrbital.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "SubOrbital", string(b))

	var s Situation
	require.NoError(t, s.UnmarshalText([]byte(" LANDED ")))
	assert.Equal(t, Landed, s)
}

func TestStream_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"vessel":"a","situation":"Flying","missionTime":1}`,
		``,
		`{broken`,
		`{"vessel":"a","situation":"Landed","missionTime":2,"warpRate":4}`,
	}, "\n")

	rec := &recorder{}
	st := NewStream(strings.NewReader(input))
	require.NoError(t, st.Start(rec))
	<-st.Done()
	st.Stop()

	received, skipped := st.Stats()
	assert.Equal(t, 2, received)
	assert.Equal(t, 1, skipped)
	require.Equal(t, 2, rec.count())

	last := rec.msgs[1].(SignalMsg).Signal
	assert.Equal(t, Landed, last.Situation)
	assert.Equal(t, 4.0, last.WarpRate)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("pipe gone") }

func TestStream_ReportsReadError(t *testing.T) {
	rec := &recorder{}
	st := NewStream(failingReader{})
	require.NoError(t, st.Start(rec))
	<-st.Done()

	require.Equal(t, 1, rec.count())
	msg, ok := rec.msgs[0].(StreamErrorMsg)
	require.True(t, ok)
	assert.ErrorContains(t, msg.Err, "pipe gone")
}

type closeCounter struct {
	*strings.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestStream_StopClosesUnstartedSource(t *testing.T) {
	src := &closeCounter{Reader: strings.NewReader("")}
	st := NewStream(src)

	st.Stop()
	assert.Equal(t, 1, src.closed)
	assert.Nil(t, st.Done())
}
