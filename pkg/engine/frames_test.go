package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seqs(samples []FrameStats) []uint64 {
	out := make([]uint64, len(samples))
	for i, s := range samples {
		out[i] = s.Seq
	}
	return out
}

func TestFrameBufferWraps(t *testing.T) {
	b := NewFrameBuffer(3)
	if _, ok := b.Last(); ok {
		t.Error("Last on empty buffer reported a sample")
	}
	for i := uint64(1); i <= 5; i++ {
		b.Add(FrameStats{Seq: i})
	}
	if b.Count() != 3 {
		t.Errorf("Count = %d, want 3", b.Count())
	}
	if diff := cmp.Diff([]uint64{3, 4, 5}, seqs(b.Samples())); diff != "" {
		t.Errorf("Samples (-want +got):\n%s", diff)
	}
	if last, _ := b.Last(); last.Seq != 5 {
		t.Errorf("Last.Seq = %d, want 5", last.Seq)
	}
}

func TestFrameBufferPartial(t *testing.T) {
	b := NewFrameBuffer(0)
	b.Add(FrameStats{Seq: 1})
	b.Add(FrameStats{Seq: 2})
	if diff := cmp.Diff([]uint64{1, 2}, seqs(b.Samples())); diff != "" {
		t.Errorf("Samples (-want +got):\n%s", diff)
	}
}

func TestFrameBufferSubscribe(t *testing.T) {
	b := NewFrameBuffer(4)
	ch, cancel := b.Subscribe(1)

	b.Add(FrameStats{Seq: 1})
	b.Add(FrameStats{Seq: 2}) // dropped: the subscriber's buffer is full

	if got := <-ch; got.Seq != 1 {
		t.Errorf("received Seq %d, want 1", got.Seq)
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}
	b.Add(FrameStats{Seq: 3})
}

func TestAppRecordsFrames(t *testing.T) {
	app, _ := connect(t, counter, WithFrameHistory(8))
	click(app, center(locate(t, app, "*widgets.ButtonObject", "inc")))

	frames := app.Frames().Samples()
	var triggers []string
	for _, f := range frames {
		triggers = append(triggers, f.Trigger)
	}
	if diff := cmp.Diff([]string{"connect", "PointerDown", "PointerUp"}, triggers); diff != "" {
		t.Fatalf("triggers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint64{1, 2, 3}, seqs(frames)); diff != "" {
		t.Errorf("seqs (-want +got):\n%s", diff)
	}

	connectFrame, up := frames[0], frames[2]
	if !connectFrame.Layout || !connectFrame.Painted || connectFrame.Build.Passes != 1 {
		t.Errorf("connect frame = %+v", connectFrame)
	}
	if up.Build.Passes != 2 || up.Build.ActionsConsumed != 1 || !up.Handled {
		t.Errorf("pointer up frame = %+v", up)
	}
	if frames[1].Build.Passes != 0 {
		t.Errorf("pointer down ran %d passes, want 0", frames[1].Build.Passes)
	}
}
