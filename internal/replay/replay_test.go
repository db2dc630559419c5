package replay

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		masks []uint8
	}{
		{"empty", []uint8{}},
		{"single idle frame", []uint8{0}},
		{"long idle run", make([]uint8, 1000)},
		{"mixed", []uint8{0, 0, core.MaskLeft, core.MaskLeft, core.MaskLeft | core.MaskRight, 0, core.MaskRestart}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(Encode(tc.masks))
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if len(got) != len(tc.masks) {
				t.Fatalf("Decoded %d frames, expected %d", len(got), len(tc.masks))
			}
			for i := range got {
				if got[i] != tc.masks[i] {
					t.Fatalf("Frame %d = %b, expected %b", i, got[i], tc.masks[i])
				}
			}
		})
	}
}

func TestEncodeRunLength(t *testing.T) {
	data := Encode(make([]uint8, 100000))

	if len(data) > 16 {
		t.Errorf("A single idle run should encode compactly, got %d bytes", len(data))
	}
}

func TestDecodeRejectsCorrupt(t *testing.T) {
	valid := Encode([]uint8{1, 1, 2})

	if _, err := Decode(valid[:len(valid)-1]); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Truncated data should be corrupt, got %v", err)
	}

	if _, err := Decode([]byte{0xff}); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Garbage should be corrupt, got %v", err)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, 99)

	if _, err := Decode(b); err == nil {
		t.Error("Unknown version should be rejected")
	}
	if _, err := Decode(nil); err == nil {
		t.Error("Missing version should be rejected")
	}
}

func appendSpan(b []byte, mask uint8, count uint64) []byte {
	var span []byte
	span = protowire.AppendTag(span, fieldMask, protowire.VarintType)
	span = protowire.AppendVarint(span, uint64(mask))
	span = protowire.AppendTag(span, fieldCount, protowire.VarintType)
	span = protowire.AppendVarint(span, count)
	b = protowire.AppendTag(b, fieldSpans, protowire.BytesType)
	return protowire.AppendBytes(b, span)
}

func TestDecodeRejectsOversizedSpans(t *testing.T) {
	version := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	version = protowire.AppendVarint(version, Version)

	tests := []struct {
		name  string
		spans func([]byte) []byte
	}{
		{"single huge span", func(b []byte) []byte {
			return appendSpan(b, core.MaskLeft, maxFrames+1)
		}},
		{"total wraps around", func(b []byte) []byte {
			b = appendSpan(b, core.MaskLeft, 1)
			return appendSpan(b, core.MaskLeft, math.MaxUint64)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := tt.spans(append([]byte(nil), version...))

			done := make(chan error, 1)
			go func() {
				_, err := Decode(blob)
				done <- err
			}()

			select {
			case err := <-done:
				if !errors.Is(err, ErrCorrupt) {
					t.Errorf("Decode() error = %v, expected ErrCorrupt", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("Decode() did not return")
			}
		})
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	b := Encode([]uint8{core.MaskLeft})
	b = protowire.AppendTag(b, 15, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))

	got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(got) != 1 || got[0] != core.MaskLeft {
		t.Errorf("Decode() = %v, expected [%d]", got, core.MaskLeft)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	left := core.NewInputFrame()
	left.Set(core.ActionLeft)

	r.Record(left)
	r.Record(core.NewInputFrame())

	masks := r.Masks()
	if r.Len() != 2 || masks[0] != core.MaskLeft || masks[1] != 0 {
		t.Errorf("Masks() = %v, expected [%d 0]", masks, core.MaskLeft)
	}

	masks[0] = 0xff
	if r.Masks()[0] != core.MaskLeft {
		t.Error("Masks() should return a copy")
	}
}

// playRandom drives a recorded game with random intents.
func playRandom(seed int64, frames int) (*Recorder, pong.Snapshot) {
	rng := rand.New(rand.NewSource(seed))
	game := pong.New(pong.DefaultParams())
	rec := NewRecorder()
	game.SetRecorder(rec)

	for range frames {
		game.Step(core.FrameFromMask(uint8(rng.Intn(8))))
	}
	return rec, game.Snapshot()
}

func TestSimulateMatchesLiveGame(t *testing.T) {
	rec, live := playRandom(42, 3000)

	masks, err := Decode(Encode(rec.Masks()))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	want := OutcomeOf(rec.Len(), live)
	got, err := Verify(context.Background(), pong.DefaultParams(), masks, want)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got.Frames != 3000 {
		t.Errorf("Frames = %d, expected 3000", got.Frames)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	rec, live := playRandom(7, 500)
	want := OutcomeOf(rec.Len(), live)
	want.Score += 10

	_, err := Verify(context.Background(), pong.DefaultParams(), rec.Masks(), want)

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Verify() should report a mismatch, got %v", err)
	}
	if mismatch.Got.Score != live.Score {
		t.Errorf("Mismatch should carry the simulated score %d, got %d", live.Score, mismatch.Got.Score)
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Simulate(ctx, pong.DefaultParams(), make([]uint8, 10)); !errors.Is(err, context.Canceled) {
		t.Errorf("Simulate() should return context.Canceled, got %v", err)
	}
}
