// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/frameplay/anim"
	"github.com/gogpu/frameplay/bmp"
	"github.com/gogpu/frameplay/internal/manifest"
)

// fakeAnim paints each frame a solid opaque color and can fail chosen frames.
type fakeAnim struct {
	info     anim.Info
	fail     map[int]bool
	frames   []int
	keep     []bool
	notClear int
}

var errRender = errors.New("render failed")

func (f *fakeAnim) Info() (anim.Info, error) { return f.info, nil }

func (f *fakeAnim) Render(frame int, s anim.Surface, keep bool) error {
	f.frames = append(f.frames, frame)
	f.keep = append(f.keep, keep)
	for _, p := range s.Pix {
		if p != 0 {
			f.notClear++
			break
		}
	}
	if f.fail[frame] {
		return errRender
	}
	for i := range s.Pix {
		s.Pix[i] = 0xFF000000 | uint32(frame)
	}
	return nil
}

func (f *fakeAnim) FrameAtPos(pos float64) int { return anim.FrameAtPos(f.info, pos) }
func (f *fakeAnim) Close() error               { return nil }

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestExportWritesEveryFrame(t *testing.T) {
	dir := t.TempDir()
	a := &fakeAnim{info: anim.NewInfo(24, 48, 100, 100)}

	sum, err := New().Export(context.Background(), a, dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Frames != 48 || sum.Written != 48 || len(sum.Failed) != 0 || !sum.Complete() {
		t.Errorf("summary = %+v", sum)
	}

	names := listDir(t, dir)
	if len(names) != 48 {
		t.Fatalf("wrote %d files, want 48", len(names))
	}
	if names[0] != "frame_0000.bmp" || names[47] != "frame_0047.bmp" {
		t.Errorf("names = %s .. %s", names[0], names[47])
	}
	for _, n := range names {
		st, err := os.Stat(filepath.Join(dir, n))
		if err != nil {
			t.Fatal(err)
		}
		if st.Size() != int64(bmp.FileSize(100, 100)) {
			t.Errorf("%s size = %d, want %d", n, st.Size(), bmp.FileSize(100, 100))
		}
	}

	for i, f := range a.frames {
		if f != i {
			t.Fatalf("render order %v", a.frames)
		}
		if !a.keep[i] {
			t.Errorf("frame %d rendered without keepAspectRatio", i)
		}
	}
	if a.notClear != 0 {
		t.Errorf("%d renders saw a dirty buffer", a.notClear)
	}
}

func TestExportContinuesAfterFailures(t *testing.T) {
	dir := t.TempDir()
	a := &fakeAnim{info: anim.NewInfo(30, 12, 8, 8), fail: map[int]bool{3: true}}
	errDisk := errors.New("disk full")
	enc := func(path string, pix []uint32, w, h int) error {
		if strings.HasSuffix(path, "frame_0007.bmp") {
			return errDisk
		}
		return bmp.WriteFile(path, pix, w, h)
	}

	sum, err := New(WithEncoder(enc)).Export(context.Background(), a, dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Written != 10 {
		t.Errorf("Written = %d, want 10", sum.Written)
	}
	if len(sum.Failed) != 2 {
		t.Fatalf("Failed = %v, want 2 entries", sum.Failed)
	}
	if f := sum.Failed[0]; f.Frame != 3 || f.Stage != StageRender || !errors.Is(f, errRender) {
		t.Errorf("Failed[0] = %v", f)
	}
	if f := sum.Failed[1]; f.Frame != 7 || f.Stage != StageEncode || !errors.Is(f, errDisk) {
		t.Errorf("Failed[1] = %v", f)
	}
	if sum.Complete() {
		t.Error("Complete() = true with failures")
	}
	if len(a.frames) != 12 {
		t.Errorf("rendered %d frames, want 12", len(a.frames))
	}
	if n := len(listDir(t, dir)); n != 10 {
		t.Errorf("files = %d, want 10", n)
	}
}

func TestExportProgress(t *testing.T) {
	var got []int
	a := &fakeAnim{info: anim.NewInfo(24, 48, 2, 2)}
	_, err := New(
		WithEncoder(func(string, []uint32, int, int) error { return nil }),
		WithProgress(func(done, total int) {
			if total != 48 {
				t.Errorf("total = %d", total)
			}
			got = append(got, done)
		}),
	).Export(context.Background(), a, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	want := []int{10, 20, 30, 40, 48}
	if len(got) != len(want) {
		t.Fatalf("progress = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("progress = %v, want %v", got, want)
			break
		}
	}
}

func TestExportSize(t *testing.T) {
	tests := []struct {
		name         string
		opts         []Option
		info         anim.Info
		wantW, wantH int
	}{
		{"intrinsic", nil, anim.NewInfo(30, 1, 640, 480), 640, 480},
		{"default max", nil, anim.NewInfo(30, 1, 3840, 2160), 1920, 1080},
		{"custom max", []Option{WithMaxSize(100, 100)}, anim.NewInfo(30, 1, 400, 200), 100, 50},
		{"fixed", []Option{WithSize(32, 16)}, anim.NewInfo(30, 1, 400, 200), 32, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotW, gotH int
			enc := func(_ string, _ []uint32, w, h int) error {
				gotW, gotH = w, h
				return nil
			}
			opts := append([]Option{WithEncoder(enc)}, tt.opts...)
			sum, err := New(opts...).Export(context.Background(), &fakeAnim{info: tt.info}, t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			if gotW != tt.wantW || gotH != tt.wantH || sum.Width != tt.wantW || sum.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestExportErrors(t *testing.T) {
	dir := t.TempDir()
	ok := &fakeAnim{info: anim.NewInfo(30, 2, 4, 4)}

	if _, err := New().Export(context.Background(), nil, dir); !errors.Is(err, anim.ErrNilAnimation) {
		t.Errorf("nil animation: %v", err)
	}
	if _, err := New().Export(context.Background(), &fakeAnim{info: anim.NewInfo(30, 2, 0, 0)}, dir); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero size: %v", err)
	}
	for _, p := range []string{"", "frame.bmp", "frame_%s.bmp", "sub/frame_%d.bmp", "%d_%d.bmp"} {
		if _, err := New(WithPattern(p)).Export(context.Background(), ok, dir); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("pattern %q: %v", p, err)
		}
	}
	if n := len(listDir(t, dir)); n != 0 {
		t.Errorf("failed exports wrote %d files", n)
	}
}

func TestExportZeroFrames(t *testing.T) {
	dir := t.TempDir()
	sum, err := New().Export(context.Background(), &fakeAnim{info: anim.NewInfo(30, 0, 4, 4)}, dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Written != 0 || sum.Average() != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if n := len(listDir(t, dir)); n != 0 {
		t.Errorf("wrote %d files", n)
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &fakeAnim{info: anim.NewInfo(30, 20, 2, 2)}
	enc := func(path string, _ []uint32, _, _ int) error {
		if strings.HasSuffix(path, "frame_0004.bmp") {
			cancel()
		}
		return nil
	}

	sum, err := New(WithEncoder(enc)).Export(ctx, a, t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if sum == nil || sum.Written != 5 {
		t.Errorf("summary = %+v, want 5 written", sum)
	}
}

func TestExportResumesFromManifest(t *testing.T) {
	dir := t.TempDir()
	store, err := manifest.Open(filepath.Join(dir, manifest.DefaultName))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	info := anim.NewInfo(30, 5, 3, 3)
	if _, err := New(WithManifest(store)).Export(context.Background(), &fakeAnim{info: info}, dir); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "frame_0002.bmp")); err != nil {
		t.Fatal(err)
	}

	a := &fakeAnim{info: info}
	sum, err := New(WithManifest(store)).Export(context.Background(), a, dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Skipped != 4 || sum.Written != 1 || !sum.Complete() {
		t.Errorf("summary = %+v, want 4 skipped and 1 written", sum)
	}
	if len(a.frames) != 1 || a.frames[0] != 2 {
		t.Errorf("rendered %v, want [2]", a.frames)
	}

	// A different size invalidates every record.
	a = &fakeAnim{info: info}
	sum, err = New(WithManifest(store), WithSize(6, 6)).Export(context.Background(), a, dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Skipped != 0 || sum.Written != 5 {
		t.Errorf("resized summary = %+v", sum)
	}

	recs, err := store.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 5 || recs[0].Width != 6 || recs[0].Size != int64(bmp.FileSize(6, 6)) {
		t.Errorf("records = %+v", recs)
	}
}

func TestSummary(t *testing.T) {
	sum := &Summary{
		Frames:  1200,
		Written: 1199,
		Failed:  []*FrameError{{Frame: 4, Stage: StageEncode, Err: errors.New("x")}},
		Width:   1920,
		Height:  1080,
		Elapsed: 2400 * time.Millisecond,
	}
	if got := sum.Average(); got != 2*time.Millisecond {
		t.Errorf("Average = %v, want 2ms", got)
	}
	if sum.Done() != 1200 {
		t.Errorf("Done = %d", sum.Done())
	}
	s := sum.String()
	for _, want := range []string{"1,200 frames", "1920x1080", "1,199 written", "1 failed", "2.4s"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if got := sum.Failed[0].Error(); got != "export: frame 4: encode: x" {
		t.Errorf("FrameError = %q", got)
	}
}
