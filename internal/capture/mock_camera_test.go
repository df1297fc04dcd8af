package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	t.Run("read before open fails", func(t *testing.T) {
		cam := NewMockCamera([]*gocv.Mat{&frame1}, false)
		if _, err := cam.ReadFrame(); err == nil {
			t.Error("expected error reading from unopened camera")
		}
	})

	t.Run("plays frames in order then stops", func(t *testing.T) {
		cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)
		if err := cam.Open(); err != nil {
			t.Fatalf("open: %v", err)
		}
		defer cam.Close()

		for i := 0; i < 2; i++ {
			f, err := cam.ReadFrame()
			if err != nil {
				t.Fatalf("frame %d: %v", i, err)
			}
			f.Close()
		}
		if _, err := cam.ReadFrame(); err == nil {
			t.Error("expected error after last frame without looping")
		}
	})

	t.Run("loops when configured", func(t *testing.T) {
		cam := NewMockCamera([]*gocv.Mat{&frame1}, true)
		if err := cam.Open(); err != nil {
			t.Fatalf("open: %v", err)
		}
		defer cam.Close()

		for i := 0; i < 3; i++ {
			f, err := cam.ReadFrame()
			if err != nil {
				t.Fatalf("loop read %d: %v", i, err)
			}
			f.Close()
		}
	})

	t.Run("implements Camera interface", func(t *testing.T) {
		var _ Camera = (*MockCamera)(nil)
	})
}
