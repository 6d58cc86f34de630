package garden

import "testing"

// --- Scene rendering benchmarks ---

func BenchmarkPaint_Density1(b *testing.B) {
	s := NewSurface(1)
	defer s.Close()
	_ = s.Paint(0) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Paint(float64(i) / FPS)
	}
}

func BenchmarkPaint_Density2(b *testing.B) {
	s := NewSurface(2)
	defer s.Close()
	_ = s.Paint(0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Paint(float64(i) / FPS)
	}
}

func BenchmarkRenderScene_Recording(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = RenderScene(newCommandCanvas(), float64(i)/FPS)
	}
}

// --- Capture benchmarks ---

func BenchmarkCapture_MemorySink(b *testing.B) {
	s := NewSurface(0.5)
	defer s.Close()
	sink := NewMemorySink(1)
	ctrl := NewCaptureController(MemorySinkOpener(sink), &memDownloader{})
	if err := ctrl.Start(s); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Paint(float64(i) / FPS)
		_ = ctrl.Poll()
	}
}

func BenchmarkEaseInOutSine(b *testing.B) {
	var sum float64
	for i := 0; i < b.N; i++ {
		sum += EaseInOutSine(float64(i%1000) / 1000)
	}
	_ = sum
}
