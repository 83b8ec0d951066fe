package wkt

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

var benchGeometries = orb.Collection{
	orb.Point{2.2945, 48.8584},
	orb.LineString{{-0.1276, 51.5074}, {-0.1195, 51.5033}, {-0.104, 51.5055}},
	orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}},
	},
}

func BenchmarkMarshal(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(benchGeometries); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshalPolygon(b *testing.B) {
	input := "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))"
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		if _, err := Unmarshal(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshalCollection(b *testing.B) {
	input, err := Marshal(benchGeometries)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Unmarshal(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComponentScanner(b *testing.B) {
	parts := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		parts = append(parts, "POLYGON((0 0,4 0,4 4,0 0),(1 1,2 1,1 2,1 1))")
	}
	body := strings.Join(parts, ",")
	b.SetBytes(int64(len(body)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc := newComponentScanner(body)
		n := 0
		for sc.Scan() {
			n++
		}
		if err := sc.Err(); err != nil {
			b.Fatal(err)
		}
		if n != 100 {
			b.Fatalf("expected 100 components, got %d", n)
		}
	}
}
