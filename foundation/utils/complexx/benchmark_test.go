// File: benchmark_test.go
// Title: Benchmarks for complexx
// Description: Benchmarks for the arithmetic hot path, the transcendental
//              functions and parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-22
// Modified: 2026-09-22
//
// Change History:
// - 2026-09-22 v0.1.0: Initial benchmarks

package complexx

import "testing"

var (
	benchA   = New(1.25, -0.75)
	benchB   = New(-3.5, 2)
	benchOut Complex
)

func BenchmarkMul(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = Mul(benchA, benchB)
	}
}

func BenchmarkDiv(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = Div(benchA, benchB)
	}
}

func BenchmarkPow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = Pow(benchA, benchB)
	}
}

func BenchmarkPowInt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = PowInt(benchA, 17)
	}
}

func BenchmarkSin(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = Sin(benchA)
	}
}

func BenchmarkAsin(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = Asin(benchB)
	}
}

func BenchmarkClerp(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOut = Clerp(benchA, benchB, 0.3)
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchOut, _ = Parse("1.5e-3-2i")
	}
}

func BenchmarkString(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = benchA.String()
	}
}
