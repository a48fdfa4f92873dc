package features

import (
	"fmt"
	"io"
	"time"

	"hyperfetch/output"
)

// BenchWindow is how long each benchmark loop runs.
const BenchWindow = 100 * time.Millisecond

// Reference scores for an average machine. A score equal to its reference
// rates "Good".
const (
	CPUReference     = 1000.0
	MemoryReference  = 5000.0
	OverallReference = 3000.0
)

// Points awarded per completed iteration over a full BenchWindow.
const (
	cpuPoints    = 10.0
	memoryPoints = 50.0
	fibDepth     = 20
	memoryItems  = 1000
)

var ratings = []struct {
	ratio float64
	label string
}{
	{2.0, "★★★★★ Excellent"},
	{1.5, "★★★★☆ Very Good"},
	{1.0, "★★★☆☆ Good"},
	{0.7, "★★☆☆☆ Fair"},
}

const lowestRating = "★☆☆☆☆ Below Average"

// BenchResult holds the raw scores of one benchmark run.
type BenchResult struct {
	CPU    float64
	Memory float64
}

// Overall is the mean of the CPU and memory scores.
func (r BenchResult) Overall() float64 {
	return (r.CPU + r.Memory) / 2
}

// sink keeps benchmark work observable so it is not optimized away.
var sink uint64

// RunBenchmark times a recursive Fibonacci loop and an allocate-and-sum loop
// for window each. Scores are normalized to BenchWindow, so a shorter window
// yields comparable numbers.
func RunBenchmark(window time.Duration) BenchResult {
	if window <= 0 {
		window = BenchWindow
	}
	scale := float64(BenchWindow) / float64(window)
	return BenchResult{
		CPU:    float64(loop(window, cpuWork)) * cpuPoints * scale,
		Memory: float64(loop(window, memoryWork)) * memoryPoints * scale,
	}
}

func loop(window time.Duration, work func()) int {
	start := time.Now()
	n := 0
	for time.Since(start) < window {
		work()
		n++
	}
	return n
}

func cpuWork() {
	sink += fibonacci(fibDepth)
}

func memoryWork() {
	v := make([]uint64, memoryItems)
	for i := range v {
		v[i] = uint64(i)
	}
	var sum uint64
	for _, x := range v {
		sum += x
	}
	sink += sum
}

func fibonacci(n uint64) uint64 {
	if n < 2 {
		return n
	}
	return fibonacci(n-1) + fibonacci(n-2)
}

// Rate turns a score into a star rating relative to reference.
func Rate(score, reference float64) string {
	if reference <= 0 {
		return lowestRating
	}
	ratio := score / reference
	for _, r := range ratings {
		if ratio >= r.ratio {
			return r.label
		}
	}
	return lowestRating
}

// Benchmark runs the benchmark and prints the scores with their ratings.
func Benchmark(w io.Writer, p *output.Painter) error {
	return PrintBenchmark(w, p, RunBenchmark(BenchWindow))
}

// PrintBenchmark prints an already measured result.
func PrintBenchmark(w io.Writer, p *output.Painter, r BenchResult) error {
	lines := section(p, "Performance Benchmark", 40)
	lines = append(lines,
		fmt.Sprintf("%s %s - %s", p.Label("CPU Score:"), p.Value(fmt.Sprintf("%.0f", r.CPU)), Rate(r.CPU, CPUReference)),
		fmt.Sprintf("%s %s - %s", p.Label("Memory Score:"), p.Value(fmt.Sprintf("%.0f", r.Memory)), Rate(r.Memory, MemoryReference)),
		"",
		fmt.Sprintf("%s %s", p.Label("Overall Performance:"), p.Fg(p.Theme().BarGood, Rate(r.Overall(), OverallReference))),
	)
	return write(w, lines)
}
