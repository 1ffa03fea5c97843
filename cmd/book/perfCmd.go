package book

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/rksok/cmd/util"
	"github.com/ValentinKolb/rksok/rpc/client"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/olekukonko/tablewriter"
	"github.com/rcrowley/go-metrics"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for phonebook servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__perf"
	perfNumThreads = 10
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. write,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different names to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfSkip = lo.Compact(strings.Split(viper.GetString("skip"), ","))

	return nil
}

// perfResult holds the outcome of a single benchmark
type perfResult struct {
	test    string
	bench   testing.BenchmarkResult
	latency metrics.Timer
	errors  metrics.Counter
}

// perfTest describes a benchmark: setup runs once before the timer starts,
// op is called in parallel with a running counter.
type perfTest struct {
	name  string
	setup func(keys []string)
	op    func(key string, counter int) (protocol.Message, error)
}

func runPerf(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Performance testing tool for phonebook servers")

	// Print configuration
	_, _ = fmt.Fprintln(out, util.GetClientConfig().String())
	_, _ = fmt.Fprintf(out, "Threads: %d\n\n", perfNumThreads)
	_, _ = fmt.Fprintln(out, "starting tests...")

	results := runPerfTests(phonebook, perfTests(phonebook))
	printResults(out, results)

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		_, _ = fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		_, _ = fmt.Fprintln(out, "Export complete")
	}
	return nil
}

// perfTests returns the benchmark suite
func perfTests(c client.IPhonebookClient) []perfTest {
	fill := func(keys []string) {
		for _, k := range keys {
			if _, err := c.Write(k, "89012345678"); err != nil {
				log.Printf("error writing %s: %v\n", k, err)
			}
		}
	}
	response := func(ex client.Exchange, err error) (protocol.Message, error) {
		return ex.Response, err
	}

	return []perfTest{
		{
			name: "write",
			op: func(key string, _ int) (protocol.Message, error) {
				return response(c.Write(key, "89012345678"))
			},
		},
		{
			name:  "get",
			setup: fill,
			op: func(key string, _ int) (protocol.Message, error) {
				return response(c.Get(key))
			},
		},
		{
			name: "get-missing",
			op: func(key string, _ int) (protocol.Message, error) {
				return response(c.Get(key))
			},
		},
		{
			name:  "delete",
			setup: fill,
			op: func(key string, _ int) (protocol.Message, error) {
				return response(c.Delete(key))
			},
		},
		{
			name:  "mixed",
			setup: fill,
			op: func(key string, counter int) (protocol.Message, error) {
				switch counter % 3 {
				case 0:
					return response(c.Write(key, "89012345678"))
				case 1:
					return response(c.Get(key))
				default:
					return response(c.Delete(key))
				}
			},
		},
	}
}

// runPerfTests runs every test that is not skipped. Keys are deleted after each test.
func runPerfTests(c client.IPhonebookClient, tests []perfTest) []perfResult {
	results := make([]perfResult, 0, len(tests))
	for _, test := range tests {
		res := perfResult{
			test:    test.name,
			latency: metrics.NewCustomTimer(metrics.NewHistogram(metrics.NewUniformSample(100_000)), metrics.NewMeter()),
			errors:  metrics.NewCounter(),
		}

		if !lo.Contains(perfSkip, test.name) {
			keys := perfKeys(test.name)
			res.bench = testing.Benchmark(func(b *testing.B) {
				if test.setup != nil {
					test.setup(keys)
				}
				b.Cleanup(func() {
					for _, k := range keys {
						_, _ = c.Delete(k)
					}
				})

				b.SetParallelism(perfNumThreads)
				b.ResetTimer()

				b.RunParallel(func(pb *testing.PB) {
					counter := 0
					for pb.Next() {
						start := time.Now()
						resp, err := test.op(keys[counter%len(keys)], counter)
						res.latency.UpdateSince(start)
						if err != nil || resp.IsMalformed() {
							res.errors.Inc(1)
						}
						counter++
					}
				})
			})
		}

		res.latency.Stop()
		results = append(results, res)
	}
	return results
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// perfKeys creates the names used by a test, all of them fit the key limit
func perfKeys(test string) []string {
	return lo.Times(perfKeySpread, func(i int) string {
		return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, test, i)
	})
}

// opsPerSec converts a benchmark result into operations per second, 0 if the test was skipped
func opsPerSec(result testing.BenchmarkResult) float64 {
	if result.NsPerOp() == 0 {
		return 0
	}
	nsPerOp := math.Max(float64(result.NsPerOp()), 1)
	return 1.0 / (nsPerOp / 1e9)
}

// printResults prints all results as a table
func printResults(w io.Writer, results []perfResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Test", "Ops", "Time/op", "Ops/sec", "p50", "p95", "p99", "Errors"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range results {
		if r.bench.NsPerOp() == 0 {
			table.Append([]string{r.test, "skipped", "", "", "", "", "", ""})
			continue
		}
		p := r.latency.Percentiles([]float64{0.5, 0.95, 0.99})
		table.Append([]string{
			r.test,
			strconv.Itoa(r.bench.N),
			time.Duration(r.bench.NsPerOp()).String(),
			fmt.Sprintf("%.0f", opsPerSec(r.bench)),
			time.Duration(p[0]).String(),
			time.Duration(p[1]).String(),
			time.Duration(p[2]).String(),
			strconv.FormatInt(r.errors.Count(), 10),
		})
	}
	table.Render()
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []perfResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	config := util.GetClientConfig()

	header := []string{
		"Test", "NsPerOp", "OpsPerSec", "P50Ns", "P95Ns", "P99Ns", "Errors", "Skipped",
		"Endpoint", "Transport", "Timeout", "Threads", "Keys",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, r := range results {
		p := r.latency.Percentiles([]float64{0.5, 0.95, 0.99})
		row := []string{
			r.test,
			strconv.FormatInt(r.bench.NsPerOp(), 10),
			fmt.Sprintf("%.0f", opsPerSec(r.bench)),
			fmt.Sprintf("%.0f", p[0]),
			fmt.Sprintf("%.0f", p[1]),
			fmt.Sprintf("%.0f", p[2]),
			strconv.FormatInt(r.errors.Count(), 10),
			strconv.FormatBool(r.bench.NsPerOp() == 0),
			config.Endpoint,
			config.Transport,
			config.Timeout.String(),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfKeySpread),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", r.test, err)
		}
	}
	return writer.Error()
}
