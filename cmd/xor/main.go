// xor trains a small perceptron on the XOR truth table (or a CSV dataset)
// and prints its predictions.
//
// Usage:
//
//	xor -arch="2 2 1" -activation=sigmoid -lr=0.1 -epochs=10000
//	xor -data=train.csv -labels=2 -header -arch="2 4 1"
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/GoBackprop/internal/activations"
	"github.com/FlavioCFOliveira/GoBackprop/internal/net"
)

var (
	archFlag     = flag.String("arch", "2 2 1", "Layer sizes, input first")
	activation   = flag.String("activation", "sigmoid", "Activation: sigmoid, tanh")
	learningRate = flag.Float64("lr", 0.1, "Learning rate")
	epochs       = flag.Int("epochs", 10000, "Number of training epochs")
	seed         = flag.Int64("seed", 0, "Weight initialization seed (0 = random)")
	logEvery     = flag.Int("log-every", 1000, "Print the loss every N epochs (0 = off)")
	history      = flag.String("history", "", "Write per-epoch loss to this CSV file")
	patience     = flag.Int("patience", 0, "Stop after N epochs without improvement (0 = off)")
	dataFile     = flag.String("data", "", "CSV training data (default: XOR truth table)")
	labelCols    = flag.String("labels", "", "Comma-separated label column indices for -data (default: the last output-size columns)")
	hasHeader    = flag.Bool("header", false, "Skip the first row of -data")
	normalize    = flag.Bool("normalize", false, "Min-max normalize -data features")
)

// seededUniform draws Uniform(-1, 1) weights from a fixed seed.
type seededUniform struct {
	r *rand.Rand
}

func (s seededUniform) Rand() float64 {
	return s.r.Float64()*2 - 1
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "xor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	arch, err := net.ParseArchitecture(*archFlag)
	if err != nil {
		return err
	}
	kind, err := activations.ParseKind(*activation)
	if err != nil {
		return err
	}

	cfg := net.Config{
		Architecture: arch,
		LearningRate: *learningRate,
		Activation:   kind,
	}
	if *seed != 0 {
		cfg.Init = seededUniform{r: rand.New(rand.NewSource(*seed))}
	}

	network, err := net.New(cfg)
	if err != nil {
		return err
	}

	trainX, trainY, err := loadData(network, *dataFile, *labelCols, *hasHeader, *normalize)
	if err != nil {
		return err
	}

	fmt.Println("=== XOR Training Example ===")
	network.Summary(os.Stdout)
	fmt.Printf("Samples: %d, epochs: %d\n\n", len(trainX), *epochs)

	callbacks := []net.Callback{net.Logger{Interval: *logEvery}}
	var csvLog *net.CSVLogger
	if *history != "" {
		csvLog = net.NewCSVLogger(*history, false)
		callbacks = append(callbacks, csvLog)
	}
	if *patience > 0 {
		callbacks = append(callbacks, net.NewEarlyStopping(*patience, 1e-7))
	}

	final, err := network.Fit(trainX, trainY, *epochs, callbacks...)
	if err != nil {
		return err
	}
	if csvLog != nil {
		if err := csvLog.Err(); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	fmt.Printf("\nFinal epoch loss: %.6f\n", final)

	fmt.Println("\nTesting trained network:")
	for i := range trainX {
		pred, err := network.Predict(trainX[i])
		if err != nil {
			return err
		}
		fmt.Printf("Input: %v Output: %s Target: %v\n", trainX[i], formatVec(pred), trainY[i])
	}
	return nil
}

// loadData returns the XOR truth table, or the dataset in filename when one
// is given, shaped for network.
func loadData(network *net.Network, filename, labels string, header, normalize bool) ([][]float64, [][]float64, error) {
	if filename == "" {
		trainX := [][]float64{
			{0, 0},
			{0, 1},
			{1, 0},
			{1, 1},
		}
		trainY := [][]float64{
			{0},
			{1},
			{1},
			{0},
		}
		return trainX, trainY, nil
	}

	cols, err := parseColumns(labels)
	if err != nil {
		return nil, nil, err
	}

	dataset, err := net.LoadCSVFor(network, filename, cols, header)
	if err != nil {
		return nil, nil, err
	}
	if normalize {
		dataset.Normalize()
	}
	return dataset.Samples, dataset.Labels, nil
}

func parseColumns(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var cols []int
	for _, p := range strings.Split(s, ",") {
		c, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad label column %q: %w", p, err)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
