package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kpaschen/graphkernels/lib/kernels"
	"github.com/kpaschen/graphkernels/lib/reporter"
	"github.com/kpaschen/graphkernels/lib/settings"
	"github.com/kpaschen/graphkernels/service"
)

func operationByName(name string) (kernels.PairwiseOperation, error) {
	switch name {
	case "subtree_wl":
		return kernels.SubtreeWL{}, nil
	case "vertex_histogram":
		return kernels.VertexHistogram{}, nil
	default:
		return nil, fmt.Errorf("unknown kernel %q", name)
	}
}

func main() {
	filename := flag.String("filename", "", "Name of a json graph collection file to read")
	kernelName := flag.String("kernel", "subtree_wl", "Which kernel operation to run")
	normalize := flag.Bool("normalize", false, "Whether to normalize the kernel matrix")
	verbose := flag.Bool("verbose", false, "Whether to log diagnostic output")
	workers := flag.Int("workers", 0, "Number of goroutines for pairwise scores, 0 for one per cpu")
	resultsDirectory := flag.String("resultsDirectory", "", "Where to write the matrix csv; print to stdout when empty")
	listenAddress := flag.String("listenAddress", "", "Serve the kernel api on this address instead of reading a file")
	metricsAddress := flag.String("metricsAddress", ":9203", "Where to serve prometheus metrics in serve mode")
	flag.Parse()

	config := settings.KernelSettings{
		Normalize: *normalize,
		Verbose:   *verbose,
		Workers:   *workers,
	}
	config = config.ComputeSettingsFields()

	op, err := operationByName(*kernelName)
	if err != nil {
		log.Fatal(err)
	}

	if *listenAddress != "" {
		server := service.NewKernelServer(op, config)
		http.Handle("/metrics", promhttp.Handler())
		go http.ListenAndServe(*metricsAddress, nil)
		log.Printf("kernel service listening on %s\n", *listenAddress)
		log.Fatal(http.ListenAndServe(*listenAddress, server.Router()))
	}

	if *filename == "" {
		log.Fatal("need either -filename or -listenAddress")
	}

	file, err := os.Open(*filename)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	var payloads []service.GraphPayload
	if err := json.NewDecoder(file).Decode(&payloads); err != nil {
		log.Fatalf("failed to parse %s: %v\n", *filename, err)
	}

	engine := kernels.NewEngine(op, config)
	matrix, err := engine.FitTransform(service.ElementsFromPayloads(payloads))
	if err != nil {
		log.Fatalf("kernel computation failed: %v\n", err)
	}

	if *resultsDirectory != "" {
		rep := reporter.NewCsvReporter(*resultsDirectory)
		if err := rep.WriteMatrix(*kernelName, matrix); err != nil {
			log.Fatalf("failed to write matrix: %v\n", err)
		}
		return
	}
	rows, cols := matrix.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j > 0 {
				fmt.Printf(" ")
			}
			fmt.Printf("%f", matrix.At(i, j))
		}
		fmt.Printf("\n")
	}
}
