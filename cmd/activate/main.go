// Package main provides the activation layers CLI.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/activations/backend/cpu"
	"github.com/born-ml/activations/backend/webgpu"
	"github.com/born-ml/activations/internal/serialization"
	"github.com/born-ml/activations/nn"
	"github.com/born-ml/activations/tensor"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("activate: ")

	if len(os.Args) < 2 {
		usage()
		return
	}

	args := os.Args[2:]
	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("activations %s\n", version)
	case "classes":
		for _, name := range nn.RegisteredClasses() {
			fmt.Println(name)
		}
	case "config":
		err = runConfig(args)
	case "infer":
		err = runInfer(args)
	case "apply":
		err = runApply(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("activations - advanced activation layers")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                                   Show version")
	fmt.Println("  classes                                   List layer classes")
	fmt.Println("  config <Class> [json|yaml]                Print the default config of a class")
	fmt.Println("  infer <config-file> <shape>               Infer the output shape (use null for unknown dims)")
	fmt.Println("  apply [--gpu] <config-file> <shape> <values>  Run a layer on comma-separated values")
}

// runConfig prints the pythonic serialization of a default-constructed layer.
func runConfig(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: config <Class> [json|yaml]")
	}
	format := serialization.YAML
	if len(args) == 2 {
		f, err := serialization.ParseFormat(args[1])
		if err != nil {
			return err
		}
		format = f
	}

	layer, err := nn.NewRegistry(cpu.New()).FromConfig(args[0], nil)
	if err != nil {
		return err
	}
	data, err := serialization.Marshal(nn.SerializePythonic(layer), format)
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimRight(string(data), "\n"))
	return nil
}

func runInfer(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: infer <config-file> <shape>")
	}
	layer, err := loadLayer[*cpu.Backend](args[0], cpu.New())
	if err != nil {
		return err
	}
	shape, err := parseShape(args[1])
	if err != nil {
		return err
	}

	input, err := tensor.NewSymbolic(layer.DType(), shape, "input")
	if err != nil {
		return err
	}
	output, err := layer.Apply(input)
	if err != nil {
		return err
	}
	fmt.Println(output.Shape())
	return nil
}

func runApply(args []string) error {
	useGPU := len(args) > 0 && args[0] == "--gpu"
	if useGPU {
		args = args[1:]
	}
	if len(args) != 3 {
		return fmt.Errorf("usage: apply [--gpu] <config-file> <shape> <values>")
	}

	var backend tensor.Backend = cpu.New()
	if useGPU {
		gpu, err := webgpu.New()
		if err != nil {
			log.Printf("falling back to CPU: %v", err)
		} else {
			defer gpu.Release()
			backend = gpu
		}
	}

	layer, err := loadLayer(args[0], backend)
	if err != nil {
		return err
	}
	symbolic, err := parseShape(args[1])
	if err != nil {
		return err
	}
	shape, err := symbolic.Concrete()
	if err != nil {
		return err
	}
	values, err := parseValues(args[2])
	if err != nil {
		return err
	}

	x, err := tensor.FromSlice(values, shape, backend)
	if err != nil {
		return err
	}
	y := layer.Forward(x)
	fmt.Printf("backend: %s\n", backend.Name())
	fmt.Printf("shape: %v\n", y.Shape())
	fmt.Printf("values: %v\n", y.Data())
	return nil
}

// loadLayer reads a pythonic serialized layer from a JSON or YAML file.
func loadLayer[B tensor.Backend](path string, backend B) (nn.Layer[B], error) {
	doc, err := serialization.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return nn.NewRegistry(backend).DeserializePythonic(doc)
}

func parseShape(s string) (tensor.SymbolicShape, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]()")
	if s == "" {
		return tensor.SymbolicShape{}, nil
	}
	parts := strings.Split(s, ",")
	shape := make(tensor.SymbolicShape, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "null" || p == "?" {
			shape[i] = tensor.UnknownDim
			continue
		}
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("shape dimension %d: %w", i, err)
		}
		shape[i] = d
	}
	return shape, nil
}

func parseValues(s string) ([]float32, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return []float32{}, nil
	}
	parts := strings.Split(s, ",")
	values := make([]float32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = float32(v)
	}
	return values, nil
}
