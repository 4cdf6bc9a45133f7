package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Global flag to control debug output.
var debugMode bool

func debugf(format string, args ...interface{}) {
	if debugMode {
		log.Printf("debug: "+format, args...)
	}
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s [flags] encode <input-file> <output-png-or-dir>\n", prog)
	fmt.Fprintf(os.Stderr, "  %s [flags] decode <input-image> <output-dir>\n", prog)
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "encode":
		encodeMode(args[1], args[2])
	case "decode":
		decodeMode(args[1], args[2])
	default:
		usage()
		os.Exit(2)
	}
}

func encodeMode(inputPath, outputPath string) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file %s: %v", inputPath, err)
	}

	base := filepath.Base(inputPath)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	name := strings.TrimSuffix(base, filepath.Ext(base))

	page, err := EncodePage(DefaultGeometry(), name, ext, data)
	if err != nil {
		log.Fatalf("Failed to encode %s: %v", inputPath, err)
	}

	outputFile := encodeOutputPath(outputPath, name)
	outFile, err := os.Create(outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file %s: %v", outputFile, err)
	}
	defer outFile.Close()

	if err := writePNG(outFile, page, DefaultGeometry()); err != nil {
		log.Fatalf("Failed to write %s: %v", outputFile, err)
	}
	fmt.Printf("File encoded successfully: %s\n", outputFile)
}

// encodeOutputPath resolves the encode target: directories get a name
// derived from the input, anything else is used as given with a .png suffix
// ensured.
func encodeOutputPath(outputPath, baseName string) string {
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return filepath.Join(outputPath, baseName+"_encoded.png")
	}
	if !strings.HasSuffix(strings.ToLower(outputPath), ".png") {
		return outputPath + ".png"
	}
	return outputPath
}

func decodeMode(inputPath, outputDir string) {
	img, err := loadPageImage(inputPath)
	if err != nil {
		log.Fatalf("Failed to load image %s: %v", inputPath, err)
	}

	name, data, err := DecodePage(DefaultGeometry(), img)
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", inputPath, err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory %s: %v", outputDir, err)
	}
	outputFile := filepath.Join(outputDir, name)
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		log.Fatalf("Failed to write decoded file %s: %v", outputFile, err)
	}
	fmt.Printf("Successfully decoded file: %s\n", outputFile)
}
