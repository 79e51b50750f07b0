// Command rifxdump inspects Adobe/Macromedia Director movie and cast
// files.
//
// Usage:
//
//	rifxdump scripts [-dot] [-verbose] [-out DIR] <file.dir>   Dump decompiled Lingo source
//	rifxdump assets  [-out DIR] <file.dir>                     Dump decoded media
//	rifxdump info    <file.dir>                                Display movie metadata
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/deepteams/rifx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scripts":
		err = runScripts(os.Args[2:])
	case "assets":
		err = runAssets(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "rifxdump: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "rifxdump: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  rifxdump scripts [-dot] [-verbose] [-out DIR] <file.dir>
  rifxdump assets  [-out DIR] <file.dir>
  rifxdump info    <file.dir>

Run "rifxdump <command> -h" for command-specific options.
`)
}

func loadMovie(path string) (*rifx.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return rifx.Load(data)
}

func runScripts(args []string) error {
	fs := flag.NewFlagSet("scripts", flag.ContinueOnError)
	dot := fs.Bool("dot", false, "render dot-syntax Lingo source")
	verbose := fs.Bool("verbose", false, "also print bytecode-decompiled source alongside embedded source")
	outDir := fs.String("out", "", "write each script to <out>/<cast>_<id>_<name>.lingo instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("scripts: missing input file")
	}

	movie, err := loadMovie(fs.Arg(0))
	if err != nil {
		return err
	}

	for _, s := range movie.Scripts() {
		text := s.LingoText(rifx.LineEndingLF, *dot)
		if *verbose {
			text += "\n-- bytecode --\n" + s.BytecodeText(rifx.LineEndingLF, *dot)
		}
		if *outDir == "" {
			fmt.Printf("-- %s member %d (%s) --\n%s\n", s.CastName, s.MemberID, s.MemberName, text)
			continue
		}
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return err
		}
		name := fmt.Sprintf("%s_%d_%s.lingo", s.CastName, s.MemberID, s.MemberName)
		if err := os.WriteFile(filepath.Join(*outDir, name), []byte(text), 0o644); err != nil {
			return err
		}
	}
	printWarnings(movie)
	return nil
}

func runAssets(args []string) error {
	fs := flag.NewFlagSet("assets", flag.ContinueOnError)
	outDir := fs.String("out", "", "write each decoded asset to <out>/<cast>_<id>_<name>.<ext>")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("assets: missing input file")
	}

	movie, err := loadMovie(fs.Arg(0))
	if err != nil {
		return err
	}

	for _, a := range movie.Assets() {
		decoded, err := a.Decoded()
		if err != nil {
			fmt.Fprintf(os.Stderr, "rifxdump: %s member %d: %v\n", a.CastName, a.MemberID, err)
			continue
		}
		fmt.Printf("%s member %d (%s): %s\n", a.CastName, a.MemberID, a.MemberName, a.TypeName)
		if *outDir == "" {
			continue
		}
		if err := writeAsset(*outDir, a, decoded); err != nil {
			fmt.Fprintf(os.Stderr, "rifxdump: writing %s member %d: %v\n", a.CastName, a.MemberID, err)
		}
	}
	printWarnings(movie)
	return nil
}

func writeAsset(outDir string, a *rifx.AssetInfo, decoded any) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	base := fmt.Sprintf("%s_%d_%s", a.CastName, a.MemberID, a.MemberName)

	switch v := decoded.(type) {
	case *image.RGBA:
		f, err := os.Create(filepath.Join(outDir, base+".png"))
		if err != nil {
			return err
		}
		defer f.Close()
		return png.Encode(f, v)
	case string:
		return os.WriteFile(filepath.Join(outDir, base+".txt"), []byte(v), 0o644)
	case []byte:
		ext := ".bin"
		if len(v) >= 4 && string(v[0:4]) == "RIFF" {
			ext = ".wav"
		}
		return os.WriteFile(filepath.Join(outDir, base+ext), v, 0o644)
	default:
		return fmt.Errorf("no writer for decoded type %T", v)
	}
}

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: rifxdump info <file.dir>")
	}
	movie, err := loadMovie(args[0])
	if err != nil {
		return err
	}

	width, height := movie.StageSize()
	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Cast file:  %v\n", movie.IsCastFile())
	fmt.Printf("Version:    %d\n", movie.Version())
	fmt.Printf("Stage:      %d x %d\n", width, height)
	fmt.Printf("Frame rate: %d\n", movie.FrameRate())
	fmt.Printf("Scripts:    %d\n", len(movie.Scripts()))
	fmt.Printf("Assets:     %d\n", len(movie.Assets()))
	printWarnings(movie)
	return nil
}

func printWarnings(movie *rifx.Movie) {
	for _, w := range movie.Warnings() {
		fmt.Fprintf(os.Stderr, "rifxdump: warning: %v\n", w)
	}
}
