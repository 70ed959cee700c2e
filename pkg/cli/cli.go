package cli

import (
	"bufio"
	"fmt"
	"image"
	"os"
)

// BuildResult is the rendered output of one string-art build: the vector
// drawing, the human-readable stringing instructions, and a raster preview.
type BuildResult struct {
	SVG          string
	Instructions string
	Raster       image.Image
}

// BuildFunc runs a full string-art build against a source image path. It is
// supplied by the caller (the cmd entrypoint) rather than imported directly,
// since pkg/stringart itself depends on this package for image loading and
// importing it back here would cycle.
type BuildFunc func(sourcePath string) (BuildResult, error)

// printEXIFSummary prints whatever camera metadata is embedded in a JPEG
// source image; silently does nothing for formats without EXIF or on
// extraction failure, since this is informational only.
func printEXIFSummary(path string) {
	ex, err := ExtractEXIFStruct(path)
	if err != nil {
		return
	}
	if ex.Make != "" || ex.Model != "" {
		fmt.Printf("Camera: %s %s\n", ex.Make, ex.Model)
	}
	if ex.LensModel != "" {
		fmt.Printf("Lens: %s\n", ex.LensModel)
	}
}

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - build string art from the current source image")
	fmt.Println("  o  - open another source image")
	fmt.Println("  s  - save the last build's outputs")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// RunCLI runs the interactive threadloom REPL: pick a source image, build
// string art from it via build, and save the rendered outputs to disk.
func RunCLI(build BuildFunc) {
	var sourcePath string
	if len(os.Args) >= 2 {
		sourcePath = os.Args[1]
	}

	var last *BuildResult

	if sourcePath != "" {
		if img, _, err := LoadImage(sourcePath); err == nil {
			_ = PreviewImage(img, "")
			if info, ierr := GetImageInfoImage(img); ierr == nil {
				fmt.Println(info)
			}
			printEXIFSummary(sourcePath)
		} else {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", sourcePath, err)
		}
	}

	fmt.Println("threadloom")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}

		switch r {
		case '/':
			if sourcePath == "" {
				fmt.Println("No source image selected. Press 'o' to open one first, or provide an image path as the first argument.")
				continue
			}
			fmt.Printf("Building string art from %s ...\n", sourcePath)
			result, err := build(sourcePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "build error: %v\n", err)
				continue
			}
			last = &result
			fmt.Println("Build complete.")
			if result.Raster != nil {
				_ = PreviewImage(result.Raster, "")
			}
			continue

		case 's':
			if last == nil {
				fmt.Println("Nothing built yet. Press '/' to build first.")
				continue
			}
			base, _ := PromptLine("Enter output basename (no extension): ")
			if base == "" {
				fmt.Println("no basename provided")
				continue
			}
			if err := os.WriteFile(base+".svg", []byte(last.SVG), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write %s.svg: %v\n", base, err)
				continue
			}
			if err := os.WriteFile(base+".txt", []byte(last.Instructions), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write %s.txt: %v\n", base, err)
				continue
			}
			if last.Raster != nil {
				if err := SaveImage(base+".png", last.Raster); err != nil {
					fmt.Fprintf(os.Stderr, "failed to write %s.png: %v\n", base, err)
					continue
				}
			}
			fmt.Printf("Saved %s.svg, %s.txt, %s.png\n", base, base, base)

		case 'o':
			selected, selErr := SelectFileWithFzf(".")
			var newPath string
			if selErr != nil || selected == "" {
				newPath, _ = PromptLine("Enter path to source image (leave empty to cancel): ")
				if newPath == "" {
					fmt.Println("open cancelled")
					continue
				}
			} else {
				newPath = selected
			}

			img, _, err := LoadImage(newPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", newPath, err)
				continue
			}
			sourcePath = newPath
			fmt.Printf("Opened %s\n", newPath)
			_ = PreviewImage(img, "")
			if info, ierr := GetImageInfoImage(img); ierr == nil {
				fmt.Println(info)
			}
			printEXIFSummary(newPath)
			continue

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}
			continue

		case 'h':
			usage()
			continue

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}
