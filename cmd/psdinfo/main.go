package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/layerkit/psd/document"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to layered image file")
		trim        = flag.Bool("trim", false, "Crop layers to their opaque bounding box")
		list        = flag.Bool("list", false, "Print the layer tree and exit")
		exportDir   = flag.String("export", "", "Export each raster layer as PNG into this directory")
		thumbPath   = flag.String("thumb", "", "Write a thumbnail of the merged preview to this path")
		thumbSize   = flag.Int("thumbsize", 256, "Maximum thumbnail dimension")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: psdinfo -file <image.psd> [-trim] [-list]")
		fmt.Fprintln(os.Stderr, "       psdinfo -file <image.psd> -export <dir>")
		fmt.Fprintln(os.Stderr, "       psdinfo -file <image.psd> -thumb <out.png> [-thumbsize n]")
		fmt.Fprintln(os.Stderr, "       psdinfo -file <image.psd> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*file, *trim); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *trim, *list, *exportDir, *thumbPath, *thumbSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, trim, list bool, exportDir, thumbPath string, thumbSize int) error {
	doc, err := document.DecodeFile(file, document.Options{TrimEdges: trim})
	if err != nil {
		return err
	}

	groups, rasters := countNodes(doc.Root)
	fmt.Printf("Document: %s\n", file)
	fmt.Printf("Canvas: %dx%d\n", doc.Width, doc.Height)
	fmt.Printf("Groups: %d\n", groups)
	fmt.Printf("Layers: %d\n", rasters)
	if doc.Preview != nil {
		fmt.Printf("Merged preview: yes\n")
	} else {
		fmt.Printf("Merged preview: no\n")
	}

	if list {
		fmt.Printf("\nLayer tree:\n")
		for _, child := range doc.Root.Children {
			printNode(child, 1)
		}
	}

	if exportDir != "" {
		if err := exportLayers(doc, exportDir); err != nil {
			return err
		}
	}

	if thumbPath != "" {
		if err := writeThumbnail(doc, thumbPath, thumbSize); err != nil {
			return err
		}
	}

	return nil
}

func countNodes(n *document.Node) (groups, rasters int) {
	for _, c := range n.Children {
		if c.Kind == document.KindGroup {
			groups++
			g, r := countNodes(c)
			groups += g
			rasters += r
		} else {
			rasters++
		}
	}
	return groups, rasters
}

func printNode(n *document.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	vis := " "
	if !n.Visible {
		vis = "."
	}

	if n.Kind == document.KindGroup {
		marker := "v"
		if !n.Expanded {
			marker = ">"
		}
		fmt.Printf("%s%s %s %s/\n", indent, vis, marker, displayName(n))
		for _, c := range n.Children {
			printNode(c, depth+1)
		}
		return
	}

	detail := fmt.Sprintf("%s %d%%", n.Blend, int(n.Opacity)*100/255)
	if n.Image != nil {
		detail += fmt.Sprintf(" %dx%d at (%d,%d)",
			n.Image.Width, n.Image.Height, n.Image.X, n.Image.Y)
	}
	fmt.Printf("%s%s %s  [%s]\n", indent, vis, displayName(n), detail)
}

func displayName(n *document.Node) string {
	if n.Name == "" {
		return "(unnamed)"
	}
	return n.Name
}

func exportLayers(doc *document.Document, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	count := 0
	var walk func(n *document.Node) error
	walk = func(n *document.Node) error {
		for _, c := range n.Children {
			if c.Kind == document.KindGroup {
				if err := walk(c); err != nil {
					return err
				}
				continue
			}
			if c.Image == nil {
				continue
			}
			count++
			name := fmt.Sprintf("%03d_%s.png", count, fileSafe(displayName(c)))
			if err := writePNG(filepath.Join(dir, name), c); err != nil {
				return err
			}
			fmt.Printf("Exported %s\n", name)
		}
		return nil
	}
	if err := walk(doc.Root); err != nil {
		return err
	}

	fmt.Printf("Exported %d layer(s) to %s\n", count, dir)
	return nil
}

func writePNG(path string, n *document.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, n.Image.ToRGBA()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func writeThumbnail(doc *document.Document, path string, size int) error {
	if doc.Preview == nil {
		return fmt.Errorf("document has no merged preview")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, doc.Preview.Thumbnail(size, size)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	fmt.Printf("Wrote thumbnail %s\n", path)
	return nil
}

// fileSafe makes a layer name usable as a filename.
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
