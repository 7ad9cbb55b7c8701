// Command trackscan reads every supported audio file under a directory in
// parallel and prints a summary table.
//
// Usage:
//
//	trackscan [-j 8] [-flat] <dir>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/player"
)

var (
	jobs  = flag.Int("j", 8, "Number of files read in parallel")
	flat  = flag.Bool("flat", false, "Do not descend into subdirectories")
	quiet = flag.Bool("q", false, "Hide the progress bar")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	dir := flag.Arg(0)

	paths, err := player.ScanDir(dir, !*flat, trackmeta.IsSupported)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", dir, err)
	}
	if len(paths) == 0 {
		fmt.Println("No audio files found.")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Reading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!*quiet),
	)

	start := time.Now()
	tracks, err := trackmeta.ReadMany(ctx, paths,
		trackmeta.WithConcurrency(*jobs),
		trackmeta.WithProgress(func(string, error) { bar.Add(1) }),
	)
	bar.Finish()
	if err != nil {
		log.Fatalf("Failed to read tracks: %v", err)
	}
	elapsed := time.Since(start)

	printTable(dir, tracks)

	var total float64
	var warned, untagged int
	for _, t := range tracks {
		total += t.Duration
		if len(t.Warnings) > 0 {
			warned++
		}
		if !t.Tagged {
			untagged++
		}
	}

	fmt.Println()
	fmt.Printf("Files:          %d\n", len(tracks))
	fmt.Printf("Total Duration: %s\n", trackmeta.FormatDuration(total))
	fmt.Printf("Untagged:       %d\n", untagged)
	fmt.Printf("With Warnings:  %d\n", warned)
	fmt.Printf("Scan Time:      %s (%.1f files/s)\n", elapsed.Round(time.Millisecond),
		float64(len(tracks))/elapsed.Seconds())
}

func printTable(dir string, tracks []*trackmeta.Track) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tFORMAT\tARTIST\tALBUM\tTITLE\tLENGTH")
	for _, t := range tracks {
		rel, err := filepath.Rel(dir, t.Path)
		if err != nil {
			rel = t.Path
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rel, t.Format, t.Metadata.Artist, t.Metadata.Album, t.Metadata.Title,
			trackmeta.FormatDuration(t.Duration))
	}
	w.Flush()
}
