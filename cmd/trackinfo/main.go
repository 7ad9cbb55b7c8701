// Command trackinfo prints the title, artist, album and duration of audio
// files.
//
// Usage:
//
//	trackinfo [-json] [-artist name] [-album name] <file>...
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/simonhull/trackmeta"
)

var (
	showVersion = flag.Bool("version", false, "Print version information and exit")
	asJSON      = flag.Bool("json", false, "Print one JSON object per file")
	artist      = flag.String("artist", trackmeta.UnknownArtist, "Artist used when a file has none")
	album       = flag.String("album", trackmeta.UnknownAlbum, "Album used when a file has none")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(trackmeta.GetBuildInfo())
		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nSupported extensions: %v\n", trackmeta.SupportedExtensions())
		os.Exit(1)
	}

	failed := 0
	for _, path := range paths {
		t, err := trackmeta.Read(path, trackmeta.WithFallbacks(*artist, *album))
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed++
			continue
		}

		if *asJSON {
			out, err := json.Marshal(t)
			if err != nil {
				log.Fatalf("Failed to encode %s: %v", path, err)
			}
			fmt.Println(string(out))
			continue
		}
		printTrack(t)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func printTrack(t *trackmeta.Track) {
	fmt.Printf("File:     %s\n", t.Path)
	fmt.Printf("Format:   %s\n", t.Format.Description())
	fmt.Printf("Title:    %s\n", t.Metadata.Title)
	fmt.Printf("Artist:   %s\n", t.Metadata.Artist)
	fmt.Printf("Album:    %s\n", t.Metadata.Album)
	fmt.Printf("Duration: %s\n", trackmeta.FormatDuration(t.Duration))

	s := t.Stream
	if s.SampleRate > 0 {
		fmt.Printf("Stream:   %d Hz, %d ch, %d bit", s.SampleRate, s.Channels, s.BitsPerSample)
		if s.Bitrate > 0 {
			fmt.Printf(", %d kbps", s.Bitrate/1000)
		}
		fmt.Println()
	}
	if !t.Tagged {
		fmt.Println("Tags:     none found, using fallbacks")
	}

	if len(t.Warnings) > 0 {
		fmt.Printf("Warnings: %d\n", len(t.Warnings))
		for _, w := range t.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	fmt.Println()
}
